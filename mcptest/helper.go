package mcptest

import (
	"context"
	"testing"
	"time"

	"github.com/mcpcore/sdk/transport"
)

// StartFakePeer wires cfg's scripted behavior to one end of an in-memory
// transport pair and starts serving it on a background goroutine,
// returning the other end for a Client/Server under test to dial.
// Grounded on internal/mcptest/helper.go's StartFakeServer: same
// "hand the caller one end, run the other in the background, register a
// stop func as t.Cleanup" shape, adapted from a subprocess pipe pair to
// transport.NewInMemoryPair.
func StartFakePeer(t *testing.T, cfg Config) (clientSide transport.Transport, stop func()) {
	t.Helper()
	clientSide, serverSide := transport.NewInMemoryPair()
	peer := NewFakePeer(serverSide, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = peer.Serve(ctx)
	}()

	stop = func() {
		cancel()
		_ = serverSide.Close()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}
	t.Cleanup(stop)
	return clientSide, stop
}
