package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocket is a third concrete transport profile, beyond the stdio and
// SSE profiles spec §4.2 names explicitly ("stdio, SSE, or otherwise"),
// built on github.com/gorilla/websocket (grounded on
// jinterlante1206-AleutianLocal's go.mod). One JSON-RPC message maps to
// one text-mode WebSocket frame; no additional framing is needed because
// gorilla/websocket already delivers whole frames, unlike the stdio
// transport's raw byte stream.
type WebSocket struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	mu      sync.Mutex
	closed  bool
}

// NewWebSocket wraps an already-established *websocket.Conn (client-side
// via websocket.Dialer, server-side via websocket.Upgrader) as a
// Transport.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	return &WebSocket{conn: conn}
}

// Send writes msg as a single text frame. gorilla/websocket connections
// support only one concurrent writer, so writes are serialized.
func (t *WebSocket) Send(ctx context.Context, msg []byte) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return fmt.Errorf("transport closed")
	}
	t.mu.Unlock()

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return t.conn.WriteMessage(websocket.TextMessage, msg)
}

// Receive blocks until the next text frame arrives or ctx is cancelled.
// gorilla/websocket has no native per-call deadline cancellation, so ctx
// cancellation closes the underlying connection to unblock ReadMessage,
// mirroring Stdio.Receive's cancellation strategy.
func (t *WebSocket) Receive(ctx context.Context) ([]byte, error) {
	type readResult struct {
		data []byte
		err  error
	}
	resultCh := make(chan readResult, 1)
	go func() {
		_, data, err := t.conn.ReadMessage()
		resultCh <- readResult{data, err}
	}()

	select {
	case r := <-resultCh:
		if r.err != nil {
			return nil, fmt.Errorf("read message: %w", r.err)
		}
		return r.data, nil
	case <-ctx.Done():
		_ = t.conn.Close()
		return nil, ctx.Err()
	}
}

// Close closes the underlying connection; idempotent.
func (t *WebSocket) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	return t.conn.Close()
}
