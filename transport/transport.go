// Package transport defines the abstract contract session.Session requires
// from any concrete wire implementation, plus reference implementations
// (stdio, in-memory, SSE, websocket). Concrete transports are, per spec §1,
// external collaborators: the core only ever talks to the Transport
// interface.
package transport

import "context"

// Transport is the contract the core requires from any concrete wire
// implementation (spec §4.2).
//
// Send asynchronously delivers a single fully-encoded JSON-RPC message.
// Returning nil signals local buffer acceptance, not remote receipt.
//
// Receive returns the next inbound message in receipt order, blocking
// until one arrives, ctx is cancelled, or the peer disconnects (Stdio
// reports a disconnect as an error wrapping io.EOF; the SSE and WebSocket
// transports report it with their own errors).
// Order within a single direction is preserved; no ordering is guaranteed
// between directions.
//
// Close quiesces the transport; after it returns, no further Send or
// Receive call is valid. Implementations must make Close idempotent.
type Transport interface {
	Send(ctx context.Context, message []byte) error
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}
