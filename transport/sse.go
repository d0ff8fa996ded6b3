package transport

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// SSESession is the server-side half of the HTTP+SSE transport profile
// described in spec §4.2 and framed on the wire in spec §6: a long-lived
// GET stream carries server->client messages, and a second POST endpoint
// (scoped by an opaque session id) carries client->server messages.
//
// google/uuid generates that opaque id, the same library
// xxsc0529-genai-toolbox and jinterlante1206-AleutianLocal both reach for
// whenever they need an opaque session/request identifier.
type SSESession struct {
	ID string

	mu      sync.Mutex
	closed  bool
	inbound chan []byte // messages POSTed by the client
	events  chan []byte // messages to emit as "event: message" SSE frames
}

// NewSSESession creates a fresh session with a random opaque id.
func NewSSESession() *SSESession {
	return &SSESession{
		ID:      uuid.NewString(),
		inbound: make(chan []byte, 64),
		events:  make(chan []byte, 64),
	}
}

// Send queues an outbound message for delivery as an SSE "event: message"
// frame on the next flush of ServeSSE's response writer.
func (s *SSESession) Send(ctx context.Context, msg []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("sse session closed")
	}
	s.mu.Unlock()

	select {
	case s.events <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive returns the next message POSTed to the message endpoint.
func (s *SSESession) Receive(ctx context.Context) ([]byte, error) {
	select {
	case msg, ok := <-s.inbound:
		if !ok {
			return nil, fmt.Errorf("sse session closed")
		}
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close quiesces the session; idempotent.
func (s *SSESession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.inbound)
	close(s.events)
	return nil
}

// HandlePost accepts one client->server JSON-RPC message from the
// message-POST endpoint (spec §6 "POST <message-path>?sessionId=<id>").
func (s *SSESession) HandlePost(body []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("sse session closed")
	}
	s.mu.Unlock()
	s.inbound <- bytes.TrimSpace(body)
	return nil
}

// ServeSSE streams queued outbound messages to w as SSE "event: message"
// frames, first emitting the required "event: endpoint" frame carrying
// messagePath (spec §6). It blocks until the session closes or the
// request context is cancelled.
func (s *SSESession) ServeSSE(w http.ResponseWriter, r *http.Request, messagePath string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("response writer does not support flushing")
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: endpoint\ndata: %s?sessionId=%s\n\n", messagePath, s.ID)
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case msg, ok := <-s.events:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", msg)
			flusher.Flush()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
