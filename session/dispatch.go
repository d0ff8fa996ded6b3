package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/mcpcore/sdk/schema"
)

// Run drains the transport's inbound stream, classifying each message per
// spec §4.3 "Dispatch algorithm (inbound)" until the transport terminates
// or ctx is cancelled. It always closes the session before returning.
func (s *Session) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	s.runCancelMu.Lock()
	s.runCancel = cancel
	s.runCancelMu.Unlock()
	defer cancel()

	for {
		msg, err := s.transport.Receive(runCtx)
		if err != nil {
			_ = s.Close()
			if errors.Is(err, io.EOF) || errors.Is(runCtx.Err(), context.Canceled) {
				return nil
			}
			return err
		}
		if len(msg) == 0 {
			continue
		}
		s.dispatchInbound(runCtx, msg)
	}
}

func (s *Session) dispatchInbound(ctx context.Context, raw []byte) {
	var m schema.Message
	if err := json.Unmarshal(raw, &m); err != nil {
		// The message is not even valid JSON-RPC, so no id can be salvaged
		// to address an error response at; log and drop, matching the
		// teacher's handleMessage behavior of only replying when an id
		// could be extracted.
		s.logger.Printf("session: parse error: %v", err)
		return
	}

	switch {
	case m.IsRequest():
		s.dispatchRequest(ctx, m)
	case m.IsResponse():
		s.dispatchResponse(m)
	case m.IsNotification():
		s.dispatchNotification(ctx, m)
	default:
		s.logger.Printf("session: message matched no JSON-RPC shape: %s", raw)
	}
}

func (s *Session) dispatchRequest(ctx context.Context, m schema.Message) {
	id := *m.ID
	method := m.Method
	params := m.Params

	s.handlersMu.RLock()
	handler, ok := s.requestHandlers[method]
	s.handlersMu.RUnlock()

	// s.inflight.Go blocks its caller once maxConcurrentHandlers are
	// already running, so it must never be called directly from the Run
	// receive loop's goroutine: a handler that is itself waiting on a
	// nested server<->client request (e.g. sampling) would then stall the
	// very loop that delivers the response unblocking it. Submitting from
	// a disposable per-request goroutine keeps that wait off the loop.
	go func() {
		s.inflight.Go(func() error {
			if !ok {
				s.replyError(ctx, id, schema.ErrMethodNotFound(method))
				return nil
			}
			s.invokeRequestHandler(ctx, id, handler, params)
			return nil
		})
	}()
}

func (s *Session) invokeRequestHandler(ctx context.Context, id schema.RequestID, handler RequestHandler, params json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("session: request handler panic: %v", r)
			s.replyError(ctx, id, schema.ErrInternalError("handler panic"))
		}
	}()

	result, rpcErr := handler(ctx, params)
	if rpcErr != nil {
		s.replyError(ctx, id, rpcErr)
		return
	}
	s.replyResult(ctx, id, result)
}

func (s *Session) replyResult(ctx context.Context, id schema.RequestID, result any) {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		s.replyError(ctx, id, schema.ErrInternalError("marshal result: "+err.Error()))
		return
	}
	msg := schema.Message{JSONRPC: schema.JSONRPCVersion, ID: &id, Result: resultBytes}
	s.writeMessage(ctx, msg)
}

func (s *Session) replyError(ctx context.Context, id schema.RequestID, rpcErr *schema.RPCError) {
	msg := schema.Message{JSONRPC: schema.JSONRPCVersion, ID: &id, Error: rpcErr}
	s.writeMessage(ctx, msg)
}

func (s *Session) writeMessage(ctx context.Context, msg schema.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Printf("session: marshal response: %v", err)
		return
	}
	if err := s.send(ctx, data); err != nil {
		s.logger.Printf("session: send response: %v", err)
	}
}

func (s *Session) dispatchResponse(m schema.Message) {
	id, isInt := m.ID.Int64()
	if !isInt {
		s.logger.Printf("session: dropping response with non-integer id %q (not ours)", m.ID.String())
		return
	}
	if !s.pending.complete(id, m.Result, m.Error) {
		s.logger.Printf("session: dropping stale or unknown response for id %d", id)
	}
}

func (s *Session) dispatchNotification(ctx context.Context, m schema.Message) {
	if m.Method == schema.NotificationInitialized {
		s.peerInitializedObserved.Store(true)
		_ = s.MarkOperating()
	}

	s.handlersMu.RLock()
	handler, ok := s.notificationHandlers[m.Method]
	s.handlersMu.RUnlock()
	if !ok {
		s.logger.Printf("session: no handler for notification %q", m.Method)
		return
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Printf("session: notification handler panic for %q: %v", m.Method, r)
			}
		}()
		handler(ctx, m.Params)
	}()
}
