// Package session implements the bidirectional JSON-RPC 2.0 peer engine
// described in spec §4.3: request/response correlation, notification
// dispatch, the initialization lifecycle state machine, and graceful
// shutdown. Both a client and a server instantiate the same Session type
// with direction-dependent handler tables (spec §9 "Bidirectional
// symmetry").
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/transport"
	"golang.org/x/sync/errgroup"
)

// RequestHandler answers an inbound request. Returning a non-nil
// *schema.RPCError produces a JSON-RPC error response; otherwise result is marshaled into
// the response's result field.
type RequestHandler func(ctx context.Context, params json.RawMessage) (result any, rpcErr *schema.RPCError)

// NotificationHandler consumes an inbound notification. Its return value
// is ignored; panics are recovered and logged (spec §7 "errors raised by
// user-supplied callbacks are caught at the core/user boundary").
type NotificationHandler func(ctx context.Context, params json.RawMessage)

// maxConcurrentHandlers bounds how many inbound request handlers run at
// once (spec §5 "handlers may execute concurrently").
const maxConcurrentHandlers = 32

// Session is the symmetric JSON-RPC peer engine of spec §4.3.
type Session struct {
	transport transport.Transport
	role      Role
	logger    *log.Logger

	nextID atomic.Int64

	stateMu sync.Mutex
	state   State

	peerInitializedObserved atomic.Bool

	pending *pendingTable

	handlersMu           sync.RWMutex
	requestHandlers      map[string]RequestHandler
	notificationHandlers map[string]NotificationHandler

	sendMu sync.Mutex // serializes writes to the transport, matching spec §5 "messages sent from the same caller arrive at the transport in program order"

	// inflight bounds concurrently-executing inbound request handlers
	// (spec §5 "handlers may execute concurrently"). Submission to inflight
	// always happens from a disposable per-request goroutine, never from
	// the Run receive loop itself, so a handler that blocks on a nested
	// server<->client request (e.g. sampling) can never starve the loop
	// that would deliver the response unblocking it — only that disposable
	// goroutine blocks waiting for a free slot.
	inflight errgroup.Group

	runCancelMu sync.Mutex
	runCancel   context.CancelFunc

	closeOnce sync.Once
	doneCh    chan struct{}
}

// New creates a Session over the given transport. role determines whether
// this instance gates its own outbound non-ping/initialize requests on
// having observed the peer's notifications/initialized (spec §9
// "initialization race" — server-only). A nil logger discards all output,
// matching the teacher's silent-by-default convention.
func New(t transport.Transport, role Role, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Session{
		transport:            t,
		role:                 role,
		logger:               logger,
		pending:              newPendingTable(),
		requestHandlers:      make(map[string]RequestHandler),
		notificationHandlers: make(map[string]NotificationHandler),
		doneCh:               make(chan struct{}),
	}
	s.inflight.SetLimit(maxConcurrentHandlers)
	return s
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

// transitionTo enforces the monotonic state ordering of spec §3: any
// state may move to Closed; otherwise a transition must strictly advance.
// Moving to a state that is not strictly greater (and isn't Closed) is a
// no-op success when it matches the current state (idempotent close-style
// calls), and an error otherwise.
func (s *Session) transitionTo(to State) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if to == StateClosed {
		s.state = StateClosed
		return nil
	}
	if to == s.state {
		return nil
	}
	if to < s.state {
		return fmt.Errorf("session: cannot move from %s back to %s", s.state, to)
	}
	s.state = to
	return nil
}

// MarkOperating transitions the session into Operating. Called by the
// client feature layer after sending notifications/initialized, and
// internally by dispatch when the server observes that same notification
// inbound (spec §4.3 lifecycle diagram).
func (s *Session) MarkOperating() error {
	return s.transitionTo(StateOperating)
}

// PeerInitializedObserved reports whether this session has seen the
// peer's notifications/initialized notification, in either direction.
func (s *Session) PeerInitializedObserved() bool {
	return s.peerInitializedObserved.Load()
}

// RegisterRequestHandler installs the handler invoked for inbound requests
// with the given method (spec §4.3 public contract).
func (s *Session) RegisterRequestHandler(method string, handler RequestHandler) {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()
	s.requestHandlers[method] = handler
}

// RegisterNotificationHandler installs the handler invoked for inbound
// notifications with the given method.
func (s *Session) RegisterNotificationHandler(method string, handler NotificationHandler) {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()
	s.notificationHandlers[method] = handler
}

// checkOutboundGate enforces spec §3 invariant 2 and the §9 initialization
// race decision, before any wire traffic is produced.
func (s *Session) checkOutboundGate(method string) error {
	st := s.State()
	if st == StateClosing || st == StateClosed {
		return ErrSessionClosed()
	}
	if method == schema.MethodPing {
		return nil
	}
	if method == schema.MethodInitialize {
		if st != StateUninitialized {
			return NewInitializationError("initialize already sent")
		}
		return nil
	}
	if st != StateOperating {
		return NewInitializationError(fmt.Sprintf("method %q not permitted in state %s", method, st))
	}
	if s.role == RoleServer && !s.peerInitializedObserved.Load() {
		return NewInitializationError("client not yet initialized")
	}
	return nil
}

// SendRequest assigns a fresh id, installs a completion slot, emits the
// request, and blocks until the eventual response, ctx cancellation, or
// session closure (spec §4.3 public contract "sendRequest").
func (s *Session) SendRequest(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if err := s.checkOutboundGate(method); err != nil {
		return nil, err
	}

	if method == schema.MethodInitialize {
		// Transition before the wire write: a second concurrent Initialize
		// call must see Initializing already and fail the gate above.
		if err := s.transitionTo(StateInitializing); err != nil {
			return nil, NewInitializationError(err.Error())
		}
	}

	id := s.nextID.Add(1)
	entry, ok := s.pending.store(id)
	if !ok {
		s.logger.Printf("session: duplicate request id %d still pending; request not sent", id)
		return nil, NewProtocolError(schema.CodeInternalError, "duplicate request id")
	}

	paramBytes, err := marshalParams(params)
	if err != nil {
		s.pending.expire(id)
		return nil, NewProtocolError(schema.CodeInvalidParams, err.Error())
	}

	reqID := schema.NewIntID(id)
	msg := schema.Message{JSONRPC: schema.JSONRPCVersion, ID: &reqID, Method: method, Params: paramBytes}
	data, err := json.Marshal(msg)
	if err != nil {
		s.pending.expire(id)
		return nil, NewProtocolError(schema.CodeInternalError, "marshal request: "+err.Error())
	}

	if err := s.send(ctx, data); err != nil {
		s.pending.expire(id)
		return nil, NewTransportError(err)
	}

	select {
	case result := <-entry.ch:
		return result.result, result.err
	case <-ctx.Done():
		s.pending.expire(id)
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout()
		}
		return nil, ctx.Err()
	case <-s.doneCh:
		s.pending.expire(id)
		return nil, ErrSessionClosed()
	}
}

// SendNotification emits a fire-and-forget message; it completes when the
// transport accepts the bytes (spec §4.3 public contract
// "sendNotification").
func (s *Session) SendNotification(ctx context.Context, method string, params any) error {
	st := s.State()
	if st == StateClosing || st == StateClosed {
		return ErrSessionClosed()
	}

	paramBytes, err := marshalParams(params)
	if err != nil {
		return NewProtocolError(schema.CodeInvalidParams, err.Error())
	}
	msg := schema.Message{JSONRPC: schema.JSONRPCVersion, Method: method, Params: paramBytes}
	data, err := json.Marshal(msg)
	if err != nil {
		return NewProtocolError(schema.CodeInternalError, "marshal notification: "+err.Error())
	}
	if err := s.send(ctx, data); err != nil {
		return NewTransportError(err)
	}
	return nil
}

func (s *Session) send(ctx context.Context, data []byte) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	return s.transport.Send(ctx, data)
}

func marshalParams(params any) (json.RawMessage, error) {
	if params == nil {
		return nil, nil
	}
	if raw, ok := params.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(params)
}

// Close initiates graceful shutdown: stops accepting new outbound
// requests, cancels every pending outbound request with SessionClosed,
// and closes the transport. Idempotent (spec §8 invariant 6).
func (s *Session) Close() error {
	var closeErr error
	s.closeOnce.Do(func() {
		_ = s.transitionTo(StateClosing)
		s.pending.closeAll()
		close(s.doneCh)
		closeErr = s.transport.Close()
		_ = s.transitionTo(StateClosed)

		s.runCancelMu.Lock()
		if s.runCancel != nil {
			s.runCancel()
		}
		s.runCancelMu.Unlock()
	})
	return closeErr
}

// Done returns a channel closed once Close has been called, for callers
// that need to select on session closure alongside other events.
func (s *Session) Done() <-chan struct{} {
	return s.doneCh
}
