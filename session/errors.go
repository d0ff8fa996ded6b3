package session

import (
	"fmt"

	"github.com/mcpcore/sdk/schema"
)

// Kind is one of the seven error kinds of spec §7. Kind, not a type name
// per kind, is what the taxonomy names — Error carries its Kind as a field
// rather than the caller needing seven distinct error types.
type Kind int

const (
	KindTransport Kind = iota
	KindProtocol
	KindCapability
	KindInitialization
	KindTimeout
	KindSessionClosed
	KindHandler
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindCapability:
		return "capability"
	case KindInitialization:
		return "initialization"
	case KindTimeout:
		return "timeout"
	case KindSessionClosed:
		return "session_closed"
	case KindHandler:
		return "handler"
	default:
		return "unknown"
	}
}

// Error is the error type the core raises locally (spec §7 "every failed
// request completes its future with a single error carrying a human-readable
// message and a stable code"). An error response from the peer reaches the
// caller as *schema.RPCError instead, and a cancelled ctx as ctx.Err().
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, code int, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: cause}
}

// NewTransportError wraps a transport-level send/receive failure.
func NewTransportError(cause error) *Error {
	return newError(KindTransport, schema.CodeInternalError, "transport error", cause)
}

// NewProtocolError reports malformed JSON-RPC, an unknown method, or
// invalid params.
func NewProtocolError(code int, message string) *Error {
	return newError(KindProtocol, code, message, nil)
}

// NewCapabilityError reports a gated operation whose required peer
// capability was not advertised. Raised locally before any wire traffic
// (spec §5, §7, §9 "capability gating should be local").
func NewCapabilityError(message string) *Error {
	return newError(KindCapability, schema.CodeCapabilityMissing, message, nil)
}

// NewInitializationError reports a protocol version mismatch or an
// operation attempted out of sequence relative to initialization.
func NewInitializationError(message string) *Error {
	return newError(KindInitialization, schema.CodeNotInitialized, message, nil)
}

// ErrTimeout reports that an outbound request's deadline expired before a
// response arrived.
func ErrTimeout() *Error {
	return newError(KindTimeout, schema.CodeRequestTimeout, "request timed out", nil)
}

// ErrSessionClosed reports that the session entered Closed while the
// operation was pending, or was already Closed when attempted.
func ErrSessionClosed() *Error {
	return newError(KindSessionClosed, schema.CodeSessionClosed, "session closed", nil)
}

// NewHandlerError wraps a panic or error an application handler raised as
// a KindHandler error with the InternalError code. The module's own
// dispatch does not call it: a tool failure becomes an in-band
// CallToolResult{IsError:true} in mcpserver (spec §7), and any other
// handler panic is answered with a JSON-RPC InternalError response built
// directly by the session.
func NewHandlerError(cause error) *Error {
	return newError(KindHandler, schema.CodeInternalError, "handler error", cause)
}
