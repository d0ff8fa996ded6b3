package session

// State is one of the five session lifecycle states (spec §3, §4.3).
// Transitions are strictly monotonic except that any state may transition
// to Closed.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateOperating
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateOperating:
		return "operating"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Role distinguishes which peer a Session instance is acting as. The
// engine itself is symmetric (spec §4.3 "both client and server
// instantiate the same session abstraction"); Role only changes one thing:
// whether outbound non-ping/initialize requests are gated on having
// observed the peer's notifications/initialized (spec §9 "initialization
// race" — only the server side is gated, since the client is the one that
// sends that notification).
type Role int

const (
	RoleClient Role = iota
	RoleServer
)
