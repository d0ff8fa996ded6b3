package session

import "sync"

// listenerEntry holds one registered callback. Removal nils out cb rather
// than splicing the slice, so an unsubscribe call is safe to race against
// Dispatch and never invalidates other entries' positions.
type listenerEntry[T any] struct {
	cb func(T)
}

// Listeners is an insertion-ordered, sequentially-dispatched callback list,
// generalized from the teacher's internal/events/bus.go Bus type. It backs
// every one of spec §4.4's five change-notification subscriptions
// (tools/resources/prompts list_changed, resources/updated,
// logging/message): "All registered listeners are invoked for each
// arrival, in registration order, sequentially; listener exceptions are
// logged but do not affect other listeners."
//
// Unlike the teacher's Bus, there is no background goroutine or channel:
// dispatch happens synchronously on the caller's goroutine (the session's
// notification-handler invocation), since spec §4.4 requires strictly
// sequential delivery, not best-effort async fan-out.
type Listeners[T any] struct {
	mu          sync.Mutex
	entries     []*listenerEntry[T]
	dispatching bool
	deferred    []*listenerEntry[T]
}

// Add registers a callback, returning an unsubscribe function. If called
// while a dispatch is in progress on another goroutine, the registration
// is deferred until that dispatch completes (spec §9 "Listener
// registration during dispatch is deferred to avoid concurrent-
// modification hazards"). The unsubscribe closure holds the entry pointer
// directly, so it works whether it fires before or after a deferred
// registration is promoted into entries.
func (l *Listeners[T]) Add(cb func(T)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := &listenerEntry[T]{cb: cb}
	if l.dispatching {
		l.deferred = append(l.deferred, e)
	} else {
		l.entries = append(l.entries, e)
	}
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		e.cb = nil
	}
}

// Dispatch invokes every live callback, in registration order, on the
// calling goroutine. A panicking callback is recovered and logged by
// onPanic (nil onPanic silently drops it) so it cannot take down dispatch
// for the remaining listeners.
func (l *Listeners[T]) Dispatch(value T, onPanic func(recovered any)) {
	l.mu.Lock()
	l.dispatching = true
	entries := make([]*listenerEntry[T], len(l.entries))
	copy(entries, l.entries)
	l.mu.Unlock()

	for _, e := range entries {
		l.mu.Lock()
		cb := e.cb
		l.mu.Unlock()
		if cb == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil && onPanic != nil {
					onPanic(r)
				}
			}()
			cb(value)
		}()
	}

	l.mu.Lock()
	l.dispatching = false
	l.entries = append(l.entries, l.deferred...)
	l.deferred = nil
	l.mu.Unlock()
}
