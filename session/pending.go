package session

import (
	"encoding/json"
	"sync"

	"github.com/mcpcore/sdk/schema"
)

// pendingResult is what eventually arrives on a pendingEntry's channel:
// either a decoded result or an error.
type pendingResult struct {
	result json.RawMessage
	err    error
}

// pendingEntry is the one-shot completion slot spec §3 "Pending request
// table" describes: it accepts exactly one response, success or error, or
// a cancellation.
type pendingEntry struct {
	ch        chan pendingResult
	completed bool
}

// pendingTable is the session's pending-request table, mutated under a
// single mutex per spec §5 "Shared-resource policy".
type pendingTable struct {
	mu      sync.Mutex
	entries map[int64]*pendingEntry
}

func newPendingTable() *pendingTable {
	return &pendingTable{entries: make(map[int64]*pendingEntry)}
}

// store installs a new entry for id. Per spec §9 "duplicate request ids":
// if an entry already exists and has not completed, the new one is
// rejected (ok=false) rather than silently replacing in-flight state;
// the second use of an id only replaces the first slot once the first has
// already completed.
func (t *pendingTable) store(id int64) (*pendingEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, found := t.entries[id]; found && !existing.completed {
		return nil, false
	}
	e := &pendingEntry{ch: make(chan pendingResult, 1)}
	t.entries[id] = e
	return e, true
}

// complete resolves the pending entry for id with a result or error. It
// reports whether an entry was found; a late or duplicate response for an
// id with no waiting entry is dropped (spec §4.3 dispatch rule 2).
func (t *pendingTable) complete(id int64, result json.RawMessage, rpcErr *schema.RPCError) bool {
	t.mu.Lock()
	e, found := t.entries[id]
	if !found || e.completed {
		t.mu.Unlock()
		return false
	}
	e.completed = true
	delete(t.entries, id)
	t.mu.Unlock()

	var err error
	if rpcErr != nil {
		err = rpcErr
	}
	e.ch <- pendingResult{result: result, err: err}
	return true
}

// expire removes the entry for id without completing it — used when the
// caller gives up locally (deadline or context cancellation), so that a
// subsequent late response for that id is dropped silently (spec §4.3
// "Timeouts").
func (t *pendingTable) expire(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// closeAll completes every still-pending entry with SessionClosed, exactly
// once each, and empties the table (spec §3 invariant 4, §4.3 "On entry to
// Closing").
func (t *pendingTable) closeAll() {
	t.mu.Lock()
	entries := make([]*pendingEntry, 0, len(t.entries))
	for id, e := range t.entries {
		e.completed = true
		entries = append(entries, e)
		delete(t.entries, id)
	}
	t.mu.Unlock()

	for _, e := range entries {
		e.ch <- pendingResult{err: ErrSessionClosed()}
	}
}
