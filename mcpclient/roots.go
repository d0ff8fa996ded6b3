package mcpclient

import (
	"context"
	"encoding/json"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
)

// AddRoot appends a root to the client's advertised list and, if the
// session is Operating and listChanged was promised, emits
// notifications/roots/list_changed (spec §4.4 "Roots").
func (c *Client) AddRoot(ctx context.Context, root schema.Root) error {
	c.rootsMu.Lock()
	c.roots = append(c.roots, root)
	c.rootsMu.Unlock()
	return c.notifyRootsChanged(ctx)
}

// RemoveRoot removes the first root with the given URI, if present.
func (c *Client) RemoveRoot(ctx context.Context, uri string) error {
	c.rootsMu.Lock()
	for i, r := range c.roots {
		if r.URI == uri {
			c.roots = append(c.roots[:i], c.roots[i+1:]...)
			break
		}
	}
	c.rootsMu.Unlock()
	return c.notifyRootsChanged(ctx)
}

// Roots returns a snapshot of the client's current root list.
func (c *Client) Roots() []schema.Root {
	c.rootsMu.Lock()
	defer c.rootsMu.Unlock()
	out := make([]schema.Root, len(c.roots))
	copy(out, c.roots)
	return out
}

func (c *Client) notifyRootsChanged(ctx context.Context) error {
	if c.sess.State() != session.StateOperating || !c.opts.RootsListChanged {
		return nil
	}
	return c.sess.SendNotification(ctx, schema.NotificationRootsListChanged, nil)
}

// handleRootsList answers an inbound roots/list request with the current
// root list, rejecting with a capability-range error if this client never
// advertised the roots capability during Initialize (spec §4.4 "roots/list
// -> ... Rejected with Roots not supported if the client did not advertise
// roots").
func (c *Client) handleRootsList(ctx context.Context, params json.RawMessage) (any, *schema.RPCError) {
	if !c.advertisedRoots {
		return nil, schema.NewRPCError(schema.CodeCapabilityMissing, "Roots not supported", nil)
	}
	return schema.ListRootsResult{Roots: c.Roots()}, nil
}
