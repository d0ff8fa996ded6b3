package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
)

// RequestRoots issues a server-initiated roots/list call. Gated locally
// on the client's advertised roots capability (spec §4.4 "Roots").
func (s *Server) RequestRoots(ctx context.Context) ([]schema.Root, error) {
	if !s.clientCapabilities.HasRoots() {
		return nil, session.NewCapabilityError("Roots not supported")
	}
	raw, err := s.sess.SendRequest(ctx, schema.MethodRootsList, nil)
	if err != nil {
		return nil, err
	}
	var result schema.ListRootsResult
	if jsonErr := json.Unmarshal(raw, &result); jsonErr != nil {
		return nil, session.NewProtocolError(schema.CodeInternalError, "decode roots/list result: "+jsonErr.Error())
	}
	return result.Roots, nil
}

// handleRootsListChanged reacts to the client's
// notifications/roots/list_changed by invoking every listener registered
// via RegisterRootsListChangedHandler, in registration order.
func (s *Server) handleRootsListChanged(ctx context.Context, raw json.RawMessage) {
	s.rootsListChanged.Dispatch(struct{}{}, func(recovered any) {
		if s.opts.Logger != nil {
			s.opts.Logger.Printf("mcpserver: panic in roots list_changed listener: %v", recovered)
		}
	})
}

// RegisterRootsListChangedHandler installs cb to run whenever the client
// announces its root list changed.
func (s *Server) RegisterRootsListChangedHandler(cb func()) (unsubscribe func()) {
	return s.rootsListChanged.Add(func(struct{}) { cb() })
}
