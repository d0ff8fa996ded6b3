package mcpserver

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
)

// ResourceHandler reads a registered resource's current contents.
type ResourceHandler func(ctx context.Context, uri string) ([]schema.ResourceContents, error)

type registeredResource struct {
	descriptor schema.Resource
	handler    ResourceHandler
}

type resourceRegistry struct {
	mu          sync.RWMutex
	resources   map[string]registeredResource
	order       []string
	subscribers map[string]bool
}

func newResourceRegistry() *resourceRegistry {
	return &resourceRegistry{
		resources:   make(map[string]registeredResource),
		subscribers: make(map[string]bool),
	}
}

func (r *resourceRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resources)
}

func (r *resourceRegistry) set(descriptor schema.Resource, handler ResourceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.resources[descriptor.URI]; !exists {
		r.order = append(r.order, descriptor.URI)
	}
	r.resources[descriptor.URI] = registeredResource{descriptor: descriptor, handler: handler}
}

func (r *resourceRegistry) remove(uri string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[uri]; !ok {
		return false
	}
	delete(r.resources, uri)
	delete(r.subscribers, uri)
	for i, u := range r.order {
		if u == uri {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *resourceRegistry) list() []schema.Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.Resource, 0, len(r.order))
	for _, uri := range r.order {
		out = append(out, r.resources[uri].descriptor)
	}
	return out
}

func (r *resourceRegistry) get(uri string) (registeredResource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resources[uri]
	return res, ok
}

func (r *resourceRegistry) subscribe(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers[uri] = true
}

func (r *resourceRegistry) isSubscribed(uri string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.subscribers[uri]
}

// RegisterResource adds or replaces a resource.
func (s *Server) RegisterResource(descriptor schema.Resource, handler ResourceHandler) {
	s.resources.set(descriptor, handler)
	s.announceListChanged(schema.NotificationResourcesListChanged, s.opts.ResourcesListChanged)
}

// UnregisterResource removes a resource by URI.
func (s *Server) UnregisterResource(uri string) bool {
	removed := s.resources.remove(uri)
	if removed {
		s.announceListChanged(schema.NotificationResourcesListChanged, s.opts.ResourcesListChanged)
	}
	return removed
}

// PublishResourceUpdated emits notifications/resources/updated for uri if
// a client previously subscribed to it (spec §4.2 "Resources"). A no-op
// if nobody subscribed, or if the server never advertised
// resources.subscribe.
func (s *Server) PublishResourceUpdated(ctx context.Context, uri string) error {
	if !s.opts.ResourcesSubscribe || !s.resources.isSubscribed(uri) {
		return nil
	}
	if s.sess.State() != session.StateOperating {
		return nil
	}
	return s.sess.SendNotification(ctx, schema.NotificationResourcesUpdated, schema.ResourceUpdatedParams{URI: uri})
}

func (s *Server) handleResourcesList(ctx context.Context, raw json.RawMessage) (any, *schema.RPCError) {
	return schema.ListResourcesResult{Resources: s.resources.list()}, nil
}

func (s *Server) handleResourcesRead(ctx context.Context, raw json.RawMessage) (any, *schema.RPCError) {
	var params schema.ReadResourceParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, schema.ErrInvalidParams(err.Error())
	}
	res, ok := s.resources.get(params.URI)
	if !ok {
		return nil, schema.NewRPCError(schema.CodeInvalidParams, "unknown resource: "+params.URI, nil)
	}
	contents, err := res.handler(ctx, params.URI)
	if err != nil {
		return nil, schema.ErrInternalError(err.Error())
	}
	return schema.ReadResourceResult{Contents: contents}, nil
}

func (s *Server) handleResourcesSubscribe(ctx context.Context, raw json.RawMessage) (any, *schema.RPCError) {
	if !s.opts.ResourcesSubscribe {
		return nil, schema.NewRPCError(schema.CodeCapabilityMissing, "resources.subscribe not supported", nil)
	}
	var params schema.SubscribeResourceParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, schema.ErrInvalidParams(err.Error())
	}
	if _, ok := s.resources.get(params.URI); !ok {
		return nil, schema.NewRPCError(schema.CodeInvalidParams, "unknown resource: "+params.URI, nil)
	}
	s.resources.subscribe(params.URI)
	return struct{}{}, nil
}
