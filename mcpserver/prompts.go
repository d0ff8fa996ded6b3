package mcpserver

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mcpcore/sdk/schema"
)

// PromptHandler renders a registered prompt template for the given
// arguments.
type PromptHandler func(ctx context.Context, arguments map[string]string) (*schema.GetPromptResult, error)

type registeredPrompt struct {
	descriptor schema.Prompt
	handler    PromptHandler
}

type promptRegistry struct {
	mu      sync.RWMutex
	prompts map[string]registeredPrompt
	order   []string
}

func newPromptRegistry() *promptRegistry {
	return &promptRegistry{prompts: make(map[string]registeredPrompt)}
}

func (r *promptRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.prompts)
}

func (r *promptRegistry) set(descriptor schema.Prompt, handler PromptHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.prompts[descriptor.Name]; !exists {
		r.order = append(r.order, descriptor.Name)
	}
	r.prompts[descriptor.Name] = registeredPrompt{descriptor: descriptor, handler: handler}
}

func (r *promptRegistry) remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prompts[name]; !ok {
		return false
	}
	delete(r.prompts, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *promptRegistry) list() []schema.Prompt {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.Prompt, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.prompts[name].descriptor)
	}
	return out
}

func (r *promptRegistry) get(name string) (registeredPrompt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prompts[name]
	return p, ok
}

// RegisterPrompt adds or replaces a prompt template.
func (s *Server) RegisterPrompt(descriptor schema.Prompt, handler PromptHandler) {
	s.prompts.set(descriptor, handler)
	s.announceListChanged(schema.NotificationPromptsListChanged, s.opts.PromptsListChanged)
}

// UnregisterPrompt removes a prompt template by name.
func (s *Server) UnregisterPrompt(name string) bool {
	removed := s.prompts.remove(name)
	if removed {
		s.announceListChanged(schema.NotificationPromptsListChanged, s.opts.PromptsListChanged)
	}
	return removed
}

func (s *Server) handlePromptsList(ctx context.Context, raw json.RawMessage) (any, *schema.RPCError) {
	return schema.ListPromptsResult{Prompts: s.prompts.list()}, nil
}

func (s *Server) handlePromptsGet(ctx context.Context, raw json.RawMessage) (any, *schema.RPCError) {
	var params schema.GetPromptParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, schema.ErrInvalidParams(err.Error())
	}
	prompt, ok := s.prompts.get(params.Name)
	if !ok {
		return nil, schema.NewRPCError(schema.CodeInvalidParams, "unknown prompt: "+params.Name, nil)
	}
	result, err := prompt.handler(ctx, params.Arguments)
	if err != nil {
		return nil, schema.ErrInternalError(err.Error())
	}
	return result, nil
}
