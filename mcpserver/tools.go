package mcpserver

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mcpcore/sdk/schema"
)

// ToolHandler implements a registered tool's behavior. A returned error
// (or a panic) is converted to an in-band CallToolResult{IsError: true}
// (spec §4.5, §7) — it never becomes a JSON-RPC error response.
type ToolHandler func(ctx context.Context, arguments json.RawMessage) (*schema.CallToolResult, error)

type registeredTool struct {
	descriptor schema.Tool
	handler    ToolHandler
}

// toolRegistry holds the server's tool catalog, grounded on
// internal/server/aggregator.go's ListTools aggregation replaced by a
// single in-process map (this SDK has no upstream-multiplexing concept).
type toolRegistry struct {
	mu    sync.RWMutex
	tools map[string]registeredTool
	order []string
}

func newToolRegistry() *toolRegistry {
	return &toolRegistry{tools: make(map[string]registeredTool)}
}

func (r *toolRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

func (r *toolRegistry) set(descriptor schema.Tool, handler ToolHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[descriptor.Name]; !exists {
		r.order = append(r.order, descriptor.Name)
	}
	r.tools[descriptor.Name] = registeredTool{descriptor: descriptor, handler: handler}
}

func (r *toolRegistry) remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[name]; !ok {
		return false
	}
	delete(r.tools, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *toolRegistry) list() []schema.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].descriptor)
	}
	return out
}

func (r *toolRegistry) get(name string) (registeredTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// RegisterTool adds or replaces a tool and, once Operating with
// listChanged advertised, announces notifications/tools/list_changed
// (spec §4.2 "Tool registry mutation").
func (s *Server) RegisterTool(descriptor schema.Tool, handler ToolHandler) {
	s.tools.set(descriptor, handler)
	s.announceListChanged(schema.NotificationToolsListChanged, s.opts.ToolsListChanged)
}

// UnregisterTool removes a tool by name, reporting whether it existed.
func (s *Server) UnregisterTool(name string) bool {
	removed := s.tools.remove(name)
	if removed {
		s.announceListChanged(schema.NotificationToolsListChanged, s.opts.ToolsListChanged)
	}
	return removed
}

func (s *Server) handleToolsList(ctx context.Context, raw json.RawMessage) (any, *schema.RPCError) {
	return schema.ListToolsResult{Tools: s.tools.list()}, nil
}

func (s *Server) handleToolsCall(ctx context.Context, raw json.RawMessage) (result any, rpcErr *schema.RPCError) {
	var params schema.CallToolParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, schema.ErrInvalidParams(err.Error())
	}
	tool, ok := s.tools.get(params.Name)
	if !ok {
		return nil, schema.NewRPCError(schema.CodeInvalidParams, "Tool not found: "+params.Name, nil)
	}

	defer func() {
		if r := recover(); r != nil {
			if s.opts.Logger != nil {
				s.opts.Logger.Printf("mcpserver: tool %q handler panic: %v", params.Name, r)
			}
			result = schema.ErrorToolResult("tool handler panicked")
		}
	}()

	callResult, err := tool.handler(ctx, params.Arguments)
	if err != nil {
		return schema.ErrorToolResult(err.Error()), nil
	}
	if callResult == nil {
		callResult = schema.TextToolResult("")
	}
	return callResult, nil
}
