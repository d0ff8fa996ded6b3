// Package mcptest provides scriptable test infrastructure for exercising
// mcpclient and mcpserver against edge-case wire behavior (malformed
// frames, out-of-order responses, forced errors, injected latency) that
// a conformant session.Session would never itself produce. Grounded on
// internal/mcptest/fakeserver's Config-driven fake server, adapted from a
// subprocess writing raw NDJSON to os.Stdout into an in-process goroutine
// writing to a transport.Transport — this SDK is a library, not a
// spawn-a-binary product, so the teacher's re-exec/subprocess plumbing
// has no equivalent here.
package mcptest

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/transport"
)

// ToolHandler answers a scripted tools/call. Distinct from mcpserver's
// ToolHandler: fakePeer speaks raw wire messages, not session.Session.
type ToolHandler func(name string, arguments json.RawMessage) (*schema.CallToolResult, error)

// Config scripts a FakePeer's behavior per spec.md §8's seed scenarios:
// latency injection, forced errors, malformed frames, and out-of-order
// delivery, grounded on fakeserver.Config's equivalent fields.
type Config struct {
	ServerInfo   schema.Implementation
	Capabilities schema.ServerCapabilities
	Tools        []schema.Tool
	ToolHandler  ToolHandler

	// Delays injects a per-method artificial latency before responding.
	Delays map[string]time.Duration

	// Errors forces a JSON-RPC error response for the given method,
	// instead of the default canned handling.
	Errors map[string]*schema.RPCError

	// SendNotificationBeforeResponse emits a no-op notification ahead of
	// every response, exercising a client's tolerance for interleaved
	// messages (grounded on fakeserver.Config's identically-named field).
	SendNotificationBeforeResponse bool

	// SendMismatchedIDFirst emits a response with a bogus id before the
	// real one, exercising dispatchResponse's "drop unknown id" path.
	SendMismatchedIDFirst bool

	// Malformed, if true, writes an unparseable frame instead of any
	// response.
	Malformed bool
}

// FakePeer is a scriptable, non-conformant server-role peer driven
// directly over a transport.Transport, bypassing session.Session so it
// can produce wire behavior a real Session never would.
type FakePeer struct {
	t         transport.Transport
	cfg       Config
	mu        sync.Mutex
	reqCount  int
}

// NewFakePeer wraps t with the given script.
func NewFakePeer(t transport.Transport, cfg Config) *FakePeer {
	return &FakePeer{t: t, cfg: cfg}
}

// Serve reads and answers messages until ctx is cancelled or the
// transport closes, in the same read-loop shape as
// internal/mcptest/fakeserver's Serve.
func (f *FakePeer) Serve(ctx context.Context) error {
	for {
		raw, err := f.t.Receive(ctx)
		if err != nil {
			return err
		}
		if len(raw) == 0 {
			continue
		}
		var msg schema.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.ID == nil {
			continue // notifications are not answered
		}
		f.mu.Lock()
		f.reqCount++
		f.mu.Unlock()

		if delay, ok := f.cfg.Delays[msg.Method]; ok {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if f.cfg.Malformed {
			_ = f.t.Send(ctx, []byte("{not json"))
			continue
		}
		if f.cfg.SendNotificationBeforeResponse {
			noise, _ := json.Marshal(schema.Message{JSONRPC: schema.JSONRPCVersion, Method: "test/noise"})
			_ = f.t.Send(ctx, noise)
		}
		if f.cfg.SendMismatchedIDFirst {
			bogusID := schema.NewIntID(999999)
			bogus, _ := json.Marshal(schema.Message{JSONRPC: schema.JSONRPCVersion, ID: &bogusID, Result: json.RawMessage(`{}`)})
			_ = f.t.Send(ctx, bogus)
		}

		if rpcErr, forced := f.cfg.Errors[msg.Method]; forced {
			f.reply(ctx, *msg.ID, nil, rpcErr)
			continue
		}

		result, rpcErr := f.handle(msg.Method, msg.Params)
		f.reply(ctx, *msg.ID, result, rpcErr)
	}
}

func (f *FakePeer) handle(method string, params json.RawMessage) (any, *schema.RPCError) {
	switch method {
	case schema.MethodInitialize:
		return schema.InitializeResult{
			ProtocolVersion: schema.ProtocolVersion,
			ServerInfo:      f.cfg.ServerInfo,
			Capabilities:    f.cfg.Capabilities,
		}, nil
	case schema.MethodPing:
		return struct{}{}, nil
	case schema.MethodToolsList:
		return schema.ListToolsResult{Tools: f.cfg.Tools}, nil
	case schema.MethodToolsCall:
		var p schema.CallToolParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, schema.ErrInvalidParams(err.Error())
		}
		if f.cfg.ToolHandler == nil {
			return nil, schema.NewRPCError(schema.CodeInvalidParams, "no tool handler scripted", nil)
		}
		result, err := f.cfg.ToolHandler(p.Name, p.Arguments)
		if err != nil {
			return nil, schema.ErrInternalError(err.Error())
		}
		return result, nil
	default:
		return nil, schema.ErrMethodNotFound(method)
	}
}

func (f *FakePeer) reply(ctx context.Context, id schema.RequestID, result any, rpcErr *schema.RPCError) {
	msg := schema.Message{JSONRPC: schema.JSONRPCVersion, ID: &id}
	if rpcErr != nil {
		msg.Error = rpcErr
	} else {
		resultBytes, err := json.Marshal(result)
		if err != nil {
			msg.Error = schema.ErrInternalError(err.Error())
		} else {
			msg.Result = resultBytes
		}
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	_ = f.t.Send(ctx, data)
}

// RequestCount reports how many requests this peer has answered so far.
func (f *FakePeer) RequestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqCount
}
