package mcpclient

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
	"github.com/mcpcore/sdk/transport"
)

// fakeServer is a minimal hand-rolled peer for exercising mcpclient
// without depending on the mcpserver package. It answers initialize with
// a fixed capability set and lets the test register additional handlers
// before Run starts.
type fakeServer struct {
	sess *session.Session
}

func newFakeServer(t transport.Transport, caps schema.ServerCapabilities) *fakeServer {
	s := &fakeServer{sess: session.New(t, session.RoleServer, nil)}
	s.sess.RegisterRequestHandler(schema.MethodInitialize, func(ctx context.Context, params json.RawMessage) (any, *schema.RPCError) {
		return schema.InitializeResult{
			ProtocolVersion: schema.ProtocolVersion,
			ServerInfo:      schema.Implementation{Name: "fake", Version: "0.0.1"},
			Capabilities:    caps,
		}, nil
	})
	return s
}

func setup(t *testing.T, caps schema.ServerCapabilities, clientOpts Options) (*Client, *fakeServer, context.Context) {
	t.Helper()
	a, b := transport.NewInMemoryPair()
	client := New(a, clientOpts)
	server := newFakeServer(b, caps)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	t.Cleanup(func() { client.Close(); server.sess.Close() })

	go client.Run(ctx)
	go server.sess.Run(ctx)

	if _, err := client.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	// The server's transition to Operating happens asynchronously on its
	// own dispatch goroutine as it processes the inbound
	// notifications/initialized; wait for it so server-initiated
	// SendRequest calls in tests don't race the gate in
	// checkOutboundGate.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if server.sess.PeerInitializedObserved() {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	if !server.sess.PeerInitializedObserved() {
		t.Fatal("server never observed notifications/initialized")
	}
	return client, server, ctx
}

func TestListAndCallTool(t *testing.T) {
	caps := schema.ServerCapabilities{Tools: &schema.ToolsCapability{}}
	client, server, ctx := setup(t, caps, Options{ClientInfo: schema.Implementation{Name: "c", Version: "1.0"}})

	server.sess.RegisterRequestHandler(schema.MethodToolsList, func(ctx context.Context, params json.RawMessage) (any, *schema.RPCError) {
		return schema.ListToolsResult{Tools: []schema.Tool{{Name: "echo"}}}, nil
	})
	server.sess.RegisterRequestHandler(schema.MethodToolsCall, func(ctx context.Context, params json.RawMessage) (any, *schema.RPCError) {
		var p schema.CallToolParams
		_ = json.Unmarshal(params, &p)
		if p.Name != "echo" {
			return schema.ErrorToolResult("unknown tool"), nil
		}
		return schema.TextToolResult("echoed"), nil
	})

	tools, err := client.ListTools(ctx)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(tools) != 1 || tools[0].Name != "echo" {
		t.Fatalf("unexpected tools: %+v", tools)
	}

	result, err := client.CallTool(ctx, "echo", nil)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error result: %+v", result)
	}
	if len(result.Content) != 1 || result.Content[0].Text() != "echoed" {
		t.Fatalf("unexpected content: %+v", result.Content)
	}
}

func TestListToolsWithoutCapabilityIsLocalError(t *testing.T) {
	client, _, ctx := setup(t, schema.ServerCapabilities{}, Options{})
	_, err := client.ListTools(ctx)
	if err == nil {
		t.Fatal("expected capability error")
	}
	sessErr, ok := err.(*session.Error)
	if !ok || sessErr.Kind != session.KindCapability {
		t.Errorf("expected capability error, got %v (%T)", err, err)
	}
}

func TestSamplingRoundTrip(t *testing.T) {
	handlerCalled := make(chan schema.CreateMessageParams, 1)
	client, server, ctx := setup(t, schema.ServerCapabilities{}, Options{
		Sampling: func(ctx context.Context, params schema.CreateMessageParams) (*schema.CreateMessageResult, error) {
			handlerCalled <- params
			return &schema.CreateMessageResult{
				Role:    schema.RoleAssistant,
				Content: schema.NewTextContent("sampled"),
				Model:   "test-model",
			}, nil
		},
	})

	raw, err := server.sess.SendRequest(ctx, schema.MethodSamplingCreateMessage, schema.CreateMessageParams{
		Messages: []schema.SamplingMessage{{Role: schema.RoleUser, Content: schema.NewTextContent("hi")}},
	})
	if err != nil {
		t.Fatalf("server-initiated sampling call: %v", err)
	}
	select {
	case <-handlerCalled:
	case <-time.After(time.Second):
		t.Fatal("sampling handler never invoked")
	}
	var result schema.CreateMessageResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Content.Text() != "sampled" {
		t.Errorf("unexpected result content: %+v", result)
	}
}

func TestRootsListServedFromClientState(t *testing.T) {
	client, server, ctx := setup(t, schema.ServerCapabilities{}, Options{RootsListChanged: true})

	if err := client.AddRoot(ctx, schema.Root{URI: "file:///a", Name: "a"}); err != nil {
		t.Fatalf("add root: %v", err)
	}

	raw, err := server.sess.SendRequest(ctx, schema.MethodRootsList, nil)
	if err != nil {
		t.Fatalf("roots/list: %v", err)
	}
	var result schema.ListRootsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Roots) != 1 || result.Roots[0].URI != "file:///a" {
		t.Fatalf("unexpected roots: %+v", result.Roots)
	}
}

func TestRootsListRejectedWithoutCapability(t *testing.T) {
	_, server, ctx := setup(t, schema.ServerCapabilities{}, Options{})

	_, err := server.sess.SendRequest(ctx, schema.MethodRootsList, nil)
	if err == nil {
		t.Fatal("expected roots/list to be rejected")
	}
	rpcErr, ok := err.(*schema.RPCError)
	if !ok {
		t.Fatalf("expected *schema.RPCError, got %T", err)
	}
	if rpcErr.Code != schema.CodeCapabilityMissing {
		t.Errorf("expected capability-range code %d, got %d", schema.CodeCapabilityMissing, rpcErr.Code)
	}
	if rpcErr.Message != "Roots not supported" {
		t.Errorf("unexpected message: %q", rpcErr.Message)
	}
}

func TestLoggingMessageListenerFanOut(t *testing.T) {
	client, server, ctx := setup(t, schema.ServerCapabilities{Logging: &schema.LoggingCapability{}}, Options{})

	var got []schema.LoggingMessageParams
	done := make(chan struct{})
	client.OnLoggingMessage(func(p schema.LoggingMessageParams) {
		got = append(got, p)
		if len(got) == 1 {
			close(done)
		}
	})

	if err := server.sess.SendNotification(ctx, schema.NotificationLoggingMessage, schema.LoggingMessageParams{
		Level: schema.LogWarning, Data: "disk is getting full",
	}); err != nil {
		t.Fatalf("send notification: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("logging message listener never invoked")
	}
	if got[0].Level != schema.LogWarning {
		t.Errorf("unexpected level: %s", got[0].Level)
	}
}
