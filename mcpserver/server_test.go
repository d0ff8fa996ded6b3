package mcpserver_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mcpcore/sdk/mcpclient"
	"github.com/mcpcore/sdk/mcpserver"
	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
	"github.com/mcpcore/sdk/transport"
)

func connectedPair(t *testing.T, serverOpts mcpserver.Options, clientOpts mcpclient.Options) (*mcpclient.Client, *mcpserver.Server, context.Context) {
	t.Helper()
	a, b := transport.NewInMemoryPair()
	client := mcpclient.New(a, clientOpts)
	server := mcpserver.New(b, serverOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	t.Cleanup(func() { client.Close(); server.Close() })

	go client.Run(ctx)
	go server.Run(ctx)

	if _, err := client.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && server.State() != session.StateOperating {
		time.Sleep(2 * time.Millisecond)
	}
	if server.State() != session.StateOperating {
		t.Fatal("server never reached Operating")
	}
	return client, server, ctx
}

// S1: initialization happy path.
func TestInitializationHappyPath(t *testing.T) {
	client, server, _ := connectedPair(t,
		mcpserver.Options{ServerInfo: schema.Implementation{Name: "srv", Version: "1.0"}},
		mcpclient.Options{ClientInfo: schema.Implementation{Name: "cli", Version: "1.0"}},
	)
	if client.State() != session.StateOperating {
		t.Errorf("client state = %s", client.State())
	}
	if server.ClientCapabilities().HasSampling() {
		t.Error("client advertised sampling it never requested")
	}
}

// S2: tool call that triggers a remote sampling request from the server.
func TestToolCallWithRemoteSampling(t *testing.T) {
	sampleCalls := make(chan struct{}, 1)
	// The tool is registered after initialize, so ToolsListChanged is what
	// makes the server advertise the tools capability the client gates on.
	client, server, ctx := connectedPair(t,
		mcpserver.Options{ServerInfo: schema.Implementation{Name: "srv", Version: "1.0"}, ToolsListChanged: true},
		mcpclient.Options{
			ClientInfo: schema.Implementation{Name: "cli", Version: "1.0"},
			Sampling: func(ctx context.Context, params schema.CreateMessageParams) (*schema.CreateMessageResult, error) {
				sampleCalls <- struct{}{}
				return &schema.CreateMessageResult{
					Role:    schema.RoleAssistant,
					Content: schema.NewTextContent("model output"),
					Model:   "test-model",
				}, nil
			},
		},
	)

	server.RegisterTool(schema.Tool{Name: "summarize"}, func(ctx context.Context, arguments json.RawMessage) (*schema.CallToolResult, error) {
		result, err := server.RequestSampling(ctx, schema.CreateMessageParams{
			Messages: []schema.SamplingMessage{{Role: schema.RoleUser, Content: schema.NewTextContent("summarize this")}},
		})
		if err != nil {
			return nil, err
		}
		return schema.TextToolResult(result.Content.Text()), nil
	})

	result, err := client.CallTool(ctx, "summarize", nil)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	select {
	case <-sampleCalls:
	case <-time.After(time.Second):
		t.Fatal("sampling handler never invoked")
	}
	if result.IsError || result.Content[0].Text() != "model output" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

// S3: sampling attempted against a client that never advertised it.
func TestSamplingWithoutCapabilityIsLocalError(t *testing.T) {
	_, server, _ := connectedPair(t,
		mcpserver.Options{ServerInfo: schema.Implementation{Name: "srv", Version: "1.0"}},
		mcpclient.Options{ClientInfo: schema.Implementation{Name: "cli", Version: "1.0"}},
	)

	_, err := server.RequestSampling(context.Background(), schema.CreateMessageParams{})
	if err == nil {
		t.Fatal("expected capability error")
	}
	sessErr, ok := err.(*session.Error)
	if !ok || sessErr.Kind != session.KindCapability {
		t.Errorf("expected capability error, got %v (%T)", err, err)
	}
	if !strings.Contains(sessErr.Message, "Client must be configured with sampling capabilities") {
		t.Errorf("expected message to contain %q, got %q", "Client must be configured with sampling capabilities", sessErr.Message)
	}
}

// S4: roots lifecycle — server requests the client's root list.
func TestRootsLifecycle(t *testing.T) {
	client, server, ctx := connectedPair(t,
		mcpserver.Options{ServerInfo: schema.Implementation{Name: "srv", Version: "1.0"}},
		mcpclient.Options{ClientInfo: schema.Implementation{Name: "cli", Version: "1.0"}, RootsListChanged: true},
	)
	if err := client.AddRoot(ctx, schema.Root{URI: "file:///proj", Name: "proj"}); err != nil {
		t.Fatalf("add root: %v", err)
	}

	roots, err := server.RequestRoots(ctx)
	if err != nil {
		t.Fatalf("request roots: %v", err)
	}
	if len(roots) != 1 || roots[0].URI != "file:///proj" {
		t.Fatalf("unexpected roots: %+v", roots)
	}
}

// S5: roots without capability — server's local gate rejects with a
// capability error before any wire traffic. The client's own rejection of
// a roots/list that bypasses this gate is covered in mcpclient's
// TestRootsListRejectedWithoutCapability.
func TestRootsWithoutCapability(t *testing.T) {
	_, server, ctx := connectedPair(t,
		mcpserver.Options{ServerInfo: schema.Implementation{Name: "srv", Version: "1.0"}},
		mcpclient.Options{ClientInfo: schema.Implementation{Name: "cli", Version: "1.0"}},
	)

	_, err := server.RequestRoots(ctx)
	if err == nil {
		t.Fatal("expected capability error")
	}
	sessErr, ok := err.(*session.Error)
	if !ok || sessErr.Kind != session.KindCapability {
		t.Errorf("expected capability error, got %v (%T)", err, err)
	}
	if !strings.Contains(sessErr.Message, "Roots not supported") {
		t.Errorf("expected message to contain %q, got %q", "Roots not supported", sessErr.Message)
	}
}

// S6: tool list change propagation.
func TestToolsListChangedPropagates(t *testing.T) {
	client, server, ctx := connectedPair(t,
		mcpserver.Options{ServerInfo: schema.Implementation{Name: "srv", Version: "1.0"}, ToolsListChanged: true},
		mcpclient.Options{ClientInfo: schema.Implementation{Name: "cli", Version: "1.0"}},
	)

	notified := make(chan struct{}, 1)
	client.OnToolsListChanged(func() { notified <- struct{}{} })

	server.RegisterTool(schema.Tool{Name: "new-tool"}, func(ctx context.Context, arguments json.RawMessage) (*schema.CallToolResult, error) {
		return schema.TextToolResult("ok"), nil
	})

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("client never received tools list_changed notification")
	}

	tools, err := client.ListTools(ctx)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(tools) != 1 || tools[0].Name != "new-tool" {
		t.Fatalf("unexpected tools: %+v", tools)
	}
}

// S7: graceful close with an active subscription outstanding.
func TestGracefulCloseWithActiveSubscription(t *testing.T) {
	client, server, ctx := connectedPair(t,
		mcpserver.Options{
			ServerInfo:         schema.Implementation{Name: "srv", Version: "1.0"},
			ResourcesSubscribe: true,
		},
		mcpclient.Options{ClientInfo: schema.Implementation{Name: "cli", Version: "1.0"}},
	)

	server.RegisterResource(schema.Resource{URI: "file:///log", Name: "log"}, func(ctx context.Context, uri string) ([]schema.ResourceContents, error) {
		return []schema.ResourceContents{{URI: uri, Text: "line1"}}, nil
	})
	if err := client.SubscribeResource(ctx, "file:///log"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Fatalf("client close: %v", err)
	}
	if client.State() != session.StateClosed {
		t.Errorf("client state after Close = %s, want closed", client.State())
	}

	// The server's own Run loop observes the closed transport
	// independently and must shut down cleanly rather than hang, even
	// with a live subscription outstanding.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && server.State() != session.StateClosed {
		time.Sleep(2 * time.Millisecond)
	}
	if server.State() != session.StateClosed {
		t.Errorf("server state = %s, want closed after peer disconnect", server.State())
	}
}
