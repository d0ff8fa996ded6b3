package mcptest_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mcpcore/sdk/mcpclient"
	"github.com/mcpcore/sdk/mcptest"
	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
)

func TestClientAgainstEchoFakePeer(t *testing.T) {
	clientSide, _ := mcptest.StartFakePeer(t, mcptest.EchoToolConfig())
	client := mcpclient.New(clientSide, mcpclient.Options{ClientInfo: schema.Implementation{Name: "c", Version: "1.0"}})
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go client.Run(ctx)

	if _, err := client.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	tools, err := client.ListTools(ctx)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(tools) != 1 || tools[0].Name != "echo" {
		t.Fatalf("unexpected tools: %+v", tools)
	}

	result, err := client.CallTool(ctx, "echo", json.RawMessage(`{"x":1}`))
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError || result.Content[0].Text() != `{"x":1}` {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestClientAgainstMalformedFakePeer(t *testing.T) {
	clientSide, _ := mcptest.StartFakePeer(t, mcptest.MalformedConfig())
	client := mcpclient.New(clientSide, mcpclient.Options{ClientInfo: schema.Implementation{Name: "c", Version: "1.0"}})
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	go client.Run(ctx)

	_, err := client.Initialize(ctx)
	if err == nil {
		t.Fatal("expected initialize to fail against a malformed peer")
	}
	sessErr, ok := err.(*session.Error)
	if !ok || sessErr.Kind != session.KindTimeout {
		t.Errorf("expected timeout error (the malformed frame is dropped, never answered), got %v (%T)", err, err)
	}
}

func TestClientTimesOutAgainstSlowInitialize(t *testing.T) {
	clientSide, _ := mcptest.StartFakePeer(t, mcptest.SlowInitializeConfig(time.Second))
	client := mcpclient.New(clientSide, mcpclient.Options{ClientInfo: schema.Implementation{Name: "c", Version: "1.0"}})
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	go client.Run(ctx)

	_, err := client.Initialize(ctx)
	if err == nil {
		t.Fatal("expected initialize to time out")
	}
	sessErr, ok := err.(*session.Error)
	if !ok || sessErr.Kind != session.KindTimeout {
		t.Errorf("expected timeout error, got %v (%T)", err, err)
	}
}
