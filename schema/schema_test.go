package schema

import (
	"encoding/json"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	cases := []RequestID{NewIntID(42), NewStringID("abc-123")}
	for _, id := range cases {
		b, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got RequestID
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.String() != id.String() {
			t.Errorf("round trip mismatch: got %q want %q", got.String(), id.String())
		}
	}
}

func TestMessageClassification(t *testing.T) {
	id := NewIntID(1)
	req := Message{JSONRPC: JSONRPCVersion, ID: &id, Method: "tools/list"}
	if !req.IsRequest() || req.IsResponse() || req.IsNotification() {
		t.Errorf("request misclassified: %+v", req)
	}

	resp := Message{JSONRPC: JSONRPCVersion, ID: &id, Result: json.RawMessage(`{}`)}
	if !resp.IsResponse() || resp.IsRequest() || resp.IsNotification() {
		t.Errorf("response misclassified: %+v", resp)
	}

	notif := Message{JSONRPC: JSONRPCVersion, Method: "notifications/initialized"}
	if !notif.IsNotification() || notif.IsRequest() || notif.IsResponse() {
		t.Errorf("notification misclassified: %+v", notif)
	}
}

func TestContentRoundTrip(t *testing.T) {
	orig := NewTextContent("hello world")
	b, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Content
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != "text" || got.Text() != "hello world" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestContentPreservesUnknownVariant(t *testing.T) {
	raw := []byte(`{"type":"resource","resource":{"uri":"file:///a","mimeType":"text/plain","text":"hi"}}`)
	var c Content
	if err := json.Unmarshal(raw, &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var roundTripped map[string]any
	if err := json.Unmarshal(b, &roundTripped); err != nil {
		t.Fatalf("unmarshal roundtrip: %v", err)
	}
	if roundTripped["type"] != "resource" {
		t.Errorf("lost discriminator: %s", b)
	}
}

func TestLoggingLevelMeets(t *testing.T) {
	if !LogError.Meets(LogWarning) {
		t.Error("error should meet warning threshold")
	}
	if LogDebug.Meets(LogWarning) {
		t.Error("debug should not meet warning threshold")
	}
}

func TestCallToolResultConstructors(t *testing.T) {
	ok := TextToolResult("done")
	if ok.IsError {
		t.Error("TextToolResult should not be an error")
	}
	bad := ErrorToolResult("boom")
	if !bad.IsError {
		t.Error("ErrorToolResult should be an error")
	}
	if len(ok.Content) != 1 || ok.Content[0].Text() != "done" {
		t.Errorf("unexpected content: %+v", ok.Content)
	}
}
