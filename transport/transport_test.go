package transport

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryPairRoundTrip(t *testing.T) {
	a, b := NewInMemoryPair()
	defer a.Close()
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := a.Send(ctx, []byte(`{"jsonrpc":"2.0","method":"ping"}`)); err != nil {
		t.Fatalf("send: %v", err)
	}
	got, err := b.Receive(ctx)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if string(got) != `{"jsonrpc":"2.0","method":"ping"}` {
		t.Errorf("unexpected payload: %s", got)
	}
}

func TestInMemoryPairPreservesOrder(t *testing.T) {
	a, b := NewInMemoryPair()
	defer a.Close()
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	messages := []string{"one", "two", "three"}
	for _, m := range messages {
		if err := a.Send(ctx, []byte(m)); err != nil {
			t.Fatalf("send %q: %v", m, err)
		}
	}
	for _, want := range messages {
		got, err := b.Receive(ctx)
		if err != nil {
			t.Fatalf("receive: %v", err)
		}
		if string(got) != want {
			t.Errorf("out of order: got %q want %q", got, want)
		}
	}
}

func TestStdioCloseIsIdempotent(t *testing.T) {
	a, _ := NewInMemoryPair()
	if err := a.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}
}

func TestReceiveRespectsContextCancellation(t *testing.T) {
	a, _ := NewInMemoryPair()
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Receive(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestSendRejectsEmbeddedNewline(t *testing.T) {
	a, b := NewInMemoryPair()
	defer a.Close()
	defer b.Close()

	if err := a.Send(context.Background(), []byte("line one\nline two")); err == nil {
		t.Error("expected error for embedded newline")
	}
}
