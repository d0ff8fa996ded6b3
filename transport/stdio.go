package transport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"sync"
)

// DebugLogging enables verbose Send/Receive payload logging, matching the
// teacher's package-level internal/mcp.DebugLogging switch.
var DebugLogging bool

// Stdio implements Transport over a pair of pipe-like streams, framing one
// JSON-RPC message per line (NDJSON) as required by spec §6's stdio
// framing rule. Grounded on internal/mcp/transport.go's StdioTransport.
type Stdio struct {
	out io.WriteCloser
	in  io.ReadCloser

	reader *bufio.Reader

	mu     sync.Mutex
	closed bool
}

// NewStdio wraps an outbound writer and inbound reader as a Transport. For
// a client this is (child process stdin, child process stdout); for a
// server it is (stdout, stdin).
func NewStdio(out io.WriteCloser, in io.ReadCloser) *Stdio {
	return &Stdio{
		out:    out,
		in:     in,
		reader: bufio.NewReader(in),
	}
}

// Send writes one NDJSON line: the message bytes followed by '\n'. Line
// content must not contain embedded newlines (spec §6).
func (t *Stdio) Send(ctx context.Context, msg []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transport closed")
	}
	if DebugLogging {
		log.Printf("mcp send: %s", msg)
	}
	if bytes.ContainsRune(msg, '\n') {
		return fmt.Errorf("message contains embedded newline")
	}
	if _, err := t.out.Write(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if _, err := t.out.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

type stdioReadResult struct {
	line []byte
	err  error
}

// Receive reads the next NDJSON line, respecting context cancellation by
// closing the underlying reader to unblock a pending read, exactly as
// internal/mcp/transport.go's Receive does.
func (t *Stdio) Receive(ctx context.Context) ([]byte, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, fmt.Errorf("transport closed")
	}
	t.mu.Unlock()

	resultCh := make(chan stdioReadResult, 1)
	go func() {
		line, err := t.reader.ReadBytes('\n')
		resultCh <- stdioReadResult{line: line, err: err}
	}()

	select {
	case result := <-resultCh:
		if result.err != nil && len(result.line) == 0 {
			return nil, fmt.Errorf("read line: %w", result.err)
		}
		msg := bytes.TrimSpace(result.line)
		if DebugLogging {
			log.Printf("mcp recv: %s", msg)
		}
		if len(msg) == 0 && result.err != nil {
			return nil, fmt.Errorf("read line: %w", result.err)
		}
		return msg, nil
	case <-ctx.Done():
		_ = t.in.Close()
		return nil, ctx.Err()
	}
}

// Close closes both the outbound writer and inbound reader. Safe to call
// more than once (spec §8 invariant 6).
func (t *Stdio) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	if err := t.out.Close(); err != nil {
		firstErr = fmt.Errorf("close out: %w", err)
	}
	if err := t.in.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close in: %w", err)
	}
	return firstErr
}
