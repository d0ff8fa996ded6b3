package mcptest

import (
	"encoding/json"
	"time"

	"github.com/mcpcore/sdk/schema"
)

// EchoToolConfig returns a Config exposing a single "echo" tool that
// returns its input arguments as text, grounded on
// internal/mcptest/fakeserver.Config's EchoToolCalls convenience field.
func EchoToolConfig() Config {
	return Config{
		ServerInfo:   schema.Implementation{Name: "mcptest-echo", Version: "0.0.0"},
		Capabilities: schema.ServerCapabilities{Tools: &schema.ToolsCapability{}},
		Tools: []schema.Tool{
			{Name: "echo", Description: "returns its arguments as text"},
		},
		ToolHandler: func(name string, arguments json.RawMessage) (*schema.CallToolResult, error) {
			return schema.TextToolResult(string(arguments)), nil
		},
	}
}

// MalformedConfig returns a Config that responds to every request with
// an unparseable frame, for testing a client's parse-error tolerance.
func MalformedConfig() Config {
	return Config{Malformed: true}
}

// SlowInitializeConfig returns a Config that delays the initialize
// response by delay, for testing deadline/timeout behavior.
func SlowInitializeConfig(delay time.Duration) Config {
	return Config{
		ServerInfo: schema.Implementation{Name: "mcptest-slow", Version: "0.0.0"},
		Delays:     map[string]time.Duration{schema.MethodInitialize: delay},
	}
}
