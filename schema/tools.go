package schema

import "encoding/json"

// Tool is a declarative descriptor of a server-exposed operation: name,
// human description, and a JSON-schema document describing its arguments.
// Grounded on internal/mcp/transport.go's Tool struct, with the schema
// field typed as json.RawMessage so the SDK never needs a JSON-schema
// validation dependency (it passes the document through to whichever
// client consumes it).
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// ListToolsResult is the result of tools/list.
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolParams is the params of tools/call.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// CallToolResult is the result of tools/call. IsError signals an in-band
// tool failure (spec §4.5, §7 HandlerError) — it is never a JSON-RPC
// error response.
type CallToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// TextToolResult builds a single-text-block, non-error result.
func TextToolResult(text string) *CallToolResult {
	return &CallToolResult{Content: []Content{NewTextContent(text)}}
}

// ErrorToolResult builds a single-text-block, in-band error result.
func ErrorToolResult(message string) *CallToolResult {
	return &CallToolResult{Content: []Content{NewTextContent(message)}, IsError: true}
}
