package mcpclient

import (
	"context"
	"encoding/json"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
)

// ListTools requests the server's tool catalog (spec §4.2).
func (c *Client) ListTools(ctx context.Context) ([]schema.Tool, error) {
	if !c.serverCapabilities.HasTools() {
		return nil, session.NewCapabilityError("server did not advertise tools capability")
	}
	raw, err := c.sess.SendRequest(ctx, schema.MethodToolsList, nil)
	if err != nil {
		return nil, err
	}
	var result schema.ListToolsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, session.NewProtocolError(schema.CodeInternalError, "decode tools/list result: "+err.Error())
	}
	return result.Tools, nil
}

// CallTool invokes a named tool. A tool-level failure is reported via
// CallToolResult.IsError, not a Go error (spec §4.5) — only protocol and
// transport-level failures return a non-nil error here.
func (c *Client) CallTool(ctx context.Context, name string, arguments json.RawMessage) (*schema.CallToolResult, error) {
	if !c.serverCapabilities.HasTools() {
		return nil, session.NewCapabilityError("server did not advertise tools capability")
	}
	params := schema.CallToolParams{Name: name, Arguments: arguments}
	raw, err := c.sess.SendRequest(ctx, schema.MethodToolsCall, params)
	if err != nil {
		return nil, err
	}
	var result schema.CallToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, session.NewProtocolError(schema.CodeInternalError, "decode tools/call result: "+err.Error())
	}
	return &result, nil
}

// OnToolsListChanged registers cb to run whenever the server announces
// notifications/tools/list_changed.
func (c *Client) OnToolsListChanged(cb func()) (unsubscribe func()) {
	unsub := c.toolsListChanged.Add(func(struct{}) { cb() })
	return unsub
}
