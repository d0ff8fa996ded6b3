package mcpclient

import (
	"context"
	"encoding/json"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
)

// ListPrompts requests the server's prompt catalog.
func (c *Client) ListPrompts(ctx context.Context) ([]schema.Prompt, error) {
	if !c.serverCapabilities.HasPrompts() {
		return nil, session.NewCapabilityError("server did not advertise prompts capability")
	}
	raw, err := c.sess.SendRequest(ctx, schema.MethodPromptsList, nil)
	if err != nil {
		return nil, err
	}
	var result schema.ListPromptsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, session.NewProtocolError(schema.CodeInternalError, "decode prompts/list result: "+err.Error())
	}
	return result.Prompts, nil
}

// GetPrompt renders a named prompt template with the given arguments.
func (c *Client) GetPrompt(ctx context.Context, name string, arguments map[string]string) (*schema.GetPromptResult, error) {
	if !c.serverCapabilities.HasPrompts() {
		return nil, session.NewCapabilityError("server did not advertise prompts capability")
	}
	params := schema.GetPromptParams{Name: name, Arguments: arguments}
	raw, err := c.sess.SendRequest(ctx, schema.MethodPromptsGet, params)
	if err != nil {
		return nil, err
	}
	var result schema.GetPromptResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, session.NewProtocolError(schema.CodeInternalError, "decode prompts/get result: "+err.Error())
	}
	return &result, nil
}

// OnPromptsListChanged registers cb to run on
// notifications/prompts/list_changed.
func (c *Client) OnPromptsListChanged(cb func()) (unsubscribe func()) {
	return c.promptsListChanged.Add(func(struct{}) { cb() })
}
