package mcpclient

import (
	"context"
	"encoding/json"

	"github.com/mcpcore/sdk/schema"
)

// registerHandlers installs the client's inbound request and
// notification handlers on the underlying session. Called once from New.
func (c *Client) registerHandlers() {
	c.sess.RegisterRequestHandler(schema.MethodRootsList, c.handleRootsList)
	if c.sampling != nil {
		c.sess.RegisterRequestHandler(schema.MethodSamplingCreateMessage, c.handleCreateMessage)
	}

	c.sess.RegisterNotificationHandler(schema.NotificationToolsListChanged, func(ctx context.Context, params json.RawMessage) {
		c.toolsListChanged.Dispatch(struct{}{}, c.logPanic("tools list_changed listener"))
	})
	c.sess.RegisterNotificationHandler(schema.NotificationPromptsListChanged, func(ctx context.Context, params json.RawMessage) {
		c.promptsListChanged.Dispatch(struct{}{}, c.logPanic("prompts list_changed listener"))
	})
	c.sess.RegisterNotificationHandler(schema.NotificationResourcesListChanged, func(ctx context.Context, params json.RawMessage) {
		c.resourcesListChanged.Dispatch(struct{}{}, c.logPanic("resources list_changed listener"))
	})
	c.sess.RegisterNotificationHandler(schema.NotificationResourcesUpdated, func(ctx context.Context, raw json.RawMessage) {
		var params schema.ResourceUpdatedParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return
		}
		c.resourcesUpdated.Dispatch(params, c.logPanic("resources updated listener"))
	})
	c.sess.RegisterNotificationHandler(schema.NotificationLoggingMessage, func(ctx context.Context, raw json.RawMessage) {
		var params schema.LoggingMessageParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return
		}
		c.loggingMessage.Dispatch(params, c.logPanic("logging message listener"))
	})
}

func (c *Client) logPanic(context string) func(recovered any) {
	return func(recovered any) {
		if c.opts.Logger != nil {
			c.opts.Logger.Printf("mcpclient: panic in %s: %v", context, recovered)
		}
	}
}
