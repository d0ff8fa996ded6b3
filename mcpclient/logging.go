package mcpclient

import (
	"context"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
)

// SetLoggingLevel asks the server to only emit logging/message
// notifications at or above level (spec §4.6).
func (c *Client) SetLoggingLevel(ctx context.Context, level schema.LoggingLevel) error {
	if !c.serverCapabilities.HasLogging() {
		return session.NewCapabilityError("server did not advertise logging capability")
	}
	_, err := c.sess.SendRequest(ctx, schema.MethodLoggingSetLevel, schema.SetLevelParams{Level: level})
	return err
}

// OnLoggingMessage registers cb to run on every notifications/message
// delivery, in dispatch order.
func (c *Client) OnLoggingMessage(cb func(schema.LoggingMessageParams)) (unsubscribe func()) {
	return c.loggingMessage.Add(cb)
}
