package mcpclient

import (
	"context"
	"encoding/json"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
)

// ListResources requests the server's resource catalog.
func (c *Client) ListResources(ctx context.Context) ([]schema.Resource, error) {
	if !c.serverCapabilities.HasResources() {
		return nil, session.NewCapabilityError("server did not advertise resources capability")
	}
	raw, err := c.sess.SendRequest(ctx, schema.MethodResourcesList, nil)
	if err != nil {
		return nil, err
	}
	var result schema.ListResourcesResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, session.NewProtocolError(schema.CodeInternalError, "decode resources/list result: "+err.Error())
	}
	return result.Resources, nil
}

// ReadResource fetches the contents of a resource by URI.
func (c *Client) ReadResource(ctx context.Context, uri string) ([]schema.ResourceContents, error) {
	if !c.serverCapabilities.HasResources() {
		return nil, session.NewCapabilityError("server did not advertise resources capability")
	}
	raw, err := c.sess.SendRequest(ctx, schema.MethodResourcesRead, schema.ReadResourceParams{URI: uri})
	if err != nil {
		return nil, err
	}
	var result schema.ReadResourceResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, session.NewProtocolError(schema.CodeInternalError, "decode resources/read result: "+err.Error())
	}
	return result.Contents, nil
}

// SubscribeResource asks the server to emit
// notifications/resources/updated for uri (spec §4.2, gated on the
// server's resources.subscribe capability).
func (c *Client) SubscribeResource(ctx context.Context, uri string) error {
	if !c.serverCapabilities.ResourcesSubscribe() {
		return session.NewCapabilityError("server did not advertise resources.subscribe capability")
	}
	_, err := c.sess.SendRequest(ctx, schema.MethodResourcesSubscribe, schema.SubscribeResourceParams{URI: uri})
	return err
}

// OnResourcesListChanged registers cb to run on
// notifications/resources/list_changed.
func (c *Client) OnResourcesListChanged(cb func()) (unsubscribe func()) {
	return c.resourcesListChanged.Add(func(struct{}) { cb() })
}

// OnResourceUpdated registers cb to run on notifications/resources/updated.
func (c *Client) OnResourceUpdated(cb func(schema.ResourceUpdatedParams)) (unsubscribe func()) {
	return c.resourcesUpdated.Add(cb)
}
