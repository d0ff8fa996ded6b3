package mcpclient

import (
	"context"
	"encoding/json"

	"github.com/mcpcore/sdk/schema"
)

// handleCreateMessage answers an inbound sampling/createMessage request
// by delegating to the registered SamplingHandler. Only registered when
// Options.Sampling is non-nil (see registerHandlers); a server that
// somehow calls this method on a client that never advertised the
// sampling capability still gets a clean MethodNotFound from the session,
// since no handler would be installed.
func (c *Client) handleCreateMessage(ctx context.Context, raw json.RawMessage) (any, *schema.RPCError) {
	var params schema.CreateMessageParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, schema.ErrInvalidParams(err.Error())
	}
	result, err := c.sampling(ctx, params)
	if err != nil {
		return nil, schema.ErrInternalError(err.Error())
	}
	return result, nil
}
