package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
)

// RequestSampling issues a server-initiated sampling/createMessage call.
// Gated locally on the client's advertised sampling capability — no wire
// traffic is produced if the client never advertised it (spec §4.4, §9
// "capability gating should be local").
func (s *Server) RequestSampling(ctx context.Context, params schema.CreateMessageParams) (*schema.CreateMessageResult, error) {
	if !s.clientCapabilities.HasSampling() {
		return nil, session.NewCapabilityError("Client must be configured with sampling capabilities")
	}
	raw, err := s.sess.SendRequest(ctx, schema.MethodSamplingCreateMessage, params)
	if err != nil {
		return nil, err
	}
	var result schema.CreateMessageResult
	if jsonErr := json.Unmarshal(raw, &result); jsonErr != nil {
		return nil, session.NewProtocolError(schema.CodeInternalError, "decode sampling/createMessage result: "+jsonErr.Error())
	}
	return &result, nil
}
