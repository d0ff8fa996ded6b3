package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
)

func (s *Server) handleLoggingSetLevel(ctx context.Context, raw json.RawMessage) (any, *schema.RPCError) {
	var params schema.SetLevelParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, schema.ErrInvalidParams(err.Error())
	}
	s.logMu.Lock()
	s.minLevel = params.Level
	s.logMu.Unlock()
	return struct{}{}, nil
}

// PublishLogMessage emits notifications/message if level meets the
// client's most recently requested minimum (spec §4.6 "Logging"). Before
// any logging/setLevel call, the minimum defaults to info.
func (s *Server) PublishLogMessage(ctx context.Context, level schema.LoggingLevel, logger string, data any) error {
	if !s.opts.Logging {
		return nil
	}
	s.logMu.Lock()
	min := s.minLevel
	s.logMu.Unlock()
	if !level.Meets(min) {
		return nil
	}
	if s.sess.State() != session.StateOperating {
		return nil
	}
	return s.sess.SendNotification(ctx, schema.NotificationLoggingMessage, schema.LoggingMessageParams{
		Level: level, Logger: logger, Data: data,
	})
}
