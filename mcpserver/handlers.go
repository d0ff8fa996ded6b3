package mcpserver

import "github.com/mcpcore/sdk/schema"

// registerHandlers installs the server's inbound request and
// notification handlers on the underlying session. Called once from New.
func (s *Server) registerHandlers() {
	s.sess.RegisterRequestHandler(schema.MethodInitialize, s.handleInitialize)
	s.sess.RegisterRequestHandler(schema.MethodPing, s.handlePing)
	s.sess.RegisterRequestHandler(schema.MethodToolsList, s.handleToolsList)
	s.sess.RegisterRequestHandler(schema.MethodToolsCall, s.handleToolsCall)
	s.sess.RegisterRequestHandler(schema.MethodPromptsList, s.handlePromptsList)
	s.sess.RegisterRequestHandler(schema.MethodPromptsGet, s.handlePromptsGet)
	s.sess.RegisterRequestHandler(schema.MethodResourcesList, s.handleResourcesList)
	s.sess.RegisterRequestHandler(schema.MethodResourcesRead, s.handleResourcesRead)
	s.sess.RegisterRequestHandler(schema.MethodResourcesSubscribe, s.handleResourcesSubscribe)
	s.sess.RegisterRequestHandler(schema.MethodLoggingSetLevel, s.handleLoggingSetLevel)

	s.sess.RegisterNotificationHandler(schema.NotificationRootsListChanged, s.handleRootsListChanged)
}
