// Package mcpserver implements the server-side feature layer of the
// Model Context Protocol on top of session.Session: capability
// advertisement, the tools/prompts/resources registries with automatic
// listChanged notifications, logging level filtering, and the two
// server-initiated operations (sampling/createMessage, roots/list).
// Grounded on internal/server/server.go's handleInitialize/
// handleToolsList/handleToolsCall and internal/server/errors.go's error
// catalog, generalized from a single fixed tool-aggregation server into a
// registry-driven one that serves whatever tools/prompts/resources the
// embedding application registers.
package mcpserver

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
	"github.com/mcpcore/sdk/transport"
)

// Options configures the server's identity and optional capabilities.
type Options struct {
	Logger *log.Logger

	ServerInfo   schema.Implementation
	Instructions string

	// ToolsListChanged, PromptsListChanged, ResourcesListChanged announce
	// that this server will emit the corresponding notification when its
	// registry mutates after Operating begins.
	ToolsListChanged     bool
	PromptsListChanged   bool
	ResourcesListChanged bool

	// ResourcesSubscribe announces resources/subscribe support.
	ResourcesSubscribe bool

	// Logging, if true, advertises the logging capability and accepts
	// logging/setLevel.
	Logging bool
}

// Server is the server-side half of an MCP session.
type Server struct {
	sess *session.Session
	opts Options

	clientCapabilities schema.ClientCapabilities
	clientInfo         schema.Implementation

	tools     *toolRegistry
	prompts   *promptRegistry
	resources *resourceRegistry

	logMu    sync.Mutex
	minLevel schema.LoggingLevel

	rootsListChanged session.Listeners[struct{}]
}

// New wires a Server over t and registers its inbound handlers.
func New(t transport.Transport, opts Options) *Server {
	s := &Server{
		sess:      session.New(t, session.RoleServer, opts.Logger),
		opts:      opts,
		tools:     newToolRegistry(),
		prompts:   newPromptRegistry(),
		resources: newResourceRegistry(),
		minLevel:  schema.LogInfo,
	}
	s.registerHandlers()
	return s
}

// Run drains the underlying transport until it closes or ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.sess.Run(ctx)
}

// Close shuts the session down.
func (s *Server) Close() error {
	return s.sess.Close()
}

// State returns the underlying session's lifecycle state.
func (s *Server) State() session.State { return s.sess.State() }

// ClientCapabilities returns the capabilities the client advertised
// during initialize. Valid only once the session reaches Operating.
func (s *Server) ClientCapabilities() schema.ClientCapabilities { return s.clientCapabilities }

func (s *Server) capabilities() schema.ServerCapabilities {
	caps := schema.ServerCapabilities{}
	if s.opts.ToolsListChanged || s.tools.len() > 0 {
		caps.Tools = &schema.ToolsCapability{ListChanged: s.opts.ToolsListChanged}
	}
	if s.opts.PromptsListChanged || s.prompts.len() > 0 {
		caps.Prompts = &schema.PromptsCapability{ListChanged: s.opts.PromptsListChanged}
	}
	if s.opts.ResourcesListChanged || s.opts.ResourcesSubscribe || s.resources.len() > 0 {
		caps.Resources = &schema.ResourcesCapability{
			ListChanged: s.opts.ResourcesListChanged,
			Subscribe:   s.opts.ResourcesSubscribe,
		}
	}
	if s.opts.Logging {
		caps.Logging = &schema.LoggingCapability{}
	}
	return caps
}

func (s *Server) handleInitialize(ctx context.Context, raw json.RawMessage) (any, *schema.RPCError) {
	var params schema.InitializeParams
	if raw != nil {
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, schema.ErrInvalidParams(err.Error())
		}
	}
	if params.ProtocolVersion != schema.ProtocolVersion {
		return nil, schema.NewRPCError(schema.CodeProtocolVersionMismatch,
			"unsupported protocol version: "+params.ProtocolVersion, nil)
	}
	s.clientCapabilities = params.Capabilities
	s.clientInfo = params.ClientInfo

	return schema.InitializeResult{
		ProtocolVersion: schema.ProtocolVersion,
		Capabilities:    s.capabilities(),
		ServerInfo:      s.opts.ServerInfo,
		Instructions:    s.opts.Instructions,
	}, nil
}

func (s *Server) handlePing(ctx context.Context, raw json.RawMessage) (any, *schema.RPCError) {
	return struct{}{}, nil
}

// announceListChanged emits notification if the session has reached
// Operating and advertised is true; otherwise it is a silent no-op. Spec
// §4.2/§4.4: listChanged notifications are only meaningful once the
// client could plausibly be listening, and only if the server promised
// them at initialize.
func (s *Server) announceListChanged(notification string, advertised bool) {
	if !advertised || s.sess.State() != session.StateOperating {
		return
	}
	if err := s.sess.SendNotification(context.Background(), notification, nil); err != nil {
		if s.opts.Logger != nil {
			s.opts.Logger.Printf("mcpserver: %s: %v", notification, err)
		}
	}
}
