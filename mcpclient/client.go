// Package mcpclient implements the client-side feature layer of the
// Model Context Protocol on top of session.Session: initialization,
// tools/resources/prompts access, root list management, the sampling
// handler, and the five change-notification subscriptions. Grounded on
// internal/mcp/client.go's public method surface, generalized from its
// single-call-at-a-time design to the fully concurrent session engine.
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/session"
	"github.com/mcpcore/sdk/transport"
)

// SamplingHandler answers a server-initiated sampling/createMessage
// request. Registered once via New's Options; if absent, the client
// never advertises the sampling capability.
type SamplingHandler func(ctx context.Context, params schema.CreateMessageParams) (*schema.CreateMessageResult, error)

// Options configures optional client capabilities and behavior.
type Options struct {
	Logger *log.Logger

	// RootsListChanged, if true, advertises that this client will emit
	// notifications/roots/list_changed when its root list mutates.
	RootsListChanged bool

	// Sampling, if non-nil, advertises the sampling capability and
	// answers inbound sampling/createMessage requests.
	Sampling SamplingHandler

	ClientInfo schema.Implementation
}

// Client is the client-side half of an MCP session.
type Client struct {
	sess *session.Session
	opts Options

	serverCapabilities schema.ServerCapabilities
	serverInfo         schema.Implementation

	rootsMu sync.Mutex
	roots   []schema.Root

	sampling SamplingHandler

	// advertisedRoots records whether Initialize advertised the roots
	// capability, fixed at handshake time (spec §3 "capabilities are
	// negotiated once, at initialize").
	advertisedRoots bool

	toolsListChanged     session.Listeners[struct{}]
	promptsListChanged   session.Listeners[struct{}]
	resourcesListChanged session.Listeners[struct{}]
	resourcesUpdated     session.Listeners[schema.ResourceUpdatedParams]
	loggingMessage       session.Listeners[schema.LoggingMessageParams]
}

// New wires a Client over t and registers its inbound handlers. It does
// not perform the initialize handshake; call Initialize separately.
func New(t transport.Transport, opts Options) *Client {
	c := &Client{
		sess:     session.New(t, session.RoleClient, opts.Logger),
		opts:     opts,
		sampling: opts.Sampling,
	}
	c.registerHandlers()
	return c
}

// Run drains the underlying transport until it closes or ctx is
// cancelled; callers must run this in a goroutine alongside Initialize.
func (c *Client) Run(ctx context.Context) error {
	return c.sess.Run(ctx)
}

// Close shuts the session down, cancelling any in-flight calls.
func (c *Client) Close() error {
	return c.sess.Close()
}

// capabilities returns the capability set this client advertises,
// derived from Options.
func (c *Client) capabilities() schema.ClientCapabilities {
	caps := schema.ClientCapabilities{}
	if c.opts.RootsListChanged || len(c.roots) > 0 {
		caps.Roots = &schema.RootsCapability{ListChanged: c.opts.RootsListChanged}
	}
	if c.sampling != nil {
		caps.Sampling = &schema.SamplingCapability{}
	}
	return caps
}

// Initialize sends the initialize request, then the initialized
// notification, and transitions the session to Operating (spec §3
// handshake, §4.3 "Message flow on Operating transition").
func (c *Client) Initialize(ctx context.Context) (*schema.InitializeResult, error) {
	caps := c.capabilities()
	c.advertisedRoots = caps.HasRoots()

	params := schema.InitializeParams{
		ProtocolVersion: schema.ProtocolVersion,
		Capabilities:    caps,
		ClientInfo:      c.opts.ClientInfo,
	}

	raw, err := c.sess.SendRequest(ctx, schema.MethodInitialize, params)
	if err != nil {
		return nil, err
	}
	var result schema.InitializeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, session.NewProtocolError(schema.CodeInternalError, "decode initialize result: "+err.Error())
	}
	if result.ProtocolVersion != schema.ProtocolVersion {
		return nil, session.NewInitializationError(fmt.Sprintf(
			"protocol version mismatch: server=%s client=%s", result.ProtocolVersion, schema.ProtocolVersion))
	}
	c.serverCapabilities = result.Capabilities
	c.serverInfo = result.ServerInfo

	if err := c.sess.SendNotification(ctx, schema.NotificationInitialized, nil); err != nil {
		return nil, err
	}
	if err := c.sess.MarkOperating(); err != nil {
		return nil, err
	}
	return &result, nil
}

// ServerCapabilities returns the capabilities the server advertised
// during Initialize. Valid only after Initialize returns successfully.
func (c *Client) ServerCapabilities() schema.ServerCapabilities { return c.serverCapabilities }

// ServerInfo returns the server's self-reported identity.
func (c *Client) ServerInfo() schema.Implementation { return c.serverInfo }

// State returns the underlying session's lifecycle state.
func (c *Client) State() session.State { return c.sess.State() }
