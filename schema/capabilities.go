package schema

// Implementation identifies a peer: its name and version. Each side sends
// its own during initialize (spec §3 "Implementation identity").
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RootsCapability advertises that the client maintains a root list and
// will emit notifications/roots/list_changed on mutation.
type RootsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// SamplingCapability advertises that the client can service
// sampling/createMessage requests. Its presence (not its contents) is what
// gates the capability.
type SamplingCapability struct{}

// ClientCapabilities is the capability set a client advertises at
// initialize.
type ClientCapabilities struct {
	Roots        *RootsCapability       `json:"roots,omitempty"`
	Sampling     *SamplingCapability    `json:"sampling,omitempty"`
	Experimental map[string]any         `json:"experimental,omitempty"`
}

// HasRoots reports whether the client advertised the roots capability.
func (c *ClientCapabilities) HasRoots() bool { return c != nil && c.Roots != nil }

// HasSampling reports whether the client advertised the sampling
// capability.
func (c *ClientCapabilities) HasSampling() bool { return c != nil && c.Sampling != nil }

// RootsListChanged reports whether the client promised listChanged
// notifications for its root list.
func (c *ClientCapabilities) RootsListChanged() bool {
	return c.HasRoots() && c.Roots.ListChanged
}

// ToolsCapability advertises the server's tools/list + tools/call support.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// PromptsCapability advertises the server's prompts/list + prompts/get
// support.
type PromptsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ResourcesCapability advertises the server's resources/list +
// resources/read support, and optionally resources/subscribe.
type ResourcesCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
	Subscribe   bool `json:"subscribe,omitempty"`
}

// LoggingCapability advertises logging/setLevel + logging/message support.
type LoggingCapability struct{}

// ServerCapabilities is the capability set a server advertises at
// initialize.
type ServerCapabilities struct {
	Tools        *ToolsCapability     `json:"tools,omitempty"`
	Prompts      *PromptsCapability   `json:"prompts,omitempty"`
	Resources    *ResourcesCapability `json:"resources,omitempty"`
	Logging      *LoggingCapability   `json:"logging,omitempty"`
	Experimental map[string]any       `json:"experimental,omitempty"`
}

func (c *ServerCapabilities) HasTools() bool     { return c != nil && c.Tools != nil }
func (c *ServerCapabilities) HasPrompts() bool   { return c != nil && c.Prompts != nil }
func (c *ServerCapabilities) HasResources() bool { return c != nil && c.Resources != nil }
func (c *ServerCapabilities) HasLogging() bool   { return c != nil && c.Logging != nil }

// ResourcesSubscribe reports whether the server promised
// resources/subscribe support.
func (c *ServerCapabilities) ResourcesSubscribe() bool {
	return c.HasResources() && c.Resources.Subscribe
}

// ToolsListChanged reports whether the server promised
// notifications/tools/list_changed.
func (c *ServerCapabilities) ToolsListChanged() bool {
	return c.HasTools() && c.Tools.ListChanged
}

// PromptsListChanged reports whether the server promised
// notifications/prompts/list_changed.
func (c *ServerCapabilities) PromptsListChanged() bool {
	return c.HasPrompts() && c.Prompts.ListChanged
}

// ResourcesListChanged reports whether the server promised
// notifications/resources/list_changed.
func (c *ServerCapabilities) ResourcesListChanged() bool {
	return c.HasResources() && c.Resources.ListChanged
}

// InitializeParams is the params of the initialize request (client->server).
type InitializeParams struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ClientCapabilities `json:"capabilities"`
	ClientInfo      Implementation     `json:"clientInfo"`
}

// InitializeResult is the result of the initialize request (server->client).
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      Implementation     `json:"serverInfo"`
	Instructions    string             `json:"instructions,omitempty"`
}
