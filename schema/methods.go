package schema

// Wire method name constants, centralized from the literal strings
// scattered through the teacher's internal/mcp/client.go and
// internal/server/server.go dispatch switches.
const (
	MethodInitialize = "initialize"
	MethodPing       = "ping"

	MethodToolsList = "tools/list"
	MethodToolsCall = "tools/call"

	MethodPromptsList = "prompts/list"
	MethodPromptsGet  = "prompts/get"

	MethodResourcesList      = "resources/list"
	MethodResourcesRead      = "resources/read"
	MethodResourcesSubscribe = "resources/subscribe"

	MethodLoggingSetLevel = "logging/setLevel"

	MethodSamplingCreateMessage = "sampling/createMessage"

	MethodRootsList = "roots/list"

	NotificationInitialized            = "notifications/initialized"
	NotificationCancelled              = "notifications/cancelled"
	NotificationToolsListChanged       = "notifications/tools/list_changed"
	NotificationPromptsListChanged     = "notifications/prompts/list_changed"
	NotificationResourcesListChanged   = "notifications/resources/list_changed"
	NotificationResourcesUpdated       = "notifications/resources/updated"
	NotificationRootsListChanged       = "notifications/roots/list_changed"
	NotificationLoggingMessage         = "notifications/message"
)
