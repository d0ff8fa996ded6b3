package schema

import "encoding/json"

// Role distinguishes the speaker of a sampling message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// LoggingLevel is the eight-level syslog-derived severity scale used by
// logging/setLevel and logging/message.
type LoggingLevel string

const (
	LogDebug     LoggingLevel = "debug"
	LogInfo      LoggingLevel = "info"
	LogNotice    LoggingLevel = "notice"
	LogWarning   LoggingLevel = "warning"
	LogError     LoggingLevel = "error"
	LogCritical  LoggingLevel = "critical"
	LogAlert     LoggingLevel = "alert"
	LogEmergency LoggingLevel = "emergency"
)

var loggingLevelRank = map[LoggingLevel]int{
	LogDebug: 0, LogInfo: 1, LogNotice: 2, LogWarning: 3,
	LogError: 4, LogCritical: 5, LogAlert: 6, LogEmergency: 7,
}

// Meets reports whether level is at least as severe as threshold.
func (level LoggingLevel) Meets(threshold LoggingLevel) bool {
	return loggingLevelRank[level] >= loggingLevelRank[threshold]
}

// StopReason explains why sampling produced a final message. The set is
// open: any free-form string is valid wire content, but these are the
// well-known values.
type StopReason string

const (
	StopEndTurn       StopReason = "endTurn"
	StopStopSequence  StopReason = "stopSequence"
	StopMaxTokens     StopReason = "maxTokens"
)

// ContextInclusionStrategy controls which servers' context a sampling
// request should draw on.
type ContextInclusionStrategy string

const (
	ContextNone        ContextInclusionStrategy = "none"
	ContextThisServer  ContextInclusionStrategy = "thisServer"
	ContextAllServers  ContextInclusionStrategy = "allServers"
)

// contentEnvelope is used only to sniff the "type" discriminator before
// dispatching to a concrete content variant.
type contentEnvelope struct {
	Type string `json:"type"`
}

// Content is a tagged union over text/image/resource content blocks. It
// stores the raw JSON and the discriminator, and round-trips unknown
// fields by preserving the raw bytes on MarshalJSON — the same
// forward-compatibility idiom as the teacher's ContentBlock
// (internal/mcp/client.go), generalized to dispatch on the type
// discriminator instead of treating every block as opaque.
type Content struct {
	Type string
	raw  json.RawMessage
}

// NewTextContent builds a text content block.
func NewTextContent(text string) Content {
	b, _ := json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{"text", text})
	return Content{Type: "text", raw: b}
}

// NewImageContent builds an image content block (base64 data + mime type).
func NewImageContent(data, mimeType string) Content {
	b, _ := json.Marshal(struct {
		Type     string `json:"type"`
		Data     string `json:"data"`
		MimeType string `json:"mimeType"`
	}{"image", data, mimeType})
	return Content{Type: "image", raw: b}
}

// NewResourceContent builds an embedded-resource content block.
func NewResourceContent(uri, mimeType, text string) Content {
	b, _ := json.Marshal(struct {
		Type     string `json:"type"`
		Resource struct {
			URI      string `json:"uri"`
			MimeType string `json:"mimeType,omitempty"`
			Text     string `json:"text,omitempty"`
		} `json:"resource"`
	}{Type: "resource", Resource: struct {
		URI      string `json:"uri"`
		MimeType string `json:"mimeType,omitempty"`
		Text     string `json:"text,omitempty"`
	}{uri, mimeType, text}})
	return Content{Type: "resource", raw: b}
}

// Text extracts the text field for a text content block, or "" for any
// other variant.
func (c Content) Text() string {
	if c.Type != "text" {
		return ""
	}
	var v struct {
		Text string `json:"text"`
	}
	_ = json.Unmarshal(c.raw, &v)
	return v.Text
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.raw == nil {
		return []byte("null"), nil
	}
	return c.raw, nil
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var env contentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*c = Content{Type: env.Type, raw: append(json.RawMessage(nil), data...)}
	return nil
}

// SamplingMessage is one message in a sampling/createMessage conversation.
type SamplingMessage struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}
