package schema

// ModelHint is an advisory, non-binding suggestion for which model family
// to prefer during sampling.
type ModelHint struct {
	Name string `json:"name,omitempty"`
}

// ModelPreferences carries advisory priorities (0..1) and hints; a
// sampling handler is free to ignore all of it (spec §4.4).
type ModelPreferences struct {
	Hints                []ModelHint `json:"hints,omitempty"`
	CostPriority         float64     `json:"costPriority,omitempty"`
	SpeedPriority        float64     `json:"speedPriority,omitempty"`
	IntelligencePriority float64     `json:"intelligencePriority,omitempty"`
}

// CreateMessageParams is the params of sampling/createMessage
// (server->client).
type CreateMessageParams struct {
	Messages         []SamplingMessage        `json:"messages"`
	ModelPreferences *ModelPreferences         `json:"modelPreferences,omitempty"`
	SystemPrompt     string                    `json:"systemPrompt,omitempty"`
	IncludeContext   ContextInclusionStrategy  `json:"includeContext,omitempty"`
	Temperature      float64                   `json:"temperature,omitempty"`
	MaxTokens        int                       `json:"maxTokens,omitempty"`
	StopSequences    []string                  `json:"stopSequences,omitempty"`
	Metadata         map[string]any            `json:"metadata,omitempty"`
}

// CreateMessageResult is the result of sampling/createMessage.
type CreateMessageResult struct {
	Role       Role       `json:"role"`
	Content    Content    `json:"content"`
	Model      string     `json:"model"`
	StopReason StopReason `json:"stopReason,omitempty"`
}
