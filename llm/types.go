package llm

import "github.com/kbukum/contentgen/logger"

// Request is the universal input for every model backend.
type Request struct {
	// RequestID correlates the response with this request.
	RequestID string `json:"request_id"`
	// Model overrides the backend's default model.
	Model        string `json:"model,omitempty"`
	SystemPrompt string `json:"system_prompt"`
	UserPrompt   string `json:"user_prompt"`
	// Temperature and MaxTokens are nil when the stage leaves them to the backend.
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	// Attributes are recorded for observability and never interpreted.
	Attributes map[string]any `json:"attributes,omitempty"`
}

// LogFields identifies the request in provider logs without its prompts.
func (r Request) LogFields() map[string]interface{} {
	f := map[string]interface{}{logger.FieldRequestID: r.RequestID}
	if r.Model != "" {
		f[logger.FieldModel] = r.Model
	}
	if id, ok := r.Attributes["promptVariantId"].(string); ok {
		f[logger.FieldVariantID] = id
	}
	return f
}

// Response is the universal output from every model backend.
type Response struct {
	RequestID string `json:"request_id"`
	Content   string `json:"content"`
	Model     string `json:"model,omitempty"`
	Usage     Usage  `json:"usage"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Message is a single chat message in a dialect's wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Messages returns the chat messages for req: the system prompt (when
// non-empty) followed by the user prompt.
func (r Request) Messages() []Message {
	msgs := make([]Message, 0, 2)
	if r.SystemPrompt != "" {
		msgs = append(msgs, Message{Role: "system", Content: r.SystemPrompt})
	}
	return append(msgs, Message{Role: "user", Content: r.UserPrompt})
}
