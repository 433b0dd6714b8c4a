// Package openai provides the OpenAI-compatible chat completions dialect for
// llm.Adapter. It also fits the many self-hosted servers that mirror the
// /v1/chat/completions shape.
//
// Importing the package registers the dialect under "openai".
package openai

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/kbukum/contentgen/llm"
)

// DialectName is the registered name for the OpenAI dialect.
const DialectName = "openai"

func init() {
	llm.RegisterDialect(DialectName, Dialect{})
}

// Dialect maps llm requests onto POST /v1/chat/completions.
type Dialect struct{}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	User        string        `json:"user,omitempty"`
}

func (Dialect) Name() string       { return DialectName }
func (Dialect) ChatPath() string   { return "/v1/chat/completions" }
func (Dialect) HealthPath() string { return "/v1/models" }

// BuildRequest maps req to a chat completion request. The request id is
// forwarded as the end-user identifier so provider-side logs can be joined.
func (Dialect) BuildRequest(req llm.Request) (any, error) {
	return chatRequest{
		Model:       req.Model,
		Messages:    req.Messages(),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		User:        req.RequestID,
	}, nil
}

// ParseResponse reads the first choice of a completion.
func (Dialect) ParseResponse(body []byte) (*llm.Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("openai: response is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if msg := root.Get("error.message"); msg.Exists() {
		return nil, fmt.Errorf("openai: %s", msg.String())
	}
	content := root.Get("choices.0.message.content")
	if !content.Exists() {
		return nil, fmt.Errorf("openai: response has no choices")
	}
	return &llm.Response{
		Content: content.String(),
		Model:   root.Get("model").String(),
		Usage: llm.Usage{
			PromptTokens:     int(root.Get("usage.prompt_tokens").Int()),
			CompletionTokens: int(root.Get("usage.completion_tokens").Int()),
			TotalTokens:      int(root.Get("usage.total_tokens").Int()),
		},
	}, nil
}
