// Package ollama provides the Ollama chat dialect for llm.Adapter.
//
// Importing the package registers the dialect under "ollama".
package ollama

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/contentgen/llm"
)

// DialectName is the registered name for the Ollama dialect.
const DialectName = "ollama"

func init() {
	llm.RegisterDialect(DialectName, Dialect{})
}

// Dialect maps llm requests onto Ollama's /api/chat endpoint.
type Dialect struct{}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *Options      `json:"options,omitempty"`
}

// Options holds Ollama sampling options.
type Options struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  *int     `json:"num_predict,omitempty"`
}

// ChatResponse is the non-streaming reply of /api/chat.
type ChatResponse struct {
	Model           string      `json:"model"`
	Message         llm.Message `json:"message"`
	Done            bool        `json:"done"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
}

func (Dialect) Name() string       { return DialectName }
func (Dialect) ChatPath() string   { return "/api/chat" }
func (Dialect) HealthPath() string { return "/api/tags" }

// BuildRequest maps req to a non-streaming chat request.
func (Dialect) BuildRequest(req llm.Request) (any, error) {
	body := ChatRequest{
		Model:    req.Model,
		Messages: req.Messages(),
	}
	if req.Temperature != nil || req.MaxTokens != nil {
		body.Options = &Options{Temperature: req.Temperature, NumPredict: req.MaxTokens}
	}
	return body, nil
}

// ParseResponse decodes a chat reply.
func (Dialect) ParseResponse(body []byte) (*llm.Response, error) {
	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ollama: decode chat response: %w", err)
	}
	return &llm.Response{
		Content: resp.Message.Content,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}
