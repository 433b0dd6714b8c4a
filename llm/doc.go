// Package llm is the model client used by model-backed stages.
//
// A Request carries a request id, the system and user prompts of the selected
// prompt variant, optional sampling settings and free-form attributes used
// only for observability. A Response echoes the request id and carries the
// generated text.
//
// Stages depend on the narrow Client interface. Backends implement
// provider.RequestResponse[Request, Response] so they compose with the
// provider middleware (logging, tracing, the redis cache) before being
// handed to a stage through AsClient:
//
//	adapter, err := llm.New(llm.Config{Dialect: "ollama", BaseURL: "http://localhost:11434", Model: "qwen2.5:1.5b"})
//	client := llm.AsClient(provider.Chain(provider.WithLogging[llm.Request, llm.Response](log))(adapter))
//
// Dialects translate a Request into a provider's wire format. The ollama and
// openai dialects register themselves when their packages are imported.
package llm
