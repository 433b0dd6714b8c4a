// Package provider defines the request/response shape shared by swappable
// backends, and the middleware that wraps them.
//
// A RequestResponse[I, O] takes one input and returns one output. The LLM
// adapter, the mock generator and the redis response cache all implement it,
// so they compose with Chain:
//
//	client := provider.Chain(
//	    provider.WithLogging[llm.Request, llm.Response](log),
//	    provider.WithTracing[llm.Request, llm.Response]("llm"),
//	    cache.Middleware(rdb, "contentgen:llm", 24*time.Hour, log),
//	)(adapter)
package provider
