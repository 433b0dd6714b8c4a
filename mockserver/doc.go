// Package mockserver is an offline stand-in for the hot list API and an
// Ollama chat endpoint, served with gin.
//
// Routes:
//
//	GET  /weibo/hot?page=N  fixture topics, paginated; pages past the end are empty
//	POST /api/chat          Ollama-shaped chat backed by the deterministic mock model
//	GET  /api/tags          Ollama health probe
//	GET  /health            liveness
//
// The demo command and end-to-end tests run the whole pipeline against it.
package mockserver
