// Package httpclient is the small HTTP client shared by the hot-list source
// and the LLM adapter.
//
// It resolves paths against a base URL, applies default headers and auth,
// JSON-encodes bodies, reads the full response and classifies non-2xx
// statuses into *Error. It never retries: a failed call is reported once and
// the caller decides what that means for its run.
//
//	c, _ := httpclient.New(httpclient.Config{BaseURL: "http://localhost:11434", Timeout: 30 * time.Second})
//	var out chatResponse
//	err := c.DoJSON(ctx, httpclient.Request{Method: http.MethodPost, Path: "/api/chat", Body: req}, &out)
package httpclient
