package httpclient

// Request is one outbound call. Path is joined to the client's BaseURL
// unless it is already absolute.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   map[string]string
	// Body is sent as-is for []byte and string, JSON-encoded otherwise.
	Body any
	// Auth replaces the client-level Auth for this call.
	Auth Auth
}

// Response carries the status, flattened headers and the full body.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool { return r.StatusCode/100 == 2 }
