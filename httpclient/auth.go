package httpclient

import "net/http"

// Auth decorates an outbound request with credentials. A nil Auth sends
// none.
type Auth func(req *http.Request)

// BearerAuth sends "Authorization: Bearer <token>". An empty token yields
// nil so optional tokens can be passed straight from config.
func BearerAuth(token string) Auth {
	if token == "" {
		return nil
	}
	return func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }
}

// HeaderAuth sends value in the named header, as API-key schemes do.
func HeaderAuth(header, value string) Auth {
	return func(req *http.Request) { req.Header.Set(header, value) }
}
