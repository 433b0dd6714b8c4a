package llm

import (
	"fmt"
	"sort"
	"sync"
)

// Dialect maps universal requests and responses to and from one provider's
// HTTP format.
type Dialect interface {
	// Name returns the dialect identifier (e.g., "ollama", "openai").
	Name() string

	// ChatPath returns the chat completion endpoint (e.g., "/api/chat").
	ChatPath() string

	// HealthPath returns a cheap GET endpoint for availability checks, or "".
	HealthPath() string

	// BuildRequest maps a Request to the provider's JSON request body.
	BuildRequest(req Request) (any, error)

	// ParseResponse maps the provider's JSON response body to a Response.
	// The request id is filled in by the adapter.
	ParseResponse(body []byte) (*Response, error)
}

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect adds a dialect to the global registry. Dialect packages
// call it from init:
//
//	import _ "github.com/kbukum/contentgen/llm/ollama"
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[name] = d
}

// GetDialect retrieves a dialect by name from the global registry.
func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("llm: unknown dialect %q (forgot to import driver?)", name)
	}
	return d, nil
}

// Dialects returns the sorted names of all registered dialects.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
