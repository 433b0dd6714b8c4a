// Package cache memoizes model replies in Redis.
//
// Replies are keyed by a SHA-256 digest of everything that can change the
// generated text: backend identity, model, prompts, temperature and max
// tokens. A backend exposing Identity (llm.Adapter does) is keyed by it, so
// changing the configured model or endpoint never serves stale replies.
// Request ids never take part in the key, and a cached reply is returned
// under the live request id so correlation checks downstream still hold.
// Cache read and write failures are logged and the call falls through to
// the backend.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/kbukum/contentgen/llm"
	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/provider"
	"github.com/kbukum/contentgen/redis"
)

type entry struct {
	Content  string    `json:"content"`
	Model    string    `json:"model,omitempty"`
	Usage    llm.Usage `json:"usage"`
	StoredAt time.Time `json:"stored_at"`
}

// identified is implemented by backends whose replies depend on more than
// their name, such as a configured default model.
type identified interface {
	Identity() string
}

// defaultModel is implemented by backends that fill in a model when the
// request names none.
type defaultModel interface {
	Model() string
}

// Middleware returns a provider middleware that serves repeated requests
// from client. ttl of zero keeps entries until evicted.
func Middleware(client *redis.Client, keyPrefix string, ttl time.Duration, log *logger.Logger) provider.Middleware[llm.Request, llm.Response] {
	store := redis.NewJSONStore[entry](client, keyPrefix)
	log = logger.OrDefault(log, "llm-cache")
	return func(inner llm.Provider) llm.Provider {
		c := &cached{inner: inner, store: store, ttl: ttl, log: log, backend: inner.Name()}
		if id, ok := inner.(identified); ok {
			c.backend = id.Identity()
		}
		if dm, ok := inner.(defaultModel); ok {
			c.model = dm.Model()
		}
		return c
	}
}

type cached struct {
	inner   llm.Provider
	store   *redis.JSONStore[entry]
	ttl     time.Duration
	log     *logger.Logger
	backend string
	model   string
}

func (c *cached) Name() string                         { return c.inner.Name() }
func (c *cached) IsAvailable(ctx context.Context) bool { return c.inner.IsAvailable(ctx) }

func (c *cached) Execute(ctx context.Context, req llm.Request) (llm.Response, error) {
	keyed := req
	if keyed.Model == "" {
		keyed.Model = c.model
	}
	key := Key(c.backend, keyed)
	log := c.log.WithContext(ctx)

	hit, found, err := c.store.Get(ctx, key)
	if err != nil {
		log.Warn("cache lookup failed", logger.ErrorFields("load", err))
	}
	if found {
		log.Debug("cache hit", map[string]interface{}{
			logger.FieldRequestID: req.RequestID,
			logger.FieldCacheHit:  true,
		})
		return llm.Response{
			RequestID: req.RequestID,
			Content:   hit.Content,
			Model:     hit.Model,
			Usage:     hit.Usage,
		}, nil
	}

	resp, err := c.inner.Execute(ctx, req)
	if err != nil {
		return resp, err
	}
	e := entry{Content: resp.Content, Model: resp.Model, Usage: resp.Usage, StoredAt: time.Now().UTC()}
	if err := c.store.Put(ctx, key, e, c.ttl); err != nil {
		log.Warn("cache store failed", logger.ErrorFields("save", err))
	}
	return resp, nil
}

// Key returns the cache key for req sent to backend, a name or identity.
func Key(backend string, req llm.Request) string {
	h := sha256.New()
	write := func(s string) {
		fmt.Fprintf(h, "%d:%s;", len(s), s)
	}
	write(backend)
	write(req.Model)
	write(req.SystemPrompt)
	write(req.UserPrompt)
	if req.Temperature != nil {
		write(strconv.FormatFloat(*req.Temperature, 'g', -1, 64))
	} else {
		write("-")
	}
	if req.MaxTokens != nil {
		write(strconv.Itoa(*req.MaxTokens))
	} else {
		write("-")
	}
	return hex.EncodeToString(h.Sum(nil))
}
