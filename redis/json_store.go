package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// JSONStore keeps values of one type as JSON strings under a namespace.
type JSONStore[V any] struct {
	client    *Client
	namespace string
}

// NewJSONStore returns a store writing keys as "<namespace>:<key>". An
// empty namespace leaves keys bare.
func NewJSONStore[V any](client *Client, namespace string) *JSONStore[V] {
	return &JSONStore[V]{client: client, namespace: namespace}
}

// Key returns the Redis key used for k.
func (s *JSONStore[V]) Key(k string) string {
	if s.namespace == "" {
		return k
	}
	return s.namespace + ":" + k
}

// Get decodes the value under k. found is false for a missing or expired key.
func (s *JSONStore[V]) Get(ctx context.Context, k string) (v V, found bool, err error) {
	raw, found, err := s.client.Get(ctx, s.Key(k))
	if err != nil || !found {
		return v, false, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, false, fmt.Errorf("redis: decode %s: %w", s.Key(k), err)
	}
	return v, true, nil
}

// Put encodes v under k. A zero ttl never expires.
func (s *JSONStore[V]) Put(ctx context.Context, k string, v V, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis: encode %s: %w", s.Key(k), err)
	}
	return s.client.Set(ctx, s.Key(k), data, ttl)
}

// Delete removes k.
func (s *JSONStore[V]) Delete(ctx context.Context, k string) error {
	return s.client.Del(ctx, s.Key(k))
}
