// Package redis wraps go-redis for the model response cache.
//
// Client adds logging and an idempotent Close on top of *goredis.Client.
// JSONStore keeps typed values as JSON under a namespace:
//
//	store := redis.NewJSONStore[entry](client, "contentgen:llm")
//	_ = store.Put(ctx, key, e, 24*time.Hour)
//	e, found, err := store.Get(ctx, key)
package redis
