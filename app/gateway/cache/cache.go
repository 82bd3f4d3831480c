// app/gateway/cache/cache.go
package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Cache is a bounded, time-based response cache behind a get-or-compute
// interface. Writers to the underlying resource must call Invalidate so
// readers never see stale data past a write.
type Cache[V any] struct {
	inner *ttlcache.Cache[string, V]
}

func New[V any](ttl time.Duration, capacity uint64) *Cache[V] {
	c := ttlcache.New[string, V](
		ttlcache.WithTTL[string, V](ttl),
		ttlcache.WithCapacity[string, V](capacity),
	)
	go c.Start()
	return &Cache[V]{inner: c}
}

// GetOrCompute returns the cached value for key, or runs fn and caches
// its result. Errors are never cached.
func (c *Cache[V]) GetOrCompute(key string, fn func() (V, error)) (V, error) {
	if item := c.inner.Get(key); item != nil {
		return item.Value(), nil
	}

	v, err := fn()
	if err != nil {
		return v, err
	}
	c.inner.Set(key, v, ttlcache.DefaultTTL)
	return v, nil
}

// Invalidate drops every cached entry.
func (c *Cache[V]) Invalidate() {
	c.inner.DeleteAll()
}

func (c *Cache[V]) Stop() {
	c.inner.Stop()
}
