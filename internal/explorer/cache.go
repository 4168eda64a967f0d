package explorer

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedClient caches mapping values in front of another Client.
// Misses are not cached.
type CachedClient struct {
	next  Client
	cache *expirable.LRU[string, string]
}

// NewCachedClient wraps next with a size-bounded TTL cache.
func NewCachedClient(next Client, size int, ttl time.Duration) *CachedClient {
	if size <= 0 {
		size = 1024
	}
	return &CachedClient{
		next:  next,
		cache: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (c *CachedClient) MappingValue(ctx context.Context, program, mapping, key string) (string, error) {
	cacheKey := strings.Join([]string{program, mapping, key}, "/")
	if value, ok := c.cache.Get(cacheKey); ok {
		return value, nil
	}
	value, err := c.next.MappingValue(ctx, program, mapping, key)
	if err != nil {
		return "", err
	}
	c.cache.Add(cacheKey, value)
	return value, nil
}

func (c *CachedClient) LatestHeight(ctx context.Context) (uint64, error) {
	return c.next.LatestHeight(ctx)
}

// Purge drops every cached value.
func (c *CachedClient) Purge() {
	c.cache.Purge()
}

func (c *CachedClient) Close() {
	c.next.Close()
}
