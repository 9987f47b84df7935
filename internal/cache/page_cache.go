package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// HomeTTL is the expiry window of the cached home listing. Post writes do
// not invalidate the entry; staleness inside this window is accepted.
const HomeTTL = 20 * time.Second

const homeKey = "page:home"

// PageCache caches the rendered home listing. It holds a single entry with a
// fixed TTL, plus an explicit Clear for the administrative flush. The client
// and TTL are injected so tests can swap in miniredis and advance time.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a page cache with the given client and TTL.
// A nil client or non-positive TTL disables the cache.
func NewPageCache(c *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{client: c, ttl: ttl}
}

// Get unmarshals the cached home listing into dest.
// Returns false when the cache is disabled, empty, or expired.
func (p *PageCache) Get(ctx context.Context, dest any) (bool, error) {
	if p == nil || p.client == nil || p.ttl <= 0 {
		return false, nil
	}
	s, err := p.client.Get(ctx, homeKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores v as the home listing entry with the configured TTL.
func (p *PageCache) Set(ctx context.Context, v any) error {
	if p == nil || p.client == nil || p.ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, homeKey, b, p.ttl).Err()
}

// Clear drops the cached entry immediately.
func (p *PageCache) Clear(ctx context.Context) error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Del(ctx, homeKey).Err()
}
