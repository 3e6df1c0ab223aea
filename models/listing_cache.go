package models

import (
	"context"
	"sync"
	"time"

	"goflix/metrics"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// ListingCache keeps recent listings keyed by endpoint so every session
// mounting the home screen does not cost a metadata request per row.
// Misses and backend failures look the same to callers: fetch from the API.
type ListingCache interface {
	Get(ctx context.Context, endpoint string) (*Listing, bool)
	Set(ctx context.Context, endpoint string, listing *Listing)
	Close() error
}

// NewListingCache opens the backend named in cfg.CacheBackend.
func NewListingCache(cfg *Config) (ListingCache, error) {
	switch cfg.CacheBackend {
	case CacheNone, "":
		return noCache{}, nil
	case CacheMemory:
		return NewMemoryCache(cfg.CacheTTL), nil
	case CacheRedis:
		return NewRedisCache(RedisCacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.CacheTTL)
	case CacheDuckDB:
		return OpenDuckCache(cfg.DuckDBPath, cfg.CacheTTL)
	default:
		return nil, serr.New("unknown cache backend: " + cfg.CacheBackend)
	}
}

type noCache struct{}

func (noCache) Get(context.Context, string) (*Listing, bool) { return nil, false }
func (noCache) Set(context.Context, string, *Listing)        {}
func (noCache) Close() error                                 { return nil }

type memoryEntry struct {
	listing   *Listing
	expiresAt time.Time
}

// MemoryCache is a process-local ListingCache.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty cache whose entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, endpoint string) (*Listing, bool) {
	c.mu.RLock()
	e, ok := c.entries[endpoint]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		metrics.ObserveCache(CacheMemory, false)
		return nil, false
	}
	metrics.ObserveCache(CacheMemory, true)
	return e.listing, true
}

func (c *MemoryCache) Set(_ context.Context, endpoint string, listing *Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[endpoint] = memoryEntry{listing: listing, expiresAt: now.Add(c.ttl)}
	logger.Debug("Listing cached", "backend", CacheMemory, "endpoint", endpoint)
}

func (c *MemoryCache) Close() error { return nil }
