package models

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Fetcher is anything that can read a listing endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) (*Listing, error)
}

// CachedSource puts a ListingCache in front of a Fetcher and collapses
// concurrent reads of the same endpoint into one upstream request.
// Only successful listings are cached.
type CachedSource struct {
	upstream Fetcher
	cache    ListingCache
	group    singleflight.Group
}

// NewCachedSource wraps upstream; a nil cache disables caching.
func NewCachedSource(upstream Fetcher, cache ListingCache) *CachedSource {
	if cache == nil {
		cache = noCache{}
	}
	return &CachedSource{upstream: upstream, cache: cache}
}

func (cs *CachedSource) Fetch(ctx context.Context, endpoint string) (*Listing, error) {
	if listing, ok := cs.cache.Get(ctx, endpoint); ok {
		return listing, nil
	}

	v, err, _ := cs.group.Do(endpoint, func() (any, error) {
		listing, err := cs.upstream.Fetch(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		cs.cache.Set(ctx, endpoint, listing)
		return listing, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Listing), nil
}
