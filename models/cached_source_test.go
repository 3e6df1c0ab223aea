package models_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"goflix/models"
)

// countingFetcher returns a fixed listing and counts upstream calls.
type countingFetcher struct {
	calls   atomic.Int64
	err     error
	release chan struct{}
}

func (f *countingFetcher) Fetch(ctx context.Context, endpoint string) (*models.Listing, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Listing{Results: []models.MediaItem{{ID: 1, Title: endpoint}}}, nil
}

func TestCachedSourceHitsUpstreamOnce(t *testing.T) {
	upstream := &countingFetcher{}
	src := models.NewCachedSource(upstream, models.NewMemoryCache(time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		listing, err := src.Fetch(ctx, models.EndpointTrending)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if listing.Items()[0].Title != models.EndpointTrending {
			t.Errorf("unexpected listing: %+v", listing.Items())
		}
	}

	if n := upstream.calls.Load(); n != 1 {
		t.Errorf("expected 1 upstream call within ttl, got %d", n)
	}
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	upstream := &countingFetcher{err: errors.New("boom")}
	src := models.NewCachedSource(upstream, models.NewMemoryCache(time.Minute))

	for i := 0; i < 2; i++ {
		if _, err := src.Fetch(context.Background(), models.EndpointComedy); err == nil {
			t.Fatal("expected upstream error to propagate")
		}
	}
	if n := upstream.calls.Load(); n != 2 {
		t.Errorf("expected failures to be retried upstream, got %d calls", n)
	}
}

func TestCachedSourceCollapsesConcurrentReads(t *testing.T) {
	upstream := &countingFetcher{release: make(chan struct{})}
	src := models.NewCachedSource(upstream, nil)

	var wg sync.WaitGroup
	fetch := func() {
		defer wg.Done()
		if _, err := src.Fetch(context.Background(), models.EndpointAction); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}

	wg.Add(1)
	go fetch()

	// Wait for the first fetch to be in flight, then pile more behind it
	deadline := time.Now().Add(2 * time.Second)
	for upstream.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go fetch()
	}
	time.Sleep(100 * time.Millisecond)

	close(upstream.release)
	wg.Wait()

	if n := upstream.calls.Load(); n != 1 {
		t.Errorf("expected concurrent reads to share 1 upstream call, got %d", n)
	}
}
