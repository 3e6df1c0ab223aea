package views

import (
	"context"
	"errors"
	"sync"

	"goflix/models"
)

// fakeSource serves canned listings per endpoint. An endpoint with a gate
// blocks until the gate is closed.
type fakeSource struct {
	mu       sync.Mutex
	listings map[string]*models.Listing
	fail     map[string]bool
	gates    map[string]chan struct{}
	calls    map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		listings: make(map[string]*models.Listing),
		fail:     make(map[string]bool),
		gates:    make(map[string]chan struct{}),
		calls:    make(map[string]int),
	}
}

func (f *fakeSource) with(endpoint string, titles ...string) *fakeSource {
	items := make([]models.MediaItem, 0, len(titles))
	for i, title := range titles {
		items = append(items, models.MediaItem{ID: int64(i + 1), Title: title, PosterPath: "/p.jpg", BackdropPath: "/b.jpg"})
	}
	f.listings[endpoint] = &models.Listing{Results: items}
	return f
}

func (f *fakeSource) Fetch(ctx context.Context, endpoint string) (*models.Listing, error) {
	f.mu.Lock()
	f.calls[endpoint]++
	gate := f.gates[endpoint]
	failing := f.fail[endpoint]
	listing := f.listings[endpoint]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if failing {
		return nil, errors.New("upstream unavailable")
	}
	if listing == nil {
		return &models.Listing{Results: []models.MediaItem{}}, nil
	}
	return listing, nil
}

func (f *fakeSource) callCount(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

// fakeTrailers resolves every title to the same watch URL unless told to fail.
type fakeTrailers struct {
	mu     sync.Mutex
	url    string
	err    error
	titles []string
}

func (f *fakeTrailers) Resolve(ctx context.Context, title string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func (f *fakeTrailers) lookups() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.titles)
}
