package views

import (
	"context"
	"errors"
	"sync"

	"goflix/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// ErrNoSuchItem is returned when a click names a position the row does not have.
var ErrNoSuchItem = errors.New("no such item in row")

// RowConfig is what the page supplies to a row.
type RowConfig struct {
	Key        string
	Title      string
	FetchURL   string
	IsLargeRow bool
}

// Row is a horizontal strip of items with a single trailer slot.
//
// Every fetch takes the next sequence number. A completed fetch is applied
// only if its number is above the last one applied, so the list always
// reflects the most recently requested endpoint whatever order responses
// arrive in. A failure counts as applied for that ordering but leaves the
// list untouched.
type Row struct {
	source   ListingSource
	trailers TrailerResolver

	mu        sync.Mutex
	cfg       RowConfig
	mounted   bool
	movies    []models.MediaItem
	trailerID string
	issued    uint64
	applied   uint64
}

// NewRow creates an unmounted row.
func NewRow(cfg RowConfig, source ListingSource, trailers TrailerResolver) *Row {
	return &Row{
		source:   source,
		trailers: trailers,
		cfg:      cfg,
		movies:   []models.MediaItem{},
	}
}

// Mount fetches the configured endpoint. Only the first call has an effect.
func (r *Row) Mount(ctx context.Context) {
	r.mu.Lock()
	if r.mounted {
		r.mu.Unlock()
		return
	}
	r.mounted = true
	endpoint := r.cfg.FetchURL
	r.mu.Unlock()

	if endpoint == "" {
		return
	}
	r.fetch(ctx, endpoint)
}

// SetFetchURL points the row at another endpoint and fetches it.
// Supplying the current endpoint again does nothing. It also counts as the
// mount, so a later Mount does not fetch the same endpoint twice. Returns
// whether a fetch was issued.
func (r *Row) SetFetchURL(ctx context.Context, endpoint string) bool {
	r.mu.Lock()
	if endpoint == r.cfg.FetchURL && r.mounted {
		r.mu.Unlock()
		return false
	}
	r.cfg.FetchURL = endpoint
	r.mounted = true
	r.mu.Unlock()

	if endpoint == "" {
		return false
	}
	r.fetch(ctx, endpoint)
	return true
}

func (r *Row) fetch(ctx context.Context, endpoint string) {
	r.mu.Lock()
	r.issued++
	seq := r.issued
	r.mu.Unlock()

	listing, err := r.source.Fetch(ctx, endpoint)

	r.mu.Lock()
	defer r.mu.Unlock()

	if seq < r.applied {
		logger.Debug("Discarding stale row response", "row", r.cfg.Title, "endpoint", endpoint, "seq", seq)
		return
	}
	r.applied = seq

	if err != nil {
		logger.LogErr(err, "Error fetching row data", "row", r.cfg.Title, "endpoint", endpoint)
		return
	}
	r.movies = listing.Items()
}

// Click toggles the trailer slot. With a trailer open any click closes it
// without a lookup. Otherwise the item's trailer is looked up by title and
// opened; a failed lookup leaves the slot empty.
func (r *Row) Click(ctx context.Context, index int) error {
	r.mu.Lock()
	if r.trailerID != "" {
		r.trailerID = ""
		r.mu.Unlock()
		return nil
	}
	if index < 0 || index >= len(r.movies) {
		r.mu.Unlock()
		return ErrNoSuchItem
	}
	item := r.movies[index]
	r.mu.Unlock()

	id, err := r.lookupTrailer(ctx, item.DisplayTitle())
	if err != nil {
		logger.LogErr(err, "Trailer not found", "row", r.cfg.Title, "title", item.DisplayTitle())
	}

	r.mu.Lock()
	r.trailerID = id
	r.mu.Unlock()
	return nil
}

func (r *Row) lookupTrailer(ctx context.Context, title string) (string, error) {
	watchURL, err := r.trailers.Resolve(ctx, title)
	if err != nil {
		return "", serr.Wrap(err, "trailer lookup failed")
	}
	return models.VideoIDFromURL(watchURL)
}

// Snapshot copies the row state for rendering.
func (r *Row) Snapshot() RowState {
	r.mu.Lock()
	defer r.mu.Unlock()

	movies := make([]models.MediaItem, len(r.movies))
	copy(movies, r.movies)

	return RowState{
		Key:        r.cfg.Key,
		Title:      r.cfg.Title,
		FetchURL:   r.cfg.FetchURL,
		IsLargeRow: r.cfg.IsLargeRow,
		Movies:     movies,
		TrailerID:  r.trailerID,
	}
}

// RowState is an immutable view of a Row.
type RowState struct {
	Key        string             `json:"key"`
	Title      string             `json:"title"`
	FetchURL   string             `json:"fetch_url"`
	IsLargeRow bool               `json:"is_large_row"`
	Movies     []models.MediaItem `json:"movies"`
	TrailerID  string             `json:"trailer_id,omitempty"`
}

// TrailerOpen reports whether the overlay is showing.
func (s RowState) TrailerOpen() bool { return s.TrailerID != "" }

// ImageURL is the poster or backdrop address for item depending on row size.
func (s RowState) ImageURL(imageBase string, item models.MediaItem) string {
	return models.ImageURL(imageBase, item.ImagePath(s.IsLargeRow))
}
