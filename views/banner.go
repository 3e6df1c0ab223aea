// Package views holds the state of the page components independently of how
// they are drawn. The web pages and the terminal browse mode both render
// snapshots taken from these types.
package views

import (
	"context"
	"math/rand/v2"
	"sync"

	"goflix/models"

	"github.com/rohanthewiz/logger"
)

// ListingSource reads a list endpoint of the metadata API.
type ListingSource interface {
	Fetch(ctx context.Context, endpoint string) (*models.Listing, error)
}

// TrailerResolver turns a title into a watch URL carrying a "v" parameter.
type TrailerResolver interface {
	Resolve(ctx context.Context, title string) (string, error)
}

// Banner is the hero item at the top of the home screen.
// It stays empty until Mount finds a non-empty originals listing.
type Banner struct {
	source   ListingSource
	endpoint string
	pick     func(n int) int

	mu    sync.RWMutex
	movie *models.MediaItem
}

// NewBanner creates an unmounted banner reading from endpoint.
func NewBanner(source ListingSource, endpoint string) *Banner {
	return &Banner{
		source:   source,
		endpoint: endpoint,
		pick:     rand.IntN,
	}
}

// Mount reads the listing once and selects one entry uniformly at random.
// A failed read is logged and leaves the banner empty.
func (b *Banner) Mount(ctx context.Context) {
	listing, err := b.source.Fetch(ctx, b.endpoint)
	if err != nil {
		logger.LogErr(err, "Error fetching banner data", "endpoint", b.endpoint)
		return
	}

	items := listing.Items()
	if len(items) == 0 {
		return
	}

	chosen := items[b.pick(len(items))]

	b.mu.Lock()
	b.movie = &chosen
	b.mu.Unlock()
}

// Snapshot returns the current selection.
func (b *Banner) Snapshot() BannerState {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.movie == nil {
		return BannerState{}
	}
	m := *b.movie
	return BannerState{Movie: &m}
}

// BannerState is an immutable view of a Banner.
type BannerState struct {
	Movie *models.MediaItem `json:"movie"`
}

// Ready reports whether there is anything to draw.
func (s BannerState) Ready() bool { return s.Movie != nil }

// Title is the resolved display title.
func (s BannerState) Title() string {
	if s.Movie == nil {
		return ""
	}
	return s.Movie.DisplayTitle()
}

// Synopsis is the overview cut to models.SynopsisLimit characters.
func (s BannerState) Synopsis() string {
	if s.Movie == nil {
		return ""
	}
	return models.Truncate(s.Movie.Overview, models.SynopsisLimit)
}

// BackdropURL is the background image address.
func (s BannerState) BackdropURL(imageBase string) string {
	if s.Movie == nil {
		return ""
	}
	return models.ImageURL(imageBase, s.Movie.BackdropPath)
}
