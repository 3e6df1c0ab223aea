package views

import (
	"context"
	"errors"

	"goflix/models"

	"golang.org/x/sync/errgroup"
)

// ErrNoSuchRow is returned for a row position the home screen does not have.
var ErrNoSuchRow = errors.New("no such row")

// Deps are the collaborators every home screen shares.
type Deps struct {
	Source      ListingSource
	Trailers    TrailerResolver
	Concurrency int // max fetches in flight while mounting
}

// Home is the banner plus its rows.
type Home struct {
	Banner      *Banner
	Rows        []*Row
	concurrency int
}

// NewHome builds an unmounted home screen from the row catalog.
func NewHome(deps Deps) *Home {
	specs := append(append([]models.RowSpec{}, models.HomeRows...), models.GenreRow)

	rows := make([]*Row, 0, len(specs))
	for _, s := range specs {
		rows = append(rows, NewRow(RowConfig{
			Key:        s.Key,
			Title:      s.Title,
			FetchURL:   s.Endpoint,
			IsLargeRow: s.IsLargeRow,
		}, deps.Source, deps.Trailers))
	}

	return &Home{
		Banner:      NewBanner(deps.Source, models.EndpointOriginals),
		Rows:        rows,
		concurrency: deps.Concurrency,
	}
}

// Mount mounts the banner and every row concurrently and waits for all of
// them. Components log their own failures, so Mount itself cannot fail.
func (h *Home) Mount(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	if h.concurrency > 0 {
		g.SetLimit(h.concurrency)
	}

	g.Go(func() error {
		h.Banner.Mount(ctx)
		return nil
	})
	for _, row := range h.Rows {
		g.Go(func() error {
			row.Mount(ctx)
			return nil
		})
	}
	_ = g.Wait()
}

// Row returns the row at position i.
func (h *Home) Row(i int) (*Row, error) {
	if i < 0 || i >= len(h.Rows) {
		return nil, ErrNoSuchRow
	}
	return h.Rows[i], nil
}

// Snapshot captures banner and rows for rendering.
func (h *Home) Snapshot() HomeState {
	state := HomeState{
		Banner: h.Banner.Snapshot(),
		Rows:   make([]RowState, 0, len(h.Rows)),
	}
	for _, r := range h.Rows {
		state.Rows = append(state.Rows, r.Snapshot())
	}
	return state
}

// HomeState is an immutable view of a Home.
type HomeState struct {
	Banner BannerState `json:"banner"`
	Rows   []RowState  `json:"rows"`
}
