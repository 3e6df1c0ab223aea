package views

import (
	"context"
	"errors"
	"testing"

	"goflix/models"

	"go.uber.org/goleak"
)

func catalogSource() *fakeSource {
	src := newFakeSource()
	src.with(models.EndpointOriginals, "Original")
	for _, r := range models.HomeRows {
		if r.Endpoint == models.EndpointOriginals {
			continue
		}
		src.with(r.Endpoint, r.Title+" item")
	}
	return src
}

func TestHomeMount(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	src := catalogSource()
	home := NewHome(Deps{Source: src, Trailers: &fakeTrailers{}, Concurrency: 3})
	home.Mount(context.Background())

	state := home.Snapshot()
	if len(state.Rows) != len(models.HomeRows)+1 {
		t.Fatalf("expected %d rows, got %d", len(models.HomeRows)+1, len(state.Rows))
	}
	if state.Banner.Title() != "Original" {
		t.Errorf("expected banner from originals, got %q", state.Banner.Title())
	}

	for i, spec := range models.HomeRows {
		row := state.Rows[i]
		if row.Title != spec.Title || row.IsLargeRow != spec.IsLargeRow {
			t.Errorf("row %d: expected %q large=%v, got %q large=%v", i, spec.Title, spec.IsLargeRow, row.Title, row.IsLargeRow)
		}
		if len(row.Movies) != 1 {
			t.Errorf("row %d: expected 1 item, got %d", i, len(row.Movies))
		}
	}

	genre := state.Rows[len(state.Rows)-1]
	if genre.Key != models.GenreRow.Key || genre.FetchURL != models.GenreRow.Endpoint {
		t.Errorf("expected genre row last, got %+v", genre)
	}
}

func TestHomeMountSurvivesFailures(t *testing.T) {
	src := catalogSource()
	src.fail[models.EndpointOriginals] = true
	src.fail[models.EndpointTrending] = true

	home := NewHome(Deps{Source: src, Trailers: &fakeTrailers{}})
	home.Mount(context.Background())

	state := home.Snapshot()
	if state.Banner.Ready() {
		t.Error("expected empty banner")
	}
	if len(state.Rows[1].Movies) != 0 {
		t.Error("expected failed row to be empty")
	}
	if len(state.Rows[2].Movies) != 1 {
		t.Error("expected other rows to load")
	}
}

func TestHomeRow(t *testing.T) {
	home := NewHome(Deps{Source: newFakeSource(), Trailers: &fakeTrailers{}})

	if _, err := home.Row(0); err != nil {
		t.Errorf("expected row 0, got %v", err)
	}
	if _, err := home.Row(len(home.Rows)); !errors.Is(err, ErrNoSuchRow) {
		t.Errorf("expected ErrNoSuchRow, got %v", err)
	}
	if _, err := home.Row(-1); !errors.Is(err, ErrNoSuchRow) {
		t.Errorf("expected ErrNoSuchRow, got %v", err)
	}
}
