package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"goflix/models"
	"goflix/views"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// Browse serves the session's home screen as JSON.
type Browse struct {
	registry  *views.Registry
	imageBase string
	sessionID func(rweb.Context) string
}

// NewBrowse creates the handlers; sessionID reads the id the session
// middleware resolved.
func NewBrowse(registry *views.Registry, imageBase string, sessionID func(rweb.Context) string) *Browse {
	return &Browse{registry: registry, imageBase: imageBase, sessionID: sessionID}
}

// HomeOutput is the JSON form of the home screen.
type HomeOutput struct {
	Banner *BannerOutput `json:"banner"`
	Rows   []RowOutput   `json:"rows"`
}

// BannerOutput is nil until a selection exists.
type BannerOutput struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Synopsis    string `json:"synopsis"`
	BackdropURL string `json:"backdrop_url"`
}

type RowOutput struct {
	Index      int          `json:"index"`
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	FetchURL   string       `json:"fetch_url"`
	IsLargeRow bool         `json:"is_large_row"`
	TrailerID  string       `json:"trailer_id"`
	Items      []ItemOutput `json:"items"`
}

type ItemOutput struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// ClickInput is the body of POST /api/v1/rows/:row/click
type ClickInput struct {
	Index *int `json:"index"`
}

// Home handles GET /api/v1/home
// Returns the session's home screen, mounting one first if there is none.
func (br *Browse) Home(ctx rweb.Context) error {
	id := br.sessionID(ctx)

	home, ok := br.registry.Home(id)
	if !ok {
		home = br.registry.MountHome(context.Background(), id)
	}

	return writeSuccess(ctx, http.StatusOK, br.homeOutput(home.Snapshot()))
}

// ClickRow handles POST /api/v1/rows/:row/click
// Toggles the row's trailer slot and returns the row.
func (br *Browse) ClickRow(ctx rweb.Context) error {
	home, ok := br.registry.Home(br.sessionID(ctx))
	if !ok {
		return writeError(ctx, http.StatusNotFound, "no home screen for this session")
	}

	rowIdx, err := strconv.Atoi(ctx.Request().Param("row"))
	if err != nil {
		return writeError(ctx, http.StatusNotFound, "row not found")
	}
	row, err := home.Row(rowIdx)
	if err != nil {
		return writeError(ctx, http.StatusNotFound, "row not found")
	}

	var input ClickInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode request body"), "invalid JSON")
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	if input.Index == nil {
		return writeError(ctx, http.StatusBadRequest, "index is required")
	}

	if err = row.Click(context.Background(), *input.Index); err != nil {
		if errors.Is(err, views.ErrNoSuchItem) {
			return writeError(ctx, http.StatusBadRequest, "index out of range")
		}
		logger.LogErr(err, "row click failed")
		return writeError(ctx, http.StatusInternalServerError, "click failed")
	}

	return writeSuccess(ctx, http.StatusOK, br.rowOutput(rowIdx, row.Snapshot()))
}

// CatalogEntry describes one row of the home screen.
type CatalogEntry struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	Endpoint   string `json:"endpoint"`
	IsLargeRow bool   `json:"is_large_row"`
}

// CatalogOutput is the row catalog plus the endpoints the genre row accepts.
type CatalogOutput struct {
	Rows   []CatalogEntry `json:"rows"`
	Genres []models.Genre `json:"genres"`
}

// Catalog handles GET /api/v1/catalog
func Catalog(ctx rweb.Context) error {
	specs := append(append([]models.RowSpec{}, models.HomeRows...), models.GenreRow)

	out := CatalogOutput{Rows: make([]CatalogEntry, 0, len(specs)), Genres: models.Genres}
	for _, s := range specs {
		out.Rows = append(out.Rows, CatalogEntry{
			Key:        s.Key,
			Title:      s.Title,
			Endpoint:   s.Endpoint,
			IsLargeRow: s.IsLargeRow,
		})
	}
	return writeSuccess(ctx, http.StatusOK, out)
}

func (br *Browse) homeOutput(state views.HomeState) HomeOutput {
	out := HomeOutput{Rows: make([]RowOutput, 0, len(state.Rows))}

	if state.Banner.Ready() {
		out.Banner = &BannerOutput{
			ID:          state.Banner.Movie.ID,
			Title:       state.Banner.Title(),
			Synopsis:    state.Banner.Synopsis(),
			BackdropURL: state.Banner.BackdropURL(br.imageBase),
		}
	}
	for i, row := range state.Rows {
		out.Rows = append(out.Rows, br.rowOutput(i, row))
	}
	return out
}

func (br *Browse) rowOutput(index int, state views.RowState) RowOutput {
	out := RowOutput{
		Index:      index,
		Key:        state.Key,
		Title:      state.Title,
		FetchURL:   state.FetchURL,
		IsLargeRow: state.IsLargeRow,
		TrailerID:  state.TrailerID,
		Items:      make([]ItemOutput, 0, len(state.Movies)),
	}
	for _, item := range state.Movies {
		out.Items = append(out.Items, ItemOutput{
			ID:       item.ID,
			Title:    item.DisplayTitle(),
			ImageURL: state.ImageURL(br.imageBase, item),
		})
	}
	return out
}
