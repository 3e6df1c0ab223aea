// Package pages contains the full-page renderers.
package pages

import (
	"goflix/models"
	"goflix/views"
	"goflix/web/pages/browse"
	"goflix/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Home is the browse screen: navigation, hero banner, every row, footer.
type Home struct {
	shared.Page
	State     views.HomeState
	ImageBase string
}

// NewHome wraps a snapshot for rendering.
func NewHome(state views.HomeState, imageBase string) Home {
	return Home{
		Page:      shared.Page{Title: "Goflix", ShowSignIn: true},
		State:     state,
		ImageBase: imageBase,
	}
}

func (h Home) Render() (out string) {
	comps := []element.Component{
		h.Nav(),
		browse.Banner{State: h.State.Banner, ImageBase: h.ImageBase},
	}
	for i, row := range h.State.Rows {
		comps = append(comps, browse.Row{
			Index:       i,
			State:       row,
			ImageBase:   h.ImageBase,
			GenrePicker: IsGenreRow(row),
		})
	}
	comps = append(comps, h.Footer())

	return h.Document("app", comps...)
}

// IsGenreRow reports whether the row is the one whose endpoint can be changed.
func IsGenreRow(row views.RowState) bool {
	return row.Key == models.GenreRow.Key
}
