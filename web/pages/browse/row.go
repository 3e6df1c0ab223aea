package browse

import (
	"fmt"
	"net/url"

	"goflix/models"
	"goflix/views"
	"goflix/web/pages/comps"
	"goflix/web/pages/shared"

	"github.com/rohanthewiz/element"
)

const youtubeEmbed = "https://www.youtube.com/embed/"

// Row draws one strip of posters. Index is the row's position on the page
// and addresses it in click and endpoint requests.
type Row struct {
	Index     int
	State     views.RowState
	ImageBase string
	// GenrePicker adds the endpoint selector above the strip.
	GenrePicker bool
}

// RowID is the element id the row's fragment replaces.
func RowID(index int) string {
	return fmt.Sprintf("row-%d", index)
}

func (r Row) Render(b *element.Builder) any {
	target := "#" + RowID(r.Index)

	postersClass := "row__posters"
	posterClass := "row__poster"
	if r.State.IsLargeRow {
		postersClass += " row__posters--large"
		posterClass += " row__posterLarge"
	}

	b.Div("class", "row", "id", RowID(r.Index)).R(
		element.RenderComponents(b, comps.Heading{Title: r.State.Title}),
		b.Wrap(func() {
			if r.GenrePicker {
				r.renderGenrePicker(b, target)
			}
		}),
		b.DivClass(postersClass).R(
			b.Wrap(func() {
				for i, item := range r.State.Movies {
					b.Button("type", "button", "class", "row__poster-btn",
						"hx-post", fmt.Sprintf("/rows/%d/items/%d/click", r.Index, i),
						"hx-target", target, "hx-swap", "outerHTML").R(
						b.Img("class", posterClass,
							"src", shared.Esc(r.State.ImageURL(r.ImageBase, item)),
							"alt", shared.Esc(item.DisplayTitle()), "loading", "lazy"),
					)
				}
			}),
		),
		b.Wrap(func() {
			if r.State.TrailerOpen() {
				src := youtubeEmbed + url.PathEscape(r.State.TrailerID) + "?autoplay=1"
				b.DivClass("row__trailer").R(
					b.T(fmt.Sprintf(`<iframe src="%s" height="390" width="100%%" frameborder="0" allow="autoplay; encrypted-media" allowfullscreen></iframe>`,
						shared.Esc(src))),
				)
			}
		}),
	)
	return nil
}

func (r Row) renderGenrePicker(b *element.Builder, target string) {
	b.Form("class", "row__genres", "hx-post", fmt.Sprintf("/rows/%d/endpoint", r.Index),
		"hx-target", target, "hx-swap", "outerHTML", "hx-trigger", "change").R(
		b.LabelClass("row__genres-label", "for", RowID(r.Index)+"-genre").T("Genre"),
		b.Select("name", "endpoint", "id", RowID(r.Index)+"-genre").R(
			b.Wrap(func() {
				for _, g := range models.Genres {
					if g.Endpoint == r.State.FetchURL {
						b.Option("value", shared.Esc(g.Endpoint), "selected", "selected").T(g.Label)
					} else {
						b.Option("value", shared.Esc(g.Endpoint)).T(g.Label)
					}
				}
			}),
		),
	)
}

// RenderRow renders a single row as a fragment for in-place replacement.
func RenderRow(row Row) string {
	b := element.NewBuilder()
	element.RenderComponents(b, row)
	return b.String()
}
