// Package browse renders the home screen components.
package browse

import (
	"fmt"

	"goflix/views"
	"goflix/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Banner draws the hero item. Before a selection exists it draws nothing.
type Banner struct {
	State     views.BannerState
	ImageBase string
}

func (bn Banner) Render(b *element.Builder) any {
	if !bn.State.Ready() {
		return nil
	}

	style := fmt.Sprintf("background-size: cover; background-position: center center; background-image: url(%q);",
		bn.State.BackdropURL(bn.ImageBase))

	b.Header("class", "banner", "id", "banner", "style", shared.Esc(style)).R(
		b.DivClass("banner__contents").R(
			b.H1("class", "banner__title").T(shared.Esc(bn.State.Title())),
			b.DivClass("banner__buttons").R(
				b.Button("type", "button", "class", "banner__button").T("Play"),
				b.Button("type", "button", "class", "banner__button").T("My List"),
			),
			b.H2("class", "banner__description").T(shared.Esc(bn.State.Synopsis())),
		),
		b.DivClass("banner--fadeBottom").R(),
	)
	return nil
}
