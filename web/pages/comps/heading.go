package comps

import (
	"goflix/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Heading is the label above a row.
type Heading struct {
	Title string
}

func (h Heading) Render(b *element.Builder) (x any) {
	b.H2("class", "row__title").T(shared.Esc(h.Title))
	return
}
