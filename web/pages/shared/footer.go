package shared

import "github.com/rohanthewiz/element"

// Footer carries the attribution the metadata provider requires.
type Footer struct{}

func (f Footer) Render(b *element.Builder) any {
	b.Footer("class", "footer").R(
		b.P("class", "footer__credit").T("Movie data and images provided by TMDB. Trailers play from YouTube."),
		b.P("class", "footer__copy").T("Copyright &copy; 2025"),
	)
	return nil
}
