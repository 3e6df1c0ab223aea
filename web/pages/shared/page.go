// Package shared contains the document shell and the components every page carries.
package shared

import (
	"html"

	"github.com/rohanthewiz/element"
)

// htmxSrc drives the in-place row and form updates
const htmxSrc = "https://unpkg.com/htmx.org@1.9.12/dist/htmx.min.js"

// Page is embedded by every full page. It provides the document shell,
// the top navigation and the footer.
//
//	type Home struct {
//	    shared.Page
//	    ...
//	}
type Page struct {
	Title string
	// ShowSignIn adds the sign-in button to the navigation bar.
	ShowSignIn bool
}

// Nav returns the navigation bar for this page.
func (p Page) Nav() Nav {
	return Nav{ShowSignIn: p.ShowSignIn}
}

// Footer returns the page footer.
func (p Page) Footer() Footer {
	return Footer{}
}

// Document renders a complete HTML document around body.
func (p Page) Document(bodyClass string, body ...element.Component) string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		b.Head().R(
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Title().T(Esc(p.Title)),
			b.Link("rel", "stylesheet", "href", "/static/css/app.css?v=1"),
			b.Script("src", htmxSrc, "defer", "defer").R(),
		),
		b.Body("class", bodyClass).R(
			element.RenderComponents(b, body...),
		),
	)

	return "<!DOCTYPE html>" + b.String()
}

// Esc escapes text coming from outside the app before it is written into markup.
func Esc(s string) string {
	return html.EscapeString(s)
}
