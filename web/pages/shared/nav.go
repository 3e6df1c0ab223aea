package shared

import "github.com/rohanthewiz/element"

// Nav is the bar across the top of every page: logo home link and,
// where it makes sense, a way to the sign-in form.
type Nav struct {
	ShowSignIn bool
}

func (n Nav) Render(b *element.Builder) any {
	b.Nav("class", "nav").R(
		b.A("href", "/", "class", "nav__logo").T("GOFLIX"),
		b.Wrap(func() {
			if n.ShowSignIn {
				b.A("href", "/login", "class", "nav__signin").T("Sign In")
			}
		}),
	)
	return nil
}
