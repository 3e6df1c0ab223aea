package auth

import (
	"goflix/views"
	"goflix/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// LoginPage is the sign in / sign up screen.
type LoginPage struct {
	shared.Page
	State views.LoginState
}

// NewLoginPage creates the page around the form's current state.
func NewLoginPage(state views.LoginState) LoginPage {
	return LoginPage{
		Page:  shared.Page{Title: state.Mode.Label() + " - Goflix"},
		State: state,
	}
}

// Render generates the HTML for the login page
func (p LoginPage) Render() string {
	return p.Document("auth", LoginForm{State: p.State}, p.Footer())
}

// LoginForm is the card holding the form. It never submits; the only
// server round trip is the mode switch, which re-renders the card.
type LoginForm struct {
	State views.LoginState
}

func (f LoginForm) Render(b *element.Builder) any {
	label := f.State.Mode.Label()

	b.Div("class", "login", "id", "login").R(
		b.A("href", "/", "class", "login__logo").T("GOFLIX"),
		b.DivClass("login__card").R(
			b.H1("class", "login__title").T(label),

			// Browser submission is suppressed
			b.Form("class", "login__form", "id", "login-form", "onsubmit", "return false").R(
				b.Wrap(func() {
					if f.State.ShowsNameField() {
						b.Input("type", "text", "class", "login__input", "name", "name",
							"placeholder", "Your Name", "autocomplete", "name",
							"value", shared.Esc(f.State.Name))
					}
				}),
				b.Input("type", "email", "class", "login__input", "name", "email",
					"placeholder", "Email or Phone number", "autocomplete", "email",
					"value", shared.Esc(f.State.Email)),
				b.Input("type", "password", "class", "login__input", "name", "password",
					"placeholder", "Password", "autocomplete", "current-password"),
				b.Button("type", "submit", "class", "login__submit").T(label),

				b.DivClass("login__help").R(
					b.Label("class", "login__remember").R(
						b.Input("type", "checkbox", "name", "remember"),
						b.Span().T("Remember Me"),
					),
					b.Span("class", "login__needhelp").T("Need Help?"),
				),
			),

			b.DivClass("login__switch").R(
				b.Wrap(func() {
					if f.State.Mode == views.SignIn {
						b.Span().T("New to Netflix? ")
						f.switchLink(b, views.SignUp, "Sign Up Now")
					} else {
						b.Span().T("Already have Account? ")
						f.switchLink(b, views.SignIn, "Sign In Now")
					}
				}),
			),
		),
	)
	return nil
}

// switchLink posts the new mode together with whatever has been typed so far.
func (f LoginForm) switchLink(b *element.Builder, to views.SignMode, text string) {
	b.Button("type", "button", "class", "login__switch-link",
		"hx-post", "/login/mode",
		"hx-vals", shared.Esc(`{"mode": "`+to.Param()+`"}`),
		"hx-include", "#login-form [name='name'], #login-form [name='email']",
		"hx-target", "#login", "hx-swap", "outerHTML").T(text)
}

// RenderLoginForm renders only the card for in-place replacement.
func RenderLoginForm(state views.LoginState) string {
	b := element.NewBuilder()
	element.RenderComponents(b, LoginForm{State: state})
	return b.String()
}
