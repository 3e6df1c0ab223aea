package views

import "sync"

// SignMode is which variant of the auth form is showing.
type SignMode int

const (
	SignIn SignMode = iota
	SignUp
)

// Label is the header and button text for the mode.
func (m SignMode) Label() string {
	if m == SignUp {
		return "Sign Up"
	}
	return "Sign In"
}

// Param is the form/query value naming the mode.
func (m SignMode) Param() string {
	if m == SignUp {
		return "signup"
	}
	return "signin"
}

func (m SignMode) String() string { return m.Label() }

// ParseSignMode reads a Param value.
func ParseSignMode(s string) (SignMode, bool) {
	switch s {
	case "signin":
		return SignIn, true
	case "signup":
		return SignUp, true
	}
	return SignIn, false
}

// LoginState is the whole of the form's local state. The password is never
// kept; the form does not submit anywhere.
type LoginState struct {
	Mode  SignMode `json:"mode"`
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email,omitempty"`
}

// ShowsNameField reports whether the name input is part of the form.
func (s LoginState) ShowsNameField() bool { return s.Mode == SignUp }

// Login is the sign in / sign up form.
type Login struct {
	mu    sync.Mutex
	state LoginState
}

// NewLogin starts in SignIn with empty fields.
func NewLogin() *Login {
	return &Login{state: LoginState{Mode: SignIn}}
}

// SignUpNow switches SignIn to SignUp.
func (l *Login) SignUpNow() { l.Switch(SignUp) }

// SignInNow switches SignUp to SignIn.
func (l *Login) SignInNow() { l.Switch(SignIn) }

// Switch moves to mode; switching to the current mode is a no-op.
func (l *Login) Switch(mode SignMode) {
	l.mu.Lock()
	l.state.Mode = mode
	l.mu.Unlock()
}

// Remember keeps the typed values so a re-rendered form shows them again.
func (l *Login) Remember(name, email string) {
	l.mu.Lock()
	l.state.Name = name
	l.state.Email = email
	l.mu.Unlock()
}

// State returns a copy of the current state.
func (l *Login) State() LoginState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}
