package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rohanthewiz/serr"
)

// Session token configuration constants
const (
	// SessionTokenLifetime bounds how long a browser keeps the same session id.
	// View components are evicted much earlier (Config.SessionIdleTTL); the
	// token only keeps the id stable across page loads.
	SessionTokenLifetime = 24 * time.Hour

	// TokenIssuer identifies the application that issued the token
	TokenIssuer = "goflix"
)

// SessionClaims carries the session id in the standard subject claim.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionSigner issues and checks the signed session cookie value.
// Signing keeps clients from picking another session's id.
type SessionSigner struct {
	secret []byte
	now    func() time.Time
}

// NewSessionSigner creates a signer; the secret must be at least MinSecretLength.
func NewSessionSigner(secret string) (*SessionSigner, error) {
	if len(secret) < MinSecretLength {
		return nil, serr.New("session secret must be at least 32 characters")
	}
	return &SessionSigner{secret: []byte(secret), now: time.Now}, nil
}

// NewSession mints a fresh session id and its signed token.
func (s *SessionSigner) NewSession() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	now := s.now()

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", serr.Wrap(err, "failed to sign session token")
	}
	return sessionID, token, nil
}

// SessionID validates token and returns the session id it carries.
func (s *SessionSigner) SessionID(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, serr.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(TokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", serr.Wrap(err, "failed to parse session token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", serr.New("invalid session token claims")
	}
	return claims.Subject, nil
}
