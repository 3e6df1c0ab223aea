package web

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"goflix/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"golang.org/x/time/rate"
)

// SessionCookie holds the signed session token
const SessionCookie = "goflix_session"

// ctxSessionID is the context key the session middleware fills
const ctxSessionID = "session_id"

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, HX-Request, HX-Target, HX-Current-URL, HX-Trigger")

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SessionMiddleware resolves the browser's session id from the signed
// cookie, issuing a new session when the cookie is missing or does not verify.
func SessionMiddleware(signer *models.SessionSigner) rweb.Handler {
	return func(c rweb.Context) error {
		if token, err := c.GetCookie(SessionCookie); err == nil && token != "" {
			if sessionID, err := signer.SessionID(token); err == nil {
				c.Set(ctxSessionID, sessionID)
				return c.Next()
			}
			// Expired or tampered: fall through and start over
		}

		sessionID, token, err := signer.NewSession()
		if err != nil {
			logger.LogErr(err, "failed to create session")
			c.SetStatus(http.StatusInternalServerError)
			return nil
		}
		if err = c.SetCookie(SessionCookie, token); err != nil {
			logger.LogErr(err, "failed to set session cookie")
		}
		c.Set(ctxSessionID, sessionID)

		return c.Next()
	}
}

// sessionID reads what SessionMiddleware stored.
func sessionID(c rweb.Context) string {
	id, _ := c.Get(ctxSessionID).(string)
	return id
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// Images come from the TMDB CDN, trailers are framed from YouTube
	csp := []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline' https://unpkg.com", // inline submit guard on the login form
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"frame-src https://www.youtube.com",
		"connect-src 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// ClientKey picks the bucket a request is rate limited under.
// Forwarding headers are honored only when trustProxy is set, and then only
// the entry the nearest proxy appended. Otherwise requests are keyed by
// session; the limited routes only act on a session's mounted rows, so a
// fresh cookie gets a fresh bucket but nothing to click.
func ClientKey(trustProxy bool) func(rweb.Context) string {
	return func(c rweb.Context) string {
		if trustProxy {
			if xff := c.Request().Header("X-Forwarded-For"); xff != "" {
				hops := strings.Split(xff, ",")
				if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
					return "ip:" + ip
				}
			}
			if ip := strings.TrimSpace(c.Request().Header("X-Real-IP")); ip != "" {
				return "ip:" + ip
			}
		}
		return "session:" + sessionID(c)
	}
}

// RateLimit wraps handlers so each client, as named by key, gets a token
// bucket of perSecond requests with room for a burst.
func RateLimit(perSecond float64, burst int, key func(rweb.Context) string) func(rweb.Handler) rweb.Handler {
	type visitor struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu        sync.Mutex
		visitors  = make(map[string]*visitor)
		lastSweep = time.Now()
	)

	allow := func(c rweb.Context) bool {
		client := key(c)
		now := time.Now()

		mu.Lock()
		// Clean up old entries at most once a minute
		if now.Sub(lastSweep) > time.Minute {
			for k, v := range visitors {
				if now.Sub(v.lastSeen) > 3*time.Minute {
					delete(visitors, k)
				}
			}
			lastSweep = now
		}
		v, exists := visitors[client]
		if !exists {
			v = &visitor{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
			visitors[client] = v
		}
		v.lastSeen = now
		allowed := v.limiter.Allow()
		mu.Unlock()

		if !allowed {
			logger.Info("Rate limit exceeded", "client", client, "path", c.Request().Path())
		}
		return allowed
	}

	return func(next rweb.Handler) rweb.Handler {
		return func(c rweb.Context) error {
			if !allow(c) {
				c.SetStatus(http.StatusTooManyRequests)
				return nil
			}
			return next(c)
		}
	}
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}
