package web

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"net/http"

	"github.com/rohanthewiz/rweb"
)

// The app ships one stylesheet and an inline icon, both compiled in.
// Pages link the stylesheet with a ?v= query, so a versioned request may be
// cached for good; anything else revalidates against the ETag.

//go:embed static/css/app.css
var stylesheet []byte

const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 500 500"><rect width="500" height="500" rx="40" fill="#111"/><text x="250" y="330" font-family="Arial,sans-serif" font-weight="900" font-size="260" fill="#e50914" text-anchor="middle">G</text></svg>`

// SetupStaticFiles registers the asset routes.
func SetupStaticFiles(s *rweb.Server) {
	s.Get("/static/css/app.css", serveAsset("text/css; charset=utf-8", stylesheet))
	s.Get("/favicon.ico", serveAsset("image/svg+xml", []byte(faviconSVG)))
}

func serveAsset(contentType string, body []byte) rweb.Handler {
	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`

	return func(c rweb.Context) error {
		c.Response().SetHeader("ETag", etag)
		if c.Request().QueryParam("v") != "" {
			c.Response().SetHeader("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			c.Response().SetHeader("Cache-Control", "no-cache")
		}

		if c.Request().Header("If-None-Match") == etag {
			c.SetStatus(http.StatusNotModified)
			return nil
		}

		c.Response().SetHeader("Content-Type", contentType)
		return c.Bytes(body)
	}
}
