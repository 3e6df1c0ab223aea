package web

import (
	"goflix/web/api"

	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server, app *App) {
	limited := RateLimit(clickRatePerSecond, clickRateBurst, ClientKey(app.Config.TrustProxy))

	// Page routes - HTML responses
	s.Get("/", app.HomePage)
	s.Get("/login", app.LoginPage)

	// Fragment routes - HTMX swaps a component in place
	s.Post("/rows/:row/items/:index/click", limited(app.RowClick))
	s.Post("/rows/:row/endpoint", limited(app.RowEndpoint))
	s.Post("/login/mode", app.LoginMode)

	s.Get("/health", HealthCheck)

	// API v1 routes - JSON responses over the same session state
	browse := api.NewBrowse(app.Registry, app.Config.ImageBaseURL, sessionID)
	s.Get("/api/v1/home", browse.Home)
	s.Post("/api/v1/rows/:row/click", limited(browse.ClickRow))
	s.Get("/api/v1/catalog", api.Catalog)
}
