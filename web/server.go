package web

import (
	"goflix/models"
	"goflix/views"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// Per-client limits on the routes that reach the metadata API
const (
	clickRatePerSecond = 5
	clickRateBurst     = 20
)

// App is what the handlers share: configuration, the per-session view
// registry and the cookie signer.
type App struct {
	Config   *models.Config
	Registry *views.Registry
	Signer   *models.SessionSigner
}

// NewServer creates and configures the RWeb server.
// opts.Address defaults to the configured address.
func NewServer(app *App, opts rweb.ServerOptions) *rweb.Server {
	if opts.Address == "" {
		opts.Address = app.Config.Address
	}
	s := rweb.NewServer(opts)

	// Apply middleware
	s.Use(rweb.RequestInfo)
	s.Use(CorsMiddleware)
	s.Use(SessionMiddleware(app.Signer))
	s.Use(SecurityHeadersMiddleware)
	s.Use(LoggingMiddleware)

	setupRoutes(s, app)

	// Serve static files using embedded FS
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, address string) error {
	logger.Info("Goflix server starting", "address", address)
	return s.Run()
}
