package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"goflix/metrics"
	"goflix/models"
	"goflix/tui"
	"goflix/views"
	"goflix/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
	"github.com/urfave/cli/v3"
)

// sweepInterval is how often idle sessions are looked for
const sweepInterval = time.Minute

// appDeps is everything built from the configuration.
type appDeps struct {
	cfg     *models.Config
	cache   models.ListingCache
	newHome func() *views.Home
}

func (rt *appDeps) Close() {
	if err := rt.cache.Close(); err != nil {
		logger.LogErr(err, "failed to close listing cache")
	}
}

// setup loads and validates configuration and wires the metadata client,
// cache and trailer finder behind the home screen factory.
func setup(cmd *cli.Command) (*appDeps, error) {
	cfg, err := models.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, serr.Wrap(err, "failed to load configuration")
	}
	if err = cfg.Validate(); err != nil {
		return nil, serr.Wrap(err, "invalid configuration")
	}
	logger.SetLogLevel(cfg.LogLevel)

	cache, err := models.NewListingCache(cfg)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open listing cache")
	}

	client := models.NewMetadataClient(cfg)
	deps := views.Deps{
		Source:      models.NewCachedSource(client, cache),
		Trailers:    models.NewTrailerFinder(client),
		Concurrency: cfg.FetchConcurrency,
	}

	return &appDeps{
		cfg:     cfg,
		cache:   cache,
		newHome: func() *views.Home { return views.NewHome(deps) },
	}, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	signer, err := models.NewSessionSigner(rt.cfg.SessionSecret)
	if err != nil {
		return err
	}

	registry := views.NewRegistry(rt.cfg.SessionIdleTTL, rt.newHome)
	go registry.Run(ctx, sweepInterval)

	if rt.cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, rt.cfg.MetricsAddr); err != nil {
				logger.LogErr(err, "metrics listener stopped")
			}
		}()
	}

	srv := web.NewServer(&web.App{
		Config:   rt.cfg,
		Registry: registry,
		Signer:   signer,
	}, rweb.ServerOptions{Verbose: true})

	return web.Run(srv, rt.cfg.Address)
}

func runBrowse(ctx context.Context, cmd *cli.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	// Log lines would tear the terminal UI
	logger.SetLogLevel("error")

	p := tea.NewProgram(tui.NewModel(ctx, rt.newHome), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return serr.Wrap(err, "error running browse mode")
	}
	return nil
}
