package app

import (
	"log/slog"
	"time"

	"pricesim.demo.org/internal/appconf"
	"pricesim.demo.org/internal/distribution"
	"pricesim.demo.org/internal/metrics"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// Grid is the shared price grid every curve is evaluated on. Handlers treat it as read-only.
	Grid      distribution.PriceGrid
	StartedAt time.Time
}

// New wires an Application around cfg using the default price grid.
func New(cfg appconf.Config, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	return &Application{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics.New(),
		Grid:      distribution.DefaultPriceGrid(),
		StartedAt: time.Now(),
	}
}
