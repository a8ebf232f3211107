package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pricesim.demo.org/internal/app"
	"pricesim.demo.org/internal/appconf"
	"pricesim.demo.org/internal/logging"
	"pricesim.demo.org/internal/restapi"
	"pricesim.demo.org/internal/webui"
)

func main() {
	bootstrap := logging.NewStructuredLogger(os.Stderr, slog.LevelInfo)
	if err := appconf.LoadEnvFile(); err != nil {
		logging.LogError(bootstrap, "failed to load .env file", err)
		os.Exit(1)
	}

	cfg := parseFlags(os.Args[1:])

	logger := logging.NewStructuredLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

// parseFlags reads command-line flags. Every flag defaults to its environment
// variable, which may itself come from a .env file.
func parseFlags(args []string) appconf.Config {
	var cfg appconf.Config
	var env, apiKeys, logLevel string

	fs := flag.NewFlagSet("api", flag.ExitOnError)
	fs.IntVar(&cfg.Port, "port", appconf.GetEnvInt("PORT", 4000), "API server port")
	fs.StringVar(&env, "env", appconf.GetEnv("ENV", "development"), "Environment (development|test|production)")
	fs.StringVar(&apiKeys, "api-keys", appconf.GetEnv("API_KEYS", "test"), "Comma Separated API Keys (test, etc)")
	fs.IntVar(&cfg.RateLimit, "rate-limit", appconf.GetEnvInt("RATE_LIMIT", 100), "Requests per second per API key (0 disables limiting)")
	fs.StringVar(&logLevel, "log-level", appconf.GetEnv("LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	_ = fs.Parse(args)

	cfg.Env = appconf.EnvFlagToEnvironment(env)
	cfg.ApiKeys = appconf.ParseAPIKeys(apiKeys)
	cfg.LogLevel = appconf.ParseLogLevel(logLevel)
	return cfg
}

func newHandler(application *app.Application) (http.Handler, *restapi.RestAPI) {
	api := restapi.NewRestAPI(application)
	router := api.NewRouter()

	webUI := &webui.WebUI{Application: application}
	webUI.SetWebUIRoutes(router)

	return api.WithMiddleware(router), api
}

func run(cfg appconf.Config, logger *slog.Logger) error {
	application := app.New(cfg, logger)
	handler, api := newHandler(application)
	defer logging.SafeCloseWithLogging(api, logger, "rest_api")

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "grid_points", len(application.Grid))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
