package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"unitconv.dev/internal/app"
	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/rates"
	"unitconv.dev/internal/restapi"
	"unitconv.dev/internal/webui"
	"unitconv.dev/prefsdb"
)

// serverConfig collects everything the server reads from flags and the
// environment.
type serverConfig struct {
	app      appconf.Config
	rates    rates.Config
	dbPath   string
	logLevel string
}

// parseConfig reads command line flags. Every flag defaults from its
// UNITCONV_* environment variable.
func parseConfig(args []string, stderr io.Writer) (serverConfig, error) {
	var cfg serverConfig
	var env, apiKeys string

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.IntVar(&cfg.app.Port, "port", appconf.GetEnvAsInt("UNITCONV_PORT", 4000), "API server port")
	fs.StringVar(&env, "env", appconf.GetEnv("UNITCONV_ENV", "development"), "Environment (development|test|production)")
	fs.StringVar(&apiKeys, "api-keys", appconf.GetEnv("UNITCONV_API_KEYS", "test"), "Comma Separated API Keys (test, etc)")
	fs.IntVar(&cfg.app.RateLimit, "rate-limit", appconf.GetEnvAsInt("UNITCONV_RATE_LIMIT", 100), "Requests per second per API key, 0 disables limiting")
	fs.BoolVar(&cfg.app.Verbose, "verbose", appconf.GetEnvAsBool("UNITCONV_VERBOSE", false), "Log database setup details")
	fs.StringVar(&cfg.rates.URL, "rates-url", appconf.GetEnv("UNITCONV_RATES_URL", rates.DefaultURL), "Exchange rate service URL")
	fs.StringVar(&cfg.rates.BaseCurrency, "base-currency", appconf.GetEnv("UNITCONV_BASE_CURRENCY", rates.DefaultBaseCurrency), "Currency the rate table is quoted against")
	fs.DurationVar(&cfg.rates.Timeout, "fetch-timeout", appconf.GetEnvAsDuration("UNITCONV_FETCH_TIMEOUT", rates.DefaultTimeout), "Timeout for a single rate fetch")
	fs.DurationVar(&cfg.rates.RefreshInterval, "refresh-interval", appconf.GetEnvAsDuration("UNITCONV_REFRESH_INTERVAL", 0), "Interval between rate refreshes, 0 disables periodic refresh")
	fs.StringVar(&cfg.dbPath, "db-path", appconf.GetEnv("UNITCONV_DB_PATH", "unitconv.db"), "Path to the preference database")
	fs.StringVar(&cfg.logLevel, "log-level", appconf.GetEnv("UNITCONV_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return serverConfig{}, err
	}

	cfg.app.Env = appconf.EnvFlagToEnvironment(env)
	cfg.app.ApiKeys = appconf.ParseAPIKeys(apiKeys)
	if len(cfg.app.ApiKeys) == 0 {
		return serverConfig{}, errors.New("at least one API key is required")
	}
	if cfg.app.Port <= 0 || cfg.app.Port > 65535 {
		return serverConfig{}, fmt.Errorf("invalid port %d", cfg.app.Port)
	}
	return cfg, nil
}

// newHandler builds the router with the API and debug routes behind the
// middleware chain.
func newHandler(api *restapi.RestAPI) http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	webUI := &webui.WebUI{Application: api.Application}
	webUI.SetWebUIRoutes(router)

	return api.WithMiddleware(router)
}

func main() {
	appconf.LoadDotEnv(slog.Default(), ".env")

	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, logging.ParseLevel(cfg.logLevel))
	slog.SetDefault(logger)

	application, err := app.New(cfg.app, cfg.rates,
		prefsdb.NewConfig(cfg.dbPath, cfg.app.Env, cfg.app.Verbose), nil, logger)
	if err != nil {
		logging.LogError(logger, "failed to initialize application", err)
		os.Exit(1)
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.app.Port),
		Handler:      newHandler(api),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	application.RatesManager.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.app.Env.String())
		serverErr <- srv.ListenAndServe()
	}()

	exitCode := 0
	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logging.LogError(logger, "server stopped", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.LogError(logger, "graceful shutdown failed", err)
			exitCode = 1
		}
		cancel()
	}
	stop()

	api.Shutdown()
	if err := application.Close(); err != nil {
		logging.LogError(logger, "failed to close application", err)
		exitCode = 1
	}
	os.Exit(exitCode)
}
