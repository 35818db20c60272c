package app

import (
	"fmt"
	"log/slog"

	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/converter"
	"unitconv.dev/internal/rates"
	"unitconv.dev/prefsdb"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config       appconf.Config
	RatesConfig  rates.Config
	Logger       *slog.Logger
	RatesManager *rates.Manager
	Prefs        *prefsdb.Client
	Controller   *converter.Controller
}

// New wires the rate manager, the preference store and the controller.
// provider may be nil to use the HTTP provider from ratesConfig.
func New(config appconf.Config, ratesConfig rates.Config, prefsConfig prefsdb.Config, provider rates.Provider, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	prefs, err := prefsdb.NewClient(prefsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference database: %w", err)
	}

	manager := rates.NewManager(ratesConfig, provider, logger)

	return &Application{
		Config:       config,
		RatesConfig:  ratesConfig,
		Logger:       logger,
		RatesManager: manager,
		Prefs:        prefs,
		Controller:   converter.NewController(manager, prefs, logger),
	}, nil
}

// Close stops background rate refreshes and closes the preference store.
func (app *Application) Close() error {
	app.RatesManager.Shutdown()
	return app.Prefs.Close()
}
