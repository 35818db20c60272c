package prefsdb

import (
	"database/sql"
	"log/slog"

	"unitconv.dev/internal/logging"
)

// Client is the main entry point for the preference store
type Client struct {
	config  Config
	DB      *sql.DB
	Queries *Queries
	logger  *slog.Logger
}

// NewClient opens the database at config.DBPath and applies the schema.
func NewClient(config Config) (*Client, error) {
	logger := slog.Default().With(slog.String("component", "prefsdb"))

	db, err := createDB(config)
	if err != nil {
		return nil, err
	}
	if config.verbose {
		logging.LogOperation(logger, "preferences_schema_ready", slog.String("path", config.DBPath))
	}

	return &Client{
		config:  config,
		DB:      db,
		Queries: New(db),
		logger:  logger,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}
