package prefsdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"unitconv.dev/internal/logging"
)

var ErrInvalidPair = errors.New("invalid unit pair")

// UnitPair is the last from/to selection saved for a category.
type UnitPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (p UnitPair) valid() bool {
	return p.From != "" && p.To != ""
}

type Preference struct {
	Category  string
	Pair      UnitPair
	UpdatedAt time.Time
}

// Load returns the pair saved for category. The bool is false when nothing
// has been saved yet.
func (c *Client) Load(ctx context.Context, category string) (UnitPair, bool, error) {
	row, err := c.Queries.GetPreference(ctx, category)
	if errors.Is(err, sql.ErrNoRows) {
		return UnitPair{}, false, nil
	}
	if err != nil {
		return UnitPair{}, false, fmt.Errorf("error loading preference for %s: %w", category, err)
	}

	pair, err := decodePair(row.Value)
	if err != nil {
		return UnitPair{}, false, fmt.Errorf("error decoding preference for %s: %w", category, err)
	}
	return pair, true, nil
}

// Save stores pair for category, replacing any earlier value.
func (c *Client) Save(ctx context.Context, category string, pair UnitPair) error {
	if category == "" || !pair.valid() {
		return fmt.Errorf("%w: category=%q from=%q to=%q", ErrInvalidPair, category, pair.From, pair.To)
	}

	value, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("error encoding preference: %w", err)
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "save_preference")

	err = c.Queries.WithTx(tx).UpsertPreference(ctx, UpsertPreferenceParams{
		Category:  category,
		Value:     string(value),
		UpdatedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("error saving preference for %s: %w", category, err)
	}

	return tx.Commit()
}

// List returns every saved preference ordered by category. Rows that no
// longer decode are skipped and logged.
func (c *Client) List(ctx context.Context) ([]Preference, error) {
	rows, err := c.Queries.ListPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing preferences: %w", err)
	}

	prefs := make([]Preference, 0, len(rows))
	for _, row := range rows {
		pair, err := decodePair(row.Value)
		if err != nil {
			logging.LogError(c.logger, "Skipping unreadable preference", err,
				slog.String("category", row.Category))
			continue
		}
		prefs = append(prefs, Preference{
			Category:  row.Category,
			Pair:      pair,
			UpdatedAt: time.UnixMilli(row.UpdatedAt),
		})
	}
	return prefs, nil
}

// Delete removes the saved pair for category. It reports whether a row existed.
func (c *Client) Delete(ctx context.Context, category string) (bool, error) {
	n, err := c.Queries.DeletePreference(ctx, category)
	if err != nil {
		return false, fmt.Errorf("error deleting preference for %s: %w", category, err)
	}
	return n > 0, nil
}

func decodePair(value string) (UnitPair, error) {
	var pair UnitPair
	if err := json.Unmarshal([]byte(value), &pair); err != nil {
		return UnitPair{}, err
	}
	if !pair.valid() {
		return UnitPair{}, ErrInvalidPair
	}
	return pair, nil
}
