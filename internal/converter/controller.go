package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"unitconv.dev/internal/catalog"
	"unitconv.dev/internal/engine"
	"unitconv.dev/internal/format"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/rates"
	"unitconv.dev/prefsdb"
)

var ErrUnknownCategory = errors.New("unknown category")

// PendingText is displayed while a currency conversion waits for rates.
const PendingText = "Loading..."

// RateSource is the part of rates.Manager the controller depends on.
type RateSource interface {
	Table() *rates.Table
	Status() rates.Status
	EnsureLoaded(ctx context.Context)
}

// PreferenceStore persists the last unit pair per category.
type PreferenceStore interface {
	Load(ctx context.Context, category string) (prefsdb.UnitPair, bool, error)
	Save(ctx context.Context, category string, pair prefsdb.UnitPair) error
}

type State int

const (
	// StateEmpty means there is nothing to show, e.g. the input is not a number.
	StateEmpty State = iota
	// StatePending means the result depends on rates that are still loading.
	StatePending
	StateOK
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePending:
		return "pending"
	case StateOK:
		return "ok"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result is the outcome of a conversion as it should be displayed.
type Result struct {
	State   State
	Display string
	Value   float64
}

type QuickItem struct {
	Unit    catalog.Unit
	Label   string
	Value   float64
	Display string
}

// RateInfo is the exchange rate line shown under currency conversions.
type RateInfo struct {
	Visible bool
	Text    string
	Updated string
}

// Controller applies user actions to sessions. It is safe for concurrent use
// as long as each session is used by one caller at a time.
type Controller struct {
	rates  RateSource
	prefs  PreferenceStore
	logger *slog.Logger
}

// NewController creates a Controller. prefs may be nil, in which case unit
// selections are not persisted.
func NewController(rateSource RateSource, prefs PreferenceStore, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		rates:  rateSource,
		prefs:  prefs,
		logger: logger.With(slog.String("component", "converter")),
	}
}

// Activate opens categoryID with its default units, then the saved pair if
// one exists. Activating the currency category starts loading rates.
func (c *Controller) Activate(ctx context.Context, categoryID string) (*Session, error) {
	cat, ok := catalog.Lookup(categoryID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)
	}

	session := newSession(cat)

	if c.prefs != nil {
		pair, found, err := c.prefs.Load(ctx, cat.ID)
		if err != nil {
			logging.LogError(c.logger, "Failed to load unit preference", err,
				slog.String("category", cat.ID))
		} else if found && !session.applyPair(pair) {
			c.logger.Debug("ignoring stale unit preference",
				slog.String("category", cat.ID),
				slog.String("from", pair.From),
				slog.String("to", pair.To))
		}
	}

	if cat.Kind == catalog.RateBased && c.rates != nil {
		c.rates.EnsureLoaded(ctx)
	}

	return session, nil
}

// SetUnits changes the selected units. Both ids must belong to the session's
// category.
func (c *Controller) SetUnits(s *Session, from, to string) error {
	return s.setUnits(from, to)
}

// Convert parses input and converts it with the session's units. Successful
// conversions save the unit pair.
func (c *Controller) Convert(ctx context.Context, s *Session, input string) Result {
	s.Input = input

	value, ok := engine.ParseInput(input)
	if !ok {
		return Result{State: StateEmpty}
	}

	converted, err := engine.Convert(s.Category, value, s.From, s.To, c.table())
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrNotReady):
		return Result{State: StatePending, Display: PendingText}
	case errors.Is(err, engine.ErrNoResult), errors.Is(err, engine.ErrRateUnavailable):
		return Result{State: StateEmpty}
	default:
		logging.LogError(c.logger, "Conversion failed", err,
			slog.String("category", s.Category.ID),
			slog.String("from", s.From),
			slog.String("to", s.To))
		return Result{State: StateEmpty}
	}

	c.savePair(ctx, s)

	return Result{State: StateOK, Display: format.Result(converted), Value: converted}
}

// Swap exchanges the units and converts the previously displayed result.
func (c *Controller) Swap(ctx context.Context, s *Session, displayed string) Result {
	s.swap()
	return c.Convert(ctx, s, displayed)
}

// QuickGrid converts input (or 1 when it is not a usable number) into the
// first few other units of the category.
func (c *Controller) QuickGrid(s *Session, input string) []QuickItem {
	value := engine.QuickInput(input)

	conversions, err := engine.Quick(s.Category, value, s.From, c.table(), engine.QuickCount)
	if err != nil {
		logging.LogError(c.logger, "Quick conversions failed", err,
			slog.String("category", s.Category.ID),
			slog.String("from", s.From))
		return nil
	}

	items := make([]QuickItem, 0, len(conversions))
	for _, conversion := range conversions {
		items = append(items, QuickItem{
			Unit:    conversion.Unit,
			Label:   conversion.Unit.Symbol,
			Value:   conversion.Value,
			Display: format.Quick(conversion.Value),
		})
	}
	return items
}

// RateInfo describes the exchange rate between the session's units. It is
// only visible for rate-based categories.
func (c *Controller) RateInfo(s *Session) RateInfo {
	if s.Category.Kind != catalog.RateBased || c.rates == nil {
		return RateInfo{}
	}

	table := c.rates.Table()
	if table != nil {
		if rate, ok := table.CrossRate(s.From, s.To); ok {
			return RateInfo{
				Visible: true,
				Text:    fmt.Sprintf("1 %s = %s %s", s.From, format.Rate(rate), s.To),
				Updated: "Updated: " + table.FetchedAt.Local().Format("15:04:05"),
			}
		}
	}

	return RateInfo{Visible: true, Text: c.rates.Status().Text}
}

func (c *Controller) table() *rates.Table {
	if c.rates == nil {
		return nil
	}
	return c.rates.Table()
}

func (c *Controller) savePair(ctx context.Context, s *Session) {
	if c.prefs == nil {
		return
	}
	if err := c.prefs.Save(ctx, s.Category.ID, s.Pair()); err != nil {
		logging.LogError(c.logger, "Failed to save unit preference", err,
			slog.String("category", s.Category.ID))
	}
}
