package rates

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"unitconv.dev/internal/logging"
)

// State describes the lifecycle of the rate table.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

const (
	LoadingText = "Loading rates..."
	FailedText  = "Failed to load rates"
)

// Status is a snapshot of the manager's state for display.
type Status struct {
	State     State
	Text      string
	UpdatedAt time.Time
	LastError error
}

// Manager owns the exchange rate table. The table is absent until the first
// successful fetch and is replaced wholesale on every later success.
type Manager struct {
	config   Config
	provider Provider
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.RWMutex
	table   *Table
	state   State
	lastErr error

	fetches      singleflight.Group
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewManager creates a Manager. Nothing is fetched until EnsureLoaded,
// Refresh or Start is called.
func NewManager(config Config, provider Provider, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	config = config.withDefaults()
	if provider == nil {
		provider = NewHTTPProvider(config)
	}

	return &Manager{
		config:       config,
		provider:     provider,
		logger:       logger.With(slog.String("component", "rates_manager")),
		now:          time.Now,
		state:        StateIdle,
		shutdownChan: make(chan struct{}),
	}
}

func (manager *Manager) BaseCurrency() string {
	return manager.config.BaseCurrency
}

// Table returns the current rate table, or nil while no fetch has succeeded.
func (manager *Manager) Table() *Table {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.table
}

func (manager *Manager) Status() Status {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	status := Status{State: manager.state, LastError: manager.lastErr}
	if manager.table != nil {
		status.UpdatedAt = manager.table.FetchedAt
	}

	switch manager.state {
	case StateLoading:
		status.Text = LoadingText
	case StateFailed:
		status.Text = FailedText
	case StateReady:
		status.Text = fmt.Sprintf("Rates for %d currencies", len(manager.table.Rates))
	}
	return status
}

// Refresh fetches the rates synchronously. Concurrent callers share a single
// in-flight request. On failure the current table, if any, is kept.
//
// The shared request is bounded by the configured timeout only; a caller whose
// ctx ends stops waiting but does not cancel the fetch for the others.
func (manager *Manager) Refresh(ctx context.Context) error {
	ch := manager.fetches.DoChan("rates", func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), manager.config.Timeout)
		defer cancel()
		return nil, manager.fetch(fetchCtx)
	})

	select {
	case result := <-ch:
		return result.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EnsureLoaded starts a background fetch when no table is loaded and no fetch
// is in flight. It never blocks on the network.
func (manager *Manager) EnsureLoaded(ctx context.Context) {
	manager.mu.Lock()
	if manager.table != nil || manager.state == StateLoading {
		manager.mu.Unlock()
		return
	}
	manager.state = StateLoading
	manager.mu.Unlock()

	logger := logging.FromContext(ctx)
	manager.wg.Add(1)
	go func() {
		defer manager.wg.Done()

		fetchCtx, cancel := context.WithTimeout(context.Background(), manager.config.Timeout)
		defer cancel()
		fetchCtx = logging.WithLogger(fetchCtx, logger)

		_ = manager.Refresh(fetchCtx)
	}()
}

func (manager *Manager) fetch(ctx context.Context) error {
	manager.setState(StateLoading, nil)

	start := manager.now()
	fetched, err := manager.provider.FetchRates(ctx, manager.config.BaseCurrency)
	if err != nil {
		logging.LogError(manager.logger, "Failed to fetch exchange rates", err,
			slog.String("url", manager.config.URL),
			slog.String("base", manager.config.BaseCurrency))
		manager.setState(StateFailed, err)
		return fmt.Errorf("error fetching exchange rates: %w", err)
	}

	table := NewTable(manager.config.BaseCurrency, fetched, manager.now())

	manager.mu.Lock()
	manager.table = table
	manager.state = StateReady
	manager.lastErr = nil
	manager.mu.Unlock()

	logging.LogOperation(manager.logger, "exchange_rates_updated",
		slog.String("base", table.Base),
		slog.Int("currencies", len(table.Rates)),
		slog.Duration("duration", manager.now().Sub(start)))
	return nil
}

func (manager *Manager) setState(state State, err error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.lastErr = err
	// A failed refresh keeps serving the previous table.
	if state == StateFailed && manager.table != nil {
		manager.state = StateReady
		return
	}
	manager.state = state
}

// Start launches periodic refreshes when a refresh interval is configured.
func (manager *Manager) Start() {
	if !manager.config.periodicRefreshEnabled() {
		return
	}
	manager.wg.Add(1)
	go manager.refreshPeriodically()
}

func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), manager.config.Timeout)
			ctx = logging.WithLogger(ctx, manager.logger)

			logging.LogOperation(manager.logger, "refreshing_exchange_rates")
			_ = manager.Refresh(ctx)
			cancel()
		case <-manager.shutdownChan:
			logging.LogOperation(manager.logger, "shutting_down_rate_refresh")
			return
		}
	}
}

// Shutdown stops background refreshes and waits for in-flight fetches.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
	})
}
