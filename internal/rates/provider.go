package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"unitconv.dev/internal/logging"
)

// Provider fetches the latest exchange rates relative to base.
type Provider interface {
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

var ErrMalformedPayload = errors.New("malformed rates payload")

// HTTPProvider reads rates from a Frankfurter-compatible endpoint:
// GET <url>/latest?from=<base> returning {"rates": {"EUR": 0.92, ...}}.
type HTTPProvider struct {
	baseURL string
	headers map[string]string
	client  *http.Client
}

func NewHTTPProvider(config Config) *HTTPProvider {
	config = config.withDefaults()
	return &HTTPProvider{
		baseURL: strings.TrimRight(config.URL, "/"),
		headers: config.authHeaders(),
		client:  &http.Client{Timeout: config.Timeout},
	}
}

type latestResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

func (p *HTTPProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	endpoint := fmt.Sprintf("%s/latest?from=%s", p.baseURL, url.QueryEscape(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error building rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range p.headers {
		req.Header.Add(key, value)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading rates: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body,
		logging.FromContext(ctx).With(slog.String("component", "rates_downloader")),
		"http_response_body")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rates endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if err := validateRates(payload.Rates); err != nil {
		return nil, err
	}
	return payload.Rates, nil
}

func validateRates(rates map[string]float64) error {
	if len(rates) == 0 {
		return fmt.Errorf("%w: no rates", ErrMalformedPayload)
	}
	for code, rate := range rates {
		if !(rate > 0) {
			return fmt.Errorf("%w: rate for %s is %v", ErrMalformedPayload, code, rate)
		}
	}
	return nil
}
