package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
	"unitconv.dev/internal/app"
	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/models"
	"unitconv.dev/internal/rates"
	"unitconv.dev/prefsdb"
)

// testProvider serves fixed rates. When release is set, fetches block until
// it is closed.
type testProvider struct {
	mu      sync.Mutex
	rates   map[string]float64
	err     error
	release chan struct{}
}

func (p *testProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rates, p.err
}

func newTestProvider() *testProvider {
	return &testProvider{rates: map[string]float64{"EUR": 0.92, "GBP": 0.79, "JPY": 150}}
}

// createTestApi creates a RestAPI backed by an in-memory preference store and
// the given rate provider.
func createTestApi(t *testing.T, provider rates.Provider) *RestAPI {
	t.Helper()

	application, err := app.New(
		appconf.Config{
			Env:     appconf.EnvFlagToEnvironment("test"),
			ApiKeys: []string{"TEST"},
		},
		rates.Config{BaseCurrency: "USD"},
		prefsdb.NewConfig(":memory:", appconf.Test, false),
		provider,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)

	api := NewRestAPI(application)
	t.Cleanup(func() {
		api.Shutdown()
		_ = application.Close()
	})
	return api
}

func (api *RestAPI) testServer(t *testing.T) *httptest.Server {
	t.Helper()

	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(api.WithMiddleware(router))
	t.Cleanup(server.Close)
	return server
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t, newTestProvider())
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	return requestApiEndpoint(t, api, http.MethodGet, endpoint, "")
}

func requestApiEndpoint(t *testing.T, api *RestAPI, method, endpoint, body string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := api.testServer(t)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+endpoint, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

func responseData(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response data should be an object, got %T", model.Data)
	return data
}

func responseEntry(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	entry, ok := responseData(t, model)["entry"].(map[string]interface{})
	require.True(t, ok, "response should carry an entry")
	return entry
}

func responseList(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	list, ok := responseData(t, model)["list"].([]interface{})
	require.True(t, ok, "response should carry a list")
	return list
}

func referencedUnits(t *testing.T, model models.ResponseModel) []string {
	t.Helper()
	refs, ok := responseData(t, model)["references"].(map[string]interface{})
	require.True(t, ok)
	units, ok := refs["units"].([]interface{})
	require.True(t, ok)

	ids := make([]string, 0, len(units))
	for _, unit := range units {
		ids = append(ids, unit.(map[string]interface{})["id"].(string))
	}
	return ids
}
