package webui

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"unitconv.dev/internal/app"
	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/rates"
	"unitconv.dev/prefsdb"
)

type staticProvider map[string]float64

func (p staticProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	return p, nil
}

func newTestRouter(t *testing.T) (*httprouter.Router, *app.Application) {
	t.Helper()

	application, err := app.New(
		appconf.Config{Env: appconf.Test},
		rates.Config{BaseCurrency: "USD"},
		prefsdb.NewConfig(":memory:", appconf.Test, false),
		staticProvider{"EUR": 0.92},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	router := httprouter.New()
	webUI := &WebUI{Application: application}
	webUI.SetWebUIRoutes(router)
	return router, application
}

func getDebugPage(t *testing.T, router http.Handler, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/debug/"+query, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDebugIndexHandler(t *testing.T) {
	router, application := newTestRouter(t)

	t.Run("lists data types by default", func(t *testing.T) {
		rec := getDebugPage(t, router, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "<title>Choose a data type</title>")
		assert.Contains(t, rec.Body.String(), "categories, rates, rates_status, preferences, tables")
	})

	t.Run("dumps the catalog", func(t *testing.T) {
		rec := getDebugPage(t, router, "?dataType=categories")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Catalog - Categories")
		assert.Contains(t, rec.Body.String(), "Kilometers")
	})

	t.Run("dumps the rate table once loaded", func(t *testing.T) {
		rec := getDebugPage(t, router, "?dataType=rates")
		assert.Contains(t, rec.Body.String(), "&lt;nil&gt;")

		require.NoError(t, application.RatesManager.Refresh(context.Background()))
		rec = getDebugPage(t, router, "?dataType=rates")
		assert.Contains(t, rec.Body.String(), "EUR")

		rec = getDebugPage(t, router, "?dataType=rates_status")
		assert.Contains(t, rec.Body.String(), "Rates for 2 currencies")
	})

	t.Run("dumps saved preferences", func(t *testing.T) {
		require.NoError(t, application.Prefs.Save(context.Background(), "volume", prefsdb.UnitPair{From: "cup", To: "ml"}))

		rec := getDebugPage(t, router, "?dataType=preferences")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "volume")
		assert.Contains(t, rec.Body.String(), "cup")

		rec = getDebugPage(t, router, "?dataType=tables")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Preferences - Table Counts")
		assert.Contains(t, rec.Body.String(), "(int) 1")
	})
}
