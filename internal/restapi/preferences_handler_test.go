package restapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"unitconv.dev/prefsdb"
)

func TestPreferenceHandler(t *testing.T) {
	t.Run("falls back to the default pair", func(t *testing.T) {
		_, resp, model := serveAndRetrieveEndpoint(t, "/api/preferences/weight?key=TEST")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		entry := responseEntry(t, model)
		assert.Equal(t, "weight", entry["category"])
		assert.Equal(t, "kg", entry["from"])
		assert.Equal(t, "g", entry["to"])
		assert.Equal(t, false, entry["saved"])
		assert.Equal(t, []string{"kg", "g"}, referencedUnits(t, model))
	})

	t.Run("unknown category", func(t *testing.T) {
		_, resp, _ := serveAndRetrieveEndpoint(t, "/api/preferences/speed?key=TEST")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSavePreferenceHandler(t *testing.T) {
	t.Run("saves a valid pair", func(t *testing.T) {
		api := createTestApi(t, newTestProvider())

		resp, model := requestApiEndpoint(t, api, http.MethodPut, "/api/preferences/length?key=TEST", `{"from":"ft","to":"in"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		entry := responseEntry(t, model)
		assert.Equal(t, "ft", entry["from"])
		assert.Equal(t, "in", entry["to"])
		assert.Equal(t, true, entry["saved"])

		pair, saved, err := api.Prefs.Load(context.Background(), "length")
		require.NoError(t, err)
		assert.True(t, saved)
		assert.Equal(t, prefsdb.UnitPair{From: "ft", To: "in"}, pair)

		_, model = serveApiAndRetrieveEndpoint(t, api, "/api/preferences/length?key=TEST")
		assert.Equal(t, true, responseEntry(t, model)["saved"])
	})

	t.Run("rejects units outside the category", func(t *testing.T) {
		api := createTestApi(t, newTestProvider())

		resp, _ := requestApiEndpoint(t, api, http.MethodPut, "/api/preferences/length?key=TEST", `{"from":"kg","to":"m"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		_, saved, err := api.Prefs.Load(context.Background(), "length")
		require.NoError(t, err)
		assert.False(t, saved)
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		api := createTestApi(t, newTestProvider())

		for _, body := range []string{`{"from":`, `{"from":"km","to":"m","extra":1}`, `[]`} {
			resp, _ := requestApiEndpoint(t, api, http.MethodPut, "/api/preferences/length?key=TEST", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %s", body)
		}
	})

	t.Run("requires an api key", func(t *testing.T) {
		api := createTestApi(t, newTestProvider())

		resp, _ := requestApiEndpoint(t, api, http.MethodPut, "/api/preferences/length", `{"from":"ft","to":"in"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestDeletePreferenceHandler(t *testing.T) {
	api := createTestApi(t, newTestProvider())
	require.NoError(t, api.Prefs.Save(context.Background(), "temp", prefsdb.UnitPair{From: "k", To: "c"}))

	resp, model := requestApiEndpoint(t, api, http.MethodDelete, "/api/preferences/temp?key=TEST", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry := responseEntry(t, model)
	assert.Equal(t, "c", entry["from"])
	assert.Equal(t, "f", entry["to"])
	assert.Equal(t, false, entry["saved"])

	resp, _ = requestApiEndpoint(t, api, http.MethodDelete, "/api/preferences/temp?key=TEST", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPreferencesListHandler(t *testing.T) {
	api := createTestApi(t, newTestProvider())
	ctx := context.Background()
	require.NoError(t, api.Prefs.Save(ctx, "volume", prefsdb.UnitPair{From: "cup", To: "ml"}))
	require.NoError(t, api.Prefs.Save(ctx, "length", prefsdb.UnitPair{From: "mi", To: "km"}))

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/preferences.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := responseList(t, model)
	require.Len(t, list, 2)

	first := list[0].(map[string]interface{})
	assert.Equal(t, "length", first["category"])
	assert.Equal(t, "mi", first["from"])
	assert.Equal(t, true, first["saved"])
	assert.NotZero(t, first["updatedAt"])

	second := list[1].(map[string]interface{})
	assert.Equal(t, "volume", second["category"])
}
