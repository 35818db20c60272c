package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"unitconv.dev/internal/catalog"
	"unitconv.dev/internal/converter"
	"unitconv.dev/internal/rates"
	"unitconv.dev/prefsdb"
)

func mustCategory(t *testing.T, id string) catalog.Category {
	t.Helper()
	cat, ok := catalog.Lookup(id)
	require.True(t, ok, "category %s", id)
	return cat
}

func TestNewEmptyReferences(t *testing.T) {
	refs := NewEmptyReferences()
	require.NotNil(t, refs.Units)

	jsonData, err := json.Marshal(refs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"units":[]}`, string(jsonData))
}

func TestNewUnitReferences(t *testing.T) {
	refs := NewUnitReferences(mustCategory(t, "length"), "km", "m", "km", "furlong")

	require.Len(t, refs.Units, 2)
	assert.Equal(t, UnitReference{
		ID: "km", Category: "length", Name: "Kilometers", Symbol: "km", Label: "Kilometers (km)",
	}, refs.Units[0])
	assert.Equal(t, "m", refs.Units[1].ID)
}

func TestNewCategoryModel(t *testing.T) {
	t.Run("linear categories expose factors", func(t *testing.T) {
		model := NewCategoryModel(mustCategory(t, "weight"))

		assert.Equal(t, "weight", model.ID)
		assert.Equal(t, "linear", model.Kind)
		assert.Equal(t, "kg", model.DefaultFrom)
		assert.Equal(t, "g", model.DefaultTo)
		require.Len(t, model.Units, 6)
		assert.Equal(t, 0.001, model.Units[1].ToBase)
	})

	t.Run("currency omits factors", func(t *testing.T) {
		model := NewCategoryModel(mustCategory(t, "currency"))

		assert.Equal(t, "rate", model.Kind)
		for _, unit := range model.Units {
			assert.Zero(t, unit.ToBase, unit.ID)
		}
	})
}

func TestNewConversionModel(t *testing.T) {
	session := &converter.Session{Category: mustCategory(t, "length"), From: "km", To: "m", Input: "1"}
	result := converter.Result{State: converter.StateOK, Display: "1000", Value: 1000}
	grid := []converter.QuickItem{{Unit: catalog.Unit{ID: "m", Symbol: "m"}, Label: "m", Value: 1000, Display: "1000"}}

	model := NewConversionModel(session, result, grid, converter.RateInfo{})

	assert.Equal(t, "ok", model.State)
	require.NotNil(t, model.Value)
	assert.Equal(t, 1000.0, *model.Value)
	assert.Nil(t, model.RateInfo)
	assert.Equal(t, []QuickItemModel{{Unit: "m", Label: "m", Value: 1000, Display: "1000"}}, model.QuickGrid)

	t.Run("pending results carry no value", func(t *testing.T) {
		pending := converter.Result{State: converter.StatePending, Display: converter.PendingText}
		info := converter.RateInfo{Visible: true, Text: rates.LoadingText}

		model := NewConversionModel(session, pending, nil, info)
		assert.Equal(t, "pending", model.State)
		assert.Nil(t, model.Value)
		assert.NotNil(t, model.QuickGrid)
		require.NotNil(t, model.RateInfo)
		assert.Equal(t, "Loading rates...", model.RateInfo.Text)
	})
}

func TestNewRatesModel(t *testing.T) {
	t.Run("without table", func(t *testing.T) {
		model := NewRatesModel("USD", rates.Status{State: rates.StateLoading, Text: rates.LoadingText}, nil)

		assert.Equal(t, "loading", model.State)
		assert.Equal(t, "USD", model.Base)
		assert.Empty(t, model.Rates)
		assert.Zero(t, model.UpdatedAt)
	})

	t.Run("with table", func(t *testing.T) {
		fetched := time.UnixMilli(1760000000000)
		table := rates.NewTable("EUR", map[string]float64{"USD": 1.08}, fetched)
		status := rates.Status{State: rates.StateReady, Text: "Rates for 2 currencies", LastError: assert.AnError}

		model := NewRatesModel("USD", status, table)
		assert.Equal(t, "EUR", model.Base)
		assert.Equal(t, int64(1760000000000), model.UpdatedAt)
		assert.Equal(t, map[string]float64{"EUR": 1, "USD": 1.08}, model.Rates)
		assert.Equal(t, assert.AnError.Error(), model.LastError)
	})
}

func TestNewPreferenceModels(t *testing.T) {
	updated := time.UnixMilli(1760000000000)
	items := NewPreferenceModels([]prefsdb.Preference{
		{Category: "length", Pair: prefsdb.UnitPair{From: "mi", To: "km"}, UpdatedAt: updated},
	})

	assert.Equal(t, []PreferenceModel{
		{Category: "length", From: "mi", To: "km", Saved: true, UpdatedAt: 1760000000000},
	}, items)
}
