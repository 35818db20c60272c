package engine

import (
	"errors"

	"unitconv.dev/internal/catalog"
	"unitconv.dev/internal/rates"
)

// QuickCount is the number of units shown in the quick conversion grid.
const QuickCount = 4

type QuickConversion struct {
	Unit  catalog.Unit
	Value float64
}

// Quick converts value from fromID into the first n other units of cat.
// Rate-based categories without a table yield no conversions. A currency
// missing from the table is dropped from the grid, not replaced by a later one.
func Quick(cat catalog.Category, value float64, fromID string, table *rates.Table, n int) ([]QuickConversion, error) {
	if cat.Kind == catalog.RateBased && table == nil {
		return []QuickConversion{}, nil
	}

	conversions := make([]QuickConversion, 0, n)
	picked := 0
	for _, unit := range cat.Units {
		if picked == n {
			break
		}
		if unit.ID == fromID {
			continue
		}
		picked++

		result, err := Convert(cat, value, fromID, unit.ID, table)
		if errors.Is(err, ErrRateUnavailable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, QuickConversion{Unit: unit, Value: result})
	}
	return conversions, nil
}
