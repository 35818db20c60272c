// Package engine implements the pure conversion rules for every catalog
// category: linear conversion through a base unit, affine conversion through
// Celsius and rate-based conversion with an exchange rate table.
package engine

import (
	"errors"
	"fmt"
	"math"

	"unitconv.dev/internal/catalog"
	"unitconv.dev/internal/rates"
)

var (
	// ErrNoResult is returned for input that is not a number.
	ErrNoResult = errors.New("no result for non-numeric input")
	// ErrNotReady is returned for rate-based conversions while no rate table is loaded.
	ErrNotReady = errors.New("exchange rates not loaded")
	// ErrRateUnavailable is returned when a loaded table lacks one of the currencies.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	// ErrUnknownUnit is returned when a unit id does not belong to the category.
	ErrUnknownUnit = errors.New("unknown unit")
)

// Convert converts value from unit fromID to unit toID within cat. table is
// only consulted for rate-based categories and may be nil.
func Convert(cat catalog.Category, value float64, fromID, toID string, table *rates.Table) (float64, error) {
	if math.IsNaN(value) {
		return 0, ErrNoResult
	}

	from, ok := cat.Unit(fromID)
	if !ok {
		return 0, fmt.Errorf("%w %q in category %q", ErrUnknownUnit, fromID, cat.ID)
	}
	to, ok := cat.Unit(toID)
	if !ok {
		return 0, fmt.Errorf("%w %q in category %q", ErrUnknownUnit, toID, cat.ID)
	}

	if from.ID == to.ID {
		return value, nil
	}

	switch cat.Kind {
	case catalog.Linear:
		return value * from.ToBase / to.ToBase, nil
	case catalog.Affine:
		celsius, err := toCelsius(value, from.ID)
		if err != nil {
			return 0, err
		}
		return fromCelsius(celsius, to.ID)
	case catalog.RateBased:
		return convertWithRates(value, from.ID, to.ID, table)
	default:
		return 0, fmt.Errorf("category %q has unsupported conversion kind %s", cat.ID, cat.Kind)
	}
}

func toCelsius(value float64, unit string) (float64, error) {
	switch unit {
	case "c":
		return value, nil
	case "f":
		return (value - 32) * 5 / 9, nil
	case "k":
		return value - 273.15, nil
	default:
		return 0, fmt.Errorf("%w %q: no temperature transform", ErrUnknownUnit, unit)
	}
}

func fromCelsius(celsius float64, unit string) (float64, error) {
	switch unit {
	case "c":
		return celsius, nil
	case "f":
		return celsius*9/5 + 32, nil
	case "k":
		return celsius + 273.15, nil
	default:
		return 0, fmt.Errorf("%w %q: no temperature transform", ErrUnknownUnit, unit)
	}
}

func convertWithRates(value float64, from, to string, table *rates.Table) (float64, error) {
	if table == nil {
		return 0, ErrNotReady
	}

	fromRate, ok := table.Rate(from)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrRateUnavailable, from)
	}
	toRate, ok := table.Rate(to)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrRateUnavailable, to)
	}

	return value / fromRate * toRate, nil
}
