package catalog

import (
	"errors"
	"fmt"
)

// Kind selects the conversion strategy of a category.
type Kind int

const (
	// Linear categories convert through a base unit using ToBase factors.
	Linear Kind = iota
	// Affine categories (temperature) convert through Celsius.
	Affine
	// RateBased categories (currency) convert with a live exchange rate table.
	RateBased
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Affine:
		return "affine"
	case RateBased:
		return "rate"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Unit is a single selectable unit. ToBase is only meaningful for Linear
// categories and tells how many base units one unit equals.
type Unit struct {
	ID     string
	Name   string
	Symbol string
	ToBase float64
}

// Label is the text shown in unit pickers, e.g. "Kilometers (km)".
func (u Unit) Label() string {
	return fmt.Sprintf("%s (%s)", u.Name, u.Symbol)
}

type Category struct {
	ID    string
	Name  string
	Kind  Kind
	Units []Unit
}

// Unit finds a unit by id within the category.
func (c Category) Unit(id string) (Unit, bool) {
	for _, u := range c.Units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

// HasUnit reports whether id names a unit of this category.
func (c Category) HasUnit(id string) bool {
	_, ok := c.Unit(id)
	return ok
}

// DefaultPair returns the first two units, the initial from/to selection.
func (c Category) DefaultPair() (from, to string) {
	if len(c.Units) < 2 {
		return "", ""
	}
	return c.Units[0].ID, c.Units[1].ID
}

const DefaultCategory = "length"

var categories = []Category{
	{
		ID:   "length",
		Name: "Length",
		Kind: Linear,
		Units: []Unit{
			{ID: "km", Name: "Kilometers", Symbol: "km", ToBase: 1000},
			{ID: "m", Name: "Meters", Symbol: "m", ToBase: 1},
			{ID: "cm", Name: "Centimeters", Symbol: "cm", ToBase: 0.01},
			{ID: "mm", Name: "Millimeters", Symbol: "mm", ToBase: 0.001},
			{ID: "mi", Name: "Miles", Symbol: "mi", ToBase: 1609.344},
			{ID: "yd", Name: "Yards", Symbol: "yd", ToBase: 0.9144},
			{ID: "ft", Name: "Feet", Symbol: "ft", ToBase: 0.3048},
			{ID: "in", Name: "Inches", Symbol: "in", ToBase: 0.0254},
		},
	},
	{
		ID:   "weight",
		Name: "Weight",
		Kind: Linear,
		Units: []Unit{
			{ID: "kg", Name: "Kilograms", Symbol: "kg", ToBase: 1},
			{ID: "g", Name: "Grams", Symbol: "g", ToBase: 0.001},
			{ID: "mg", Name: "Milligrams", Symbol: "mg", ToBase: 0.000001},
			{ID: "lb", Name: "Pounds", Symbol: "lb", ToBase: 0.453592},
			{ID: "oz", Name: "Ounces", Symbol: "oz", ToBase: 0.0283495},
			{ID: "ton", Name: "Metric Tons", Symbol: "t", ToBase: 1000},
		},
	},
	{
		ID:   "temp",
		Name: "Temperature",
		Kind: Affine,
		Units: []Unit{
			{ID: "c", Name: "Celsius", Symbol: "°C"},
			{ID: "f", Name: "Fahrenheit", Symbol: "°F"},
			{ID: "k", Name: "Kelvin", Symbol: "K"},
		},
	},
	{
		ID:   "volume",
		Name: "Volume",
		Kind: Linear,
		Units: []Unit{
			{ID: "l", Name: "Liters", Symbol: "L", ToBase: 1},
			{ID: "ml", Name: "Milliliters", Symbol: "mL", ToBase: 0.001},
			{ID: "gal", Name: "Gallons (US)", Symbol: "gal", ToBase: 3.78541},
			{ID: "qt", Name: "Quarts (US)", Symbol: "qt", ToBase: 0.946353},
			{ID: "pt", Name: "Pints (US)", Symbol: "pt", ToBase: 0.473176},
			{ID: "cup", Name: "Cups (US)", Symbol: "cup", ToBase: 0.236588},
			{ID: "floz", Name: "Fluid Ounces", Symbol: "fl oz", ToBase: 0.0295735},
		},
	},
	{
		ID:   "currency",
		Name: "Currency",
		Kind: RateBased,
		Units: []Unit{
			{ID: "USD", Name: "US Dollar", Symbol: "$"},
			{ID: "EUR", Name: "Euro", Symbol: "€"},
			{ID: "GBP", Name: "British Pound", Symbol: "£"},
			{ID: "JPY", Name: "Japanese Yen", Symbol: "¥"},
			{ID: "KRW", Name: "Korean Won", Symbol: "₩"},
			{ID: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
			{ID: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
			{ID: "AUD", Name: "Australian Dollar", Symbol: "A$"},
			{ID: "CHF", Name: "Swiss Franc", Symbol: "Fr"},
			{ID: "MXN", Name: "Mexican Peso", Symbol: "$"},
		},
	},
}

// All returns the categories in display order. The slice is shared and must
// not be modified.
func All() []Category {
	return categories
}

// Lookup finds a category by id.
func Lookup(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// IDs returns the category ids in display order.
func IDs() []string {
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}

// Validate checks the structural invariants of a category: at least two
// units, unique unit ids and strictly positive factors for linear units.
func Validate(c Category) error {
	var errs []error
	if len(c.Units) < 2 {
		errs = append(errs, fmt.Errorf("category %q has %d units, need at least 2", c.ID, len(c.Units)))
	}

	seen := make(map[string]bool, len(c.Units))
	for _, u := range c.Units {
		if seen[u.ID] {
			errs = append(errs, fmt.Errorf("category %q: duplicate unit id %q", c.ID, u.ID))
		}
		seen[u.ID] = true

		if c.Kind == Linear && !(u.ToBase > 0) {
			errs = append(errs, fmt.Errorf("category %q: unit %q has non-positive factor %v", c.ID, u.ID, u.ToBase))
		}
	}
	return errors.Join(errs...)
}
