package rates

import (
	"sort"
	"time"
)

// Table is an immutable snapshot of exchange rates relative to Base.
// Rates[code] is the number of units of code per one unit of Base.
type Table struct {
	Base      string
	Rates     map[string]float64
	FetchedAt time.Time
}

// NewTable copies rates into a new table and pins the base currency to 1.
func NewTable(base string, rates map[string]float64, fetchedAt time.Time) *Table {
	copied := make(map[string]float64, len(rates)+1)
	for code, rate := range rates {
		copied[code] = rate
	}
	copied[base] = 1

	return &Table{
		Base:      base,
		Rates:     copied,
		FetchedAt: fetchedAt,
	}
}

// Rate returns the rate for code. A nil table has no rates.
func (t *Table) Rate(code string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	rate, ok := t.Rates[code]
	return rate, ok
}

// CrossRate returns how many units of to one unit of from buys.
func (t *Table) CrossRate(from, to string) (float64, bool) {
	fromRate, ok := t.Rate(from)
	if !ok {
		return 0, false
	}
	toRate, ok := t.Rate(to)
	if !ok {
		return 0, false
	}
	return toRate / fromRate, true
}

// Codes returns the currency codes in the table, sorted.
func (t *Table) Codes() []string {
	if t == nil {
		return nil
	}
	codes := make([]string, 0, len(t.Rates))
	for code := range t.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
