package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

type fakeProvider struct {
	rates map[string]float64
	err   error
}

func (p fakeProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	return p.rates, p.err
}

var usdRates = fakeProvider{rates: map[string]float64{"EUR": 0.92, "GBP": 0.79}}

func runConvert(t *testing.T, stdin string, provider fakeProvider, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr, provider)
	return code, stdout.String(), stderr.String()
}

func TestOneShotConversion(t *testing.T) {
	code, out, _ := runConvert(t, "", usdRates, "-category", "length", "-from", "km", "-to", "m", "1.5")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "1.5 km = 1500 m", lines[0])
	assert.Contains(t, lines[1], "1500")
	assert.Contains(t, lines[2], "1.50e+5")
	assert.Contains(t, lines[4], "0.932057")
}

func TestOneShotDefaults(t *testing.T) {
	code, out, _ := runConvert(t, "", usdRates, "-category", "temp", "100")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "100 °C = 212 °F\n"))
}

func TestOneShotNoResult(t *testing.T) {
	code, out, _ := runConvert(t, "", usdRates, "abc")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "no result\n"))
}

func TestOneShotCurrencyLoadsRatesFirst(t *testing.T) {
	code, out, _ := runConvert(t, "", usdRates, "-category", "currency", "100")
	require.Equal(t, 0, code)

	assert.Contains(t, out, "100 $ = 92 €")
	assert.Contains(t, out, "1 USD = 0.9200 EUR (Updated: ")
}

func TestOneShotCurrencyFetchFailure(t *testing.T) {
	code, _, stderr := runConvert(t, "", fakeProvider{err: errors.New("offline")}, "-category", "currency", "100")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "offline")
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"missing value", nil, "expected exactly one value"},
		{"unknown category", []string{"-category", "speed", "1"}, `unknown category "speed"`},
		{"unit outside category", []string{"-from", "kg", "1"}, `unknown unit "kg" in category "length"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runConvert(t, "", usdRates, tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestInteractiveSession(t *testing.T) {
	input := strings.Join([]string{
		"cat temp",
		"100",
		"swap",
		"from k",
		"to x",
		"bogus",
		"cat nope",
		"",
		"quit",
		"200",
	}, "\n")

	code, out, _ := runConvert(t, input, usdRates, "-i")
	require.Equal(t, 0, code)

	assert.Contains(t, out, "Length: km -> m")
	assert.Contains(t, out, "Temperature: c -> f")
	assert.Contains(t, out, "100 °C = 212 °F")
	assert.Contains(t, out, "212 °F = 100 °C")
	assert.Contains(t, out, "k -> c")
	assert.Contains(t, out, `unknown unit "x" in category "temp"`)
	assert.Contains(t, out, "no result")
	assert.Contains(t, out, `unknown category: "nope"`)
	assert.NotContains(t, out, "200", "input after quit is ignored")
}

func TestInteractiveRates(t *testing.T) {
	code, out, _ := runConvert(t, "cat currency\nrates\n10\n", usdRates, "-i")
	require.Equal(t, 0, code)

	assert.Contains(t, out, "Rates for 3 currencies")
	assert.Contains(t, out, "10 $ = 9.2 €")
}

func TestPreferencesPersistAcrossRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prefs.db")

	code, _, _ := runConvert(t, "", usdRates, "-db-path", dbPath, "-category", "weight", "-from", "lb", "-to", "oz", "1")
	require.Equal(t, 0, code)

	code, out, _ := runConvert(t, "", usdRates, "-db-path", dbPath, "-category", "weight", "2")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "2 lb = "), "saved pair should be applied, got %q", out)
}
