package engine

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the longest numeric prefix a user may type,
// e.g. "12.5kg" yields "12.5".
var leadingNumber = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseInput reads a user-typed number. Leading whitespace is skipped and
// trailing garbage after a numeric prefix is ignored; ok is false when the
// input has no numeric prefix at all.
func ParseInput(input string) (value float64, ok bool) {
	s := strings.TrimLeft(input, " \t\n\r\v\f")
	match := leadingNumber.FindString(s)
	if match == "" {
		return math.NaN(), false
	}

	switch strings.TrimLeft(match, "+-") {
	case "Infinity":
		if strings.HasPrefix(match, "-") {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Exponent overflow still yields ±Inf with a range error.
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return math.NaN(), false
	}
	return v, true
}

// QuickInput is the value used for the quick conversion grid: the parsed
// input, or 1 when the input is empty, invalid or zero.
func QuickInput(input string) float64 {
	v, ok := ParseInput(input)
	if !ok || v == 0 {
		return 1
	}
	return v
}
