// Package format renders conversion results for display. Very large and very
// small magnitudes use exponential notation; everything else is rounded to a
// fixed number of significant digits and printed in its shortest form.
package format

import (
	"math"
	"strconv"
	"strings"
)

const (
	resultLargeThreshold = 1_000_000
	resultSmallThreshold = 0.0001
	resultFractionDigits = 4
	resultSignificant    = 8

	quickLargeThreshold = 10_000
	quickFractionDigits = 2
	quickSignificant    = 6

	rateFractionDigits = 4
)

// Result formats the value shown in the main result field.
func Result(x float64) string {
	abs := math.Abs(x)
	if abs >= resultLargeThreshold || (abs < resultSmallThreshold && x != 0) {
		return Exponential(x, resultFractionDigits)
	}
	return Precision(x, resultSignificant)
}

// Quick formats a value in the quick conversion grid.
func Quick(x float64) string {
	if math.Abs(x) >= quickLargeThreshold {
		return Exponential(x, quickFractionDigits)
	}
	return Precision(x, quickSignificant)
}

// Rate formats an exchange rate with four fraction digits.
func Rate(x float64) string {
	return Fixed(x, rateFractionDigits)
}

// Exponential writes x in exponential notation with digits fraction digits in
// the mantissa and an unpadded signed exponent, e.g. "1.2346e+6". Exact ties
// round away from zero.
func Exponential(x float64, digits int) string {
	if s, special := nonFinite(x); special {
		return s
	}
	if digits < 0 {
		digits = 0
	}

	mantissa, exp := roundSignificant(math.Abs(x), digits+1)

	var b strings.Builder
	if x < 0 {
		b.WriteByte('-')
	}
	b.WriteByte(mantissa[0])
	if digits > 0 {
		b.WriteByte('.')
		b.WriteString(mantissa[1:])
	}
	b.WriteByte('e')
	if exp < 0 {
		b.WriteByte('-')
		exp = -exp
	} else {
		b.WriteByte('+')
	}
	b.WriteString(strconv.Itoa(exp))
	return b.String()
}

// Precision rounds x to sig significant digits and returns the shortest
// string that reads back as the rounded value, so 2.50000 prints as "2.5".
// Exact ties round away from zero.
func Precision(x float64, sig int) string {
	if s, special := nonFinite(x); special {
		return s
	}
	if sig < 1 {
		sig = 1
	}

	mantissa, exp := roundSignificant(math.Abs(x), sig)
	rounded, err := strconv.ParseFloat(mantissa+"e"+strconv.Itoa(exp-sig+1), 64)
	if err != nil {
		rounded = math.Abs(x)
	}
	if x < 0 {
		rounded = -rounded
	}
	return Shortest(rounded)
}

// Fixed writes x with exactly digits fraction digits. Exact ties round away
// from zero; magnitudes from 1e21 upward print in shortest form.
func Fixed(x float64, digits int) string {
	if s, special := nonFinite(x); special {
		return s
	}
	if digits < 0 {
		digits = 0
	}
	abs := math.Abs(x)
	if abs >= 1e21 {
		return Shortest(x)
	}

	exact := strconv.FormatFloat(abs, 'f', exactFractionDigits, 64)
	point := strings.IndexByte(exact, '.')
	all := exact[:point] + exact[point+1:]
	keep := point + digits

	head := []byte(all[:keep])
	if all[keep] >= '5' && roundUp(head) {
		head = append([]byte{'1'}, head...)
	}

	var b strings.Builder
	if x < 0 {
		b.WriteByte('-')
	}
	intLen := len(head) - digits
	b.Write(head[:intLen])
	if digits > 0 {
		b.WriteByte('.')
		b.Write(head[intLen:])
	}
	return b.String()
}

// exactFractionDigits covers every digit of any float64: the smallest
// subnormal has 1074 digits after the point.
const exactFractionDigits = 1100

// roundSignificant returns the first sig decimal digits of abs, rounded half
// away from zero on its exact binary value, and the decimal exponent of the
// leading digit.
func roundSignificant(abs float64, sig int) (string, int) {
	exact := strconv.FormatFloat(abs, 'e', exactFractionDigits, 64)
	idx := strings.IndexByte(exact, 'e')
	exp, _ := strconv.Atoi(exact[idx+1:])
	all := exact[:1] + exact[2:idx]

	head := []byte(all[:sig])
	if all[sig] >= '5' && roundUp(head) {
		head[0] = '1'
		exp++
	}
	return string(head), exp
}

// roundUp adds one to the last digit of digits, carrying left. It reports
// whether the carry ran off the front, leaving every digit '0'.
func roundUp(digits []byte) bool {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] != '9' {
			digits[i]++
			return false
		}
		digits[i] = '0'
	}
	return true
}

// Shortest prints the shortest representation of x that parses back to x.
// Magnitudes below 1e-6 or from 1e21 upward use exponential notation.
func Shortest(x float64) string {
	if s, special := nonFinite(x); special {
		return s
	}
	if x == 0 {
		return "0"
	}

	abs := math.Abs(x)
	if abs < 1e-6 || abs >= 1e21 {
		return trimExponent(strconv.FormatFloat(x, 'e', -1, 64))
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func nonFinite(x float64) (string, bool) {
	switch {
	case math.IsNaN(x):
		return "NaN", true
	case math.IsInf(x, 1):
		return "Infinity", true
	case math.IsInf(x, -1):
		return "-Infinity", true
	}
	return "", false
}

// trimExponent turns "1.5e-07" into "1.5e-7".
func trimExponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 || idx+2 > len(s) {
		return s
	}

	mantissa, sign, exponent := s[:idx], s[idx+1], strings.TrimLeft(s[idx+2:], "0")
	if exponent == "" {
		exponent = "0"
	}
	return mantissa + "e" + string(sign) + exponent
}
