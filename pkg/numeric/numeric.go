// Package numeric provides decimal helpers for numeric field values: canonical
// string forms, digit counting, truncation, step validation and storage ranges.
//
// Values travel as strings so that no binary floating point rounding is applied
// before a caller explicitly asks for it. Every function is pure and safe for
// concurrent use.
package numeric

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// floatDigits is the number of significant digits used when a binary float is
// rendered as text.
const floatDigits = 14

// MaxExponent bounds the exponent accepted in exponent notation. It covers
// every finite float64, including subnormals.
const MaxExponent = 324

var numericPattern = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

// IsNumeric reports whether s is a decimal number, optionally signed and
// optionally in exponent notation with an exponent of at most MaxExponent in
// magnitude. Surrounding whitespace is tolerated.
func IsNumeric(s string) bool {
	m := numericPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	if m[3] == "" {
		return true
	}
	exp, err := strconv.Atoi(m[3][1:])
	return err == nil && exp >= -MaxExponent && exp <= MaxExponent
}

// Canonical converts s into a plain decimal string without an exponent.
// Exponent-free numbers are returned trimmed but otherwise unchanged, so
// Canonical is idempotent. Non-numeric input is returned as is.
func Canonical(s string) string {
	trimmed := strings.TrimSpace(s)
	if !IsNumeric(trimmed) {
		return s
	}
	if !strings.ContainsAny(trimmed, "eE") {
		return trimmed
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return s
	}
	return d.String()
}

// FormatFloat renders f with 14 significant digits and no exponent.
func FormatFloat(f float64) string {
	return Canonical(strconv.FormatFloat(f, 'g', floatDigits, 64))
}

// Parse converts a numeric string, exponent notation included, into a decimal.
// On failure, it returns (decimal.Zero, false).
func Parse(s string) (decimal.Decimal, bool) {
	c := Canonical(s)
	if !IsNumeric(c) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(c)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// DecimalDigits counts the significant fractional digits of s. Trailing zeros
// do not count: "1.250" has two. Non-numeric input yields zero.
func DecimalDigits(s string) int {
	d, ok := Parse(s)
	if !ok {
		return 0
	}
	digits := 0
	for !d.Equal(d.Round(0)) {
		d = d.Shift(1)
		digits++
	}
	return digits
}

// Truncate keeps digits fractional digits of d, rounding toward negative
// infinity: Truncate(-1.01, 0) is -2, not -1.
func Truncate(d decimal.Decimal, digits int32) decimal.Decimal {
	return d.Shift(digits).Floor().Shift(-digits)
}

// TruncateString applies Truncate to a numeric string. Non-numeric input is
// returned unchanged.
func TruncateString(s string, digits int32) string {
	d, ok := Parse(s)
	if !ok {
		return s
	}
	return Truncate(d, digits).String()
}

// StepForScale returns the smallest step representable with scale fractional
// digits, e.g. "0.01" for a scale of 2.
func StepForScale(scale int) string {
	if scale < 0 {
		scale = 0
	}
	return decimal.New(1, -int32(scale)).String()
}
