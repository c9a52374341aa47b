package field

import (
	"strings"

	"github.com/coachpo/xnumber/pkg/numeric"
)

// Normalize converts submitted input into its canonical decimal form so that
// very small or large numbers never travel in exponent notation. Non-numeric
// input reports false.
func Normalize(input string) (string, bool) {
	if !numeric.IsNumeric(input) {
		return "", false
	}
	return numeric.Canonical(input), true
}

// StoredForm returns value as it is written to storage: canonical, without a
// leading plus sign or trailing fractional zeros.
func StoredForm(value string) (string, bool) {
	d, ok := numeric.Parse(value)
	if !ok {
		return "", false
	}
	return d.String(), true
}

// IsEmpty reports whether value holds no number. Zero is a value.
func IsEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}
