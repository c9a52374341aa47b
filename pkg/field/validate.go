package field

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/coachpo/xnumber/errs"
	"github.com/coachpo/xnumber/pkg/numeric"
)

var (
	integerPattern = regexp.MustCompile(`^[-+]?([1-9]\d*|0)$`)
	// Integers, or fractions without trailing zeros: 0, 10, .1, 0.01, 10.01.
	decimalPattern = regexp.MustCompile(`^[-+]?(((([(0)]?\.)|([1-9]\d*\.))\d*[1-9])|([1-9]\d*|0))$`)
)

// Element is the number input a value is submitted through. Min, Max and
// Step are decimal strings; empty means unset and a step of "any" disables
// step checking.
type Element struct {
	Title string
	Min   string
	Max   string
	Step  string
}

// ValidateElement checks a submitted value against the element bounds and
// step. Empty values pass. A non-numeric value fails alone; otherwise every
// failed check is reported, joined.
func ValidateElement(el Element, value string) error {
	if value == "" {
		return nil
	}
	name := el.Title
	if !numeric.IsNumeric(value) {
		return errs.New(name, errs.CodeNotNumeric,
			errs.WithMessage(fmt.Sprintf("%s must be a number.", name)),
			errs.WithValue(value))
	}
	v, _ := numeric.Parse(value)

	var failures []error
	if lo, ok := numeric.Parse(el.Min); ok && v.LessThan(lo) {
		failures = append(failures, errs.New(name, errs.CodeBelowMin,
			errs.WithMessage(fmt.Sprintf("%s must be higher than or equal to %s.", name, el.Min)),
			errs.WithValue(value),
			errs.WithLimit(el.Min)))
	}
	if hi, ok := numeric.Parse(el.Max); ok && v.GreaterThan(hi) {
		failures = append(failures, errs.New(name, errs.CodeAboveMax,
			errs.WithMessage(fmt.Sprintf("%s must be lower than or equal to %s.", name, el.Max)),
			errs.WithValue(value),
			errs.WithLimit(el.Max)))
	}
	if step := strings.TrimSpace(el.Step); step != "" && !strings.EqualFold(step, StepAny) {
		if !numeric.ValidStepMin(value, step, el.Min) {
			failures = append(failures, errs.New(name, errs.CodeStepMismatch,
				errs.WithMessage(fmt.Sprintf("%s is not a valid number.", name)),
				errs.WithValue(value),
				errs.WithLimit(step)))
		}
	}
	return errors.Join(failures...)
}

// ValidateItem applies the item level constraints of def to a stored value:
// the textual format of the kind, the unsigned floor and the storage range.
func ValidateItem(def Definition, value string) error {
	name := def.Title()
	pattern := decimalPattern
	if def.Kind == KindInteger {
		pattern = integerPattern
	}
	if !pattern.MatchString(value) {
		return errs.New(name, errs.CodePattern,
			errs.WithMessage(fmt.Sprintf("%s is not a valid number.", name)),
			errs.WithValue(value))
	}
	v, ok := numeric.Parse(value)
	if !ok {
		return errs.New(name, errs.CodeNotNumeric, errs.WithValue(value))
	}

	var failures []error
	if def.Storage.Unsigned && v.Sign() < 0 {
		failures = append(failures, errs.New(name, errs.CodeBelowMin,
			errs.WithMessage(fmt.Sprintf("%s: The %s must be larger or equal to 0.", name, def.Kind)),
			errs.WithValue(value),
			errs.WithLimit("0")))
	}

	rng, hasRange := def.StorageRange()
	switch {
	case !hasRange:
	case def.Kind == KindInteger:
		sign := "signed"
		if def.Storage.Unsigned {
			sign = "unsigned"
		} else if lo, _ := numeric.Parse(rng.Signed.Min); v.LessThan(lo) {
			failures = append(failures, errs.New(name, errs.CodeBelowMin,
				errs.WithMessage(fmt.Sprintf("%s: the signed %s value may be no less than %s.", name, def.Storage.Size, rng.Signed.Min)),
				errs.WithValue(value),
				errs.WithLimit(rng.Signed.Min)))
		}
		max := rng.Max(def.Storage.Unsigned)
		if hi, _ := numeric.Parse(max); v.GreaterThan(hi) {
			failures = append(failures, errs.New(name, errs.CodeAboveMax,
				errs.WithMessage(fmt.Sprintf("%s: the %s %s value may be no greater than %s.", name, sign, def.Storage.Size, max)),
				errs.WithValue(value),
				errs.WithLimit(max)))
		}
	case !rng.Contains(value, false):
		failures = append(failures, errs.New(name, errs.CodeOutOfRange,
			errs.WithMessage(fmt.Sprintf("%s does not fit numeric(%d,%d).", name, def.Storage.Precision, def.Storage.Scale)),
			errs.WithValue(value),
			errs.WithLimit(rng.Signed.Max)))
	}
	return errors.Join(failures...)
}
