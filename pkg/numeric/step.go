package numeric

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	// A double carries 53 bits of mantissa.
	doubleMantissa = math.Pow(2, 53)
	// Remainders below step * 2^-24 cannot be represented by a single precision float.
	singleMantissa = math.Pow(2, 24)
)

// scaledContext performs fixed-scale decimal arithmetic for a single
// validation. Its scale is derived from the step of that validation, so no
// precision setting is shared between calls.
type scaledContext struct {
	scale int32
}

// align truncates d toward zero to the context scale.
func (c scaledContext) align(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(c.scale)
}

// sub returns a-b truncated toward zero to the context scale.
func (c scaledContext) sub(a, b decimal.Decimal) decimal.Decimal {
	return c.align(a.Sub(b))
}

// ValidStep reports whether value is a multiple of step. It returns false when
// step is not positive or either argument is not numeric; callers are expected
// to have checked that value is numeric already.
func ValidStep(value, step string) bool {
	return validStep(value, step, "", false)
}

// ValidStepMin reports whether value-min is a multiple of step. A min that is
// not numeric, such as the empty string, is treated as absent. Values lower
// than min are never valid.
func ValidStepMin(value, step, min string) bool {
	return validStep(value, step, min, IsNumeric(min))
}

func validStep(rawValue, rawStep, rawMin string, hasMin bool) bool {
	ctx := scaledContext{scale: int32(DecimalDigits(rawStep))}

	value, ok := Parse(rawValue)
	if !ok {
		return false
	}
	step, ok := Parse(rawStep)
	if !ok {
		return false
	}
	if step.Sign() <= 0 {
		return false
	}

	var floor, ceil, min decimal.Decimal
	switch {
	case hasMin:
		min, _ = Parse(rawMin)
		if min.GreaterThan(value) {
			return false
		}
		floor, ceil = min, value
	case value.GreaterThan(step):
		floor, ceil = step, value
	default:
		floor, ceil = value, step
	}

	if value.Abs().Equal(step) {
		return true
	}

	if ctx.scale == 0 && DecimalDigits(rawValue) == 0 {
		if ctx.sub(ceil, floor).Mod(step).IsZero() {
			return true
		}
	} else if remainderAligned(ctx, value, step) {
		return true
	}

	return withinFloatTolerance(value, step, min, hasMin)
}

// remainderAligned checks the floating remainder of value/step, accepting a
// remainder that lands one or two full steps away from zero once it is cut to
// the step scale (9.00101 against a step of 9.001).
func remainderAligned(ctx scaledContext, value, step decimal.Decimal) bool {
	vf := value.InexactFloat64()
	sf := step.InexactFloat64()
	remainder, ok := Parse(FormatFloat(math.Mod(vf, sf)))
	if !ok {
		return false
	}
	if remainder.IsZero() {
		return true
	}
	// Not exact subtraction: the remainder is truncated to the step scale first.
	sub := ctx.sub(ctx.align(remainder), step)
	if sub.IsZero() {
		return true
	}
	return ctx.sub(sub, step).IsZero()
}

// withinFloatTolerance is the IEEE 754 double precision check browsers use
// for number inputs.
func withinFloatTolerance(value, step, min decimal.Decimal, hasMin bool) bool {
	sf := step.InexactFloat64()
	anchor := 0.0
	if hasMin {
		anchor = min.InexactFloat64()
	}
	scaled := math.Abs(value.InexactFloat64() - anchor)

	// Dividing by step would leave a remainder too small to mean anything.
	if scaled/doubleMantissa > sf {
		return true
	}

	remainder := math.Abs(scaled - sf*math.Round(scaled/sf))
	acceptable := sf / singleMantissa
	return acceptable >= remainder || remainder >= sf-acceptable
}
