package field

import (
	"math"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/coachpo/xnumber/pkg/numeric"
)

const (
	sampleIntegerMax = 999
	sampleFloatSpan  = 1e6
)

// Sample generates a random storable value for def, drawn from rng and kept
// within the field min and max when they are set.
func Sample(def Definition, rng *rand.Rand) string {
	switch def.Kind {
	case KindInteger:
		return sampleInteger(def, rng)
	case KindDecimal:
		return sampleDecimal(def, rng)
	default:
		return sampleFloat(def, rng)
	}
}

func sampleInteger(def Definition, rng *rand.Rand) string {
	lo, hi := sampleBounds(def, decimal.Zero, decimal.NewFromInt(sampleIntegerMax))
	from, to := lo.Ceil().IntPart(), hi.Floor().IntPart()
	if to < from {
		return decimal.NewFromInt(from).String()
	}
	span := uint64(to - from)
	offset := rng.Uint64()
	if span < math.MaxUint64 {
		offset = rng.Uint64N(span + 1)
	}
	return decimal.NewFromInt(from + int64(offset)).String()
}

func sampleDecimal(def Definition, rng *rand.Rand) string {
	precision, scale := def.Storage.Precision, def.Storage.Scale
	if precision == 0 {
		precision = defaultPrecision
	}
	if scale == 0 && def.Storage.Precision == 0 {
		scale = defaultScale
	}

	// precision-scale digits left of the point: 10^3-1 is 999.
	limit := decimal.New(1, int32(precision-scale)).Sub(decimal.NewFromInt(1))
	lo, hi := sampleBounds(def, limit.Neg(), limit)

	digits := max(numeric.DecimalDigits(lo.String()), numeric.DecimalDigits(hi.String()))
	if digits < scale {
		digits += rng.IntN(scale - digits + 1)
	}

	span := hi.Sub(lo)
	random := lo.Add(span.Mul(decimal.NewFromFloat(rng.Float64())))
	return numeric.Truncate(random, int32(digits)).String()
}

func sampleFloat(def Definition, rng *rand.Rand) string {
	span := decimal.NewFromFloat(sampleFloatSpan)
	lo, hi := sampleBounds(def, span.Neg(), span)

	lf, hf := lo.InexactFloat64(), hi.InexactFloat64()
	random := min(max(lf+rng.Float64()*(hf-lf), lf), hf)
	return numeric.FormatFloat(random)
}

// sampleBounds picks the interval samples are drawn from. Field min and max
// win over the fallbacks; a missing side keeps the fallback width next to the
// side that is set. The result is clamped to the storage floor and ceiling
// that Resolve derives, and hi is never below lo.
func sampleBounds(def Definition, fallbackLo, fallbackHi decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	width := fallbackHi.Sub(fallbackLo)
	lo, hasLo := numeric.Parse(def.Settings.Min)
	hi, hasHi := numeric.Parse(def.Settings.Max)
	switch {
	case !hasLo && !hasHi:
		lo, hi = fallbackLo, fallbackHi
	case !hasLo:
		lo = fallbackLo
		if lo.GreaterThan(hi) {
			lo = hi.Sub(width)
		}
	case !hasHi:
		hi = fallbackHi
		if hi.LessThan(lo) {
			hi = lo.Add(width)
		}
	}

	r := Resolve(def, Settings{})
	if floor, ok := numeric.Parse(r.Floor); ok {
		lo, hi = decimal.Max(lo, floor), decimal.Max(hi, floor)
	}
	if ceil, ok := numeric.Parse(r.Ceil); ok {
		lo, hi = decimal.Min(lo, ceil), decimal.Min(hi, ceil)
	}
	if hi.LessThan(lo) {
		hi = lo
	}
	return lo, hi
}
