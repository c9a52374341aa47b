package numeric

import (
	"strconv"
	"strings"

	"github.com/coachpo/xnumber/errs"
)

// Size names an integer column width.
type Size string

const (
	// SizeTiny is a one byte integer.
	SizeTiny Size = "tiny"
	// SizeSmall is a two byte integer.
	SizeSmall Size = "small"
	// SizeMedium is a three byte integer.
	SizeMedium Size = "medium"
	// SizeNormal is a four byte integer.
	SizeNormal Size = "normal"
	// SizeBig is an eight byte integer.
	SizeBig Size = "big"
)

// Bounds is an inclusive [Min, Max] pair of canonical decimal strings.
type Bounds struct {
	Min string `json:"min" yaml:"min"`
	Max string `json:"max" yaml:"max"`
}

// Range describes the values a storage column can hold.
type Range struct {
	Signed   Bounds `json:"signed" yaml:"signed"`
	Unsigned string `json:"unsigned" yaml:"unsigned"`
}

var sizeOrder = []Size{SizeTiny, SizeSmall, SizeMedium, SizeNormal, SizeBig}

var sizeRanges = map[Size]Range{
	SizeTiny: {
		Signed:   Bounds{Min: "-128", Max: "127"},
		Unsigned: "255",
	},
	SizeSmall: {
		Signed:   Bounds{Min: "-32768", Max: "32767"},
		Unsigned: "65535",
	},
	SizeMedium: {
		Signed:   Bounds{Min: "-8388608", Max: "8388607"},
		Unsigned: "16777215",
	},
	SizeNormal: {
		Signed:   Bounds{Min: "-2147483648", Max: "2147483647"},
		Unsigned: "4294967295",
	},
	SizeBig: {
		Signed: Bounds{Min: "-9223372036854775808", Max: "9223372036854775807"},
		// Capped at the signed maximum; 18446744073709551615 does not survive
		// validation as a native integer.
		Unsigned: "9223372036854775807",
	},
}

// Sizes lists the integer sizes from the narrowest to the widest.
func Sizes() []Size {
	out := make([]Size, len(sizeOrder))
	copy(out, sizeOrder)
	return out
}

// ParseSize resolves a size name, ignoring case and surrounding whitespace.
func ParseSize(name string) (Size, bool) {
	size := Size(strings.ToLower(strings.TrimSpace(name)))
	_, ok := sizeRanges[size]
	return size, ok
}

// SizeRange returns the range of an integer size.
func SizeRange(size Size) (Range, bool) {
	r, ok := sizeRanges[size]
	return r, ok
}

// Ranges returns the full integer size table.
func Ranges() map[Size]Range {
	out := make(map[Size]Range, len(sizeRanges))
	for size, r := range sizeRanges {
		out[size] = r
	}
	return out
}

// DecimalRange returns the range of a fixed point column with the given
// precision and scale: precision 5, scale 2 holds up to 999.99.
func DecimalRange(precision, scale int) (Range, error) {
	if precision < 1 || scale < 0 || scale > precision {
		return Range{}, errs.New("precision", errs.CodeInvalid,
			errs.WithMessage("precision must be positive and not lower than scale"),
			errs.WithValue(strconv.Itoa(precision)+","+strconv.Itoa(scale)),
		)
	}
	integers := strings.Repeat("9", precision-scale)
	if integers == "" {
		integers = "0"
	}
	max := integers
	if scale > 0 {
		max += "." + strings.Repeat("9", scale)
	}
	return Range{
		Signed:   Bounds{Min: "-" + max, Max: max},
		Unsigned: max,
	}, nil
}

// Min returns the lowest storable value.
func (r Range) Min(unsigned bool) string {
	if unsigned {
		return "0"
	}
	return r.Signed.Min
}

// Max returns the highest storable value.
func (r Range) Max(unsigned bool) string {
	if unsigned {
		return r.Unsigned
	}
	return r.Signed.Max
}

// Contains reports whether value fits the range.
func (r Range) Contains(value string, unsigned bool) bool {
	d, ok := Parse(value)
	if !ok {
		return false
	}
	lo, okLo := Parse(r.Min(unsigned))
	hi, okHi := Parse(r.Max(unsigned))
	if !okLo || !okHi {
		return false
	}
	return !d.LessThan(lo) && !d.GreaterThan(hi)
}
