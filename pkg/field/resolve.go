package field

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/coachpo/xnumber/pkg/numeric"
)

// None is displayed for unset settings.
const None = "None"

// Resolved holds the effective settings of a field in one display mode.
// Numeric values are canonical decimal strings; empty means unset.
type Resolved struct {
	Name     string
	Title    string
	Kind     Kind
	Unsigned bool

	DefaultValue     string
	BaseDefaultValue string
	Step             string
	BaseStep         string
	Min              string
	Max              string
	Floor            string
	Ceil             string
	Prefix           string
	Suffix           string
	Placeholder      string
}

// Resolve merges display mode overrides over the field settings of def and
// clamps the bounds to what the storage column can hold. Numeric overrides
// win over numeric field settings; text overrides win when non-empty.
func Resolve(def Definition, overrides Settings) Resolved {
	fs := def.Settings
	r := Resolved{
		Name:        def.Name,
		Title:       def.Title(),
		Kind:        def.Kind,
		Unsigned:    def.Storage.Unsigned,
		BaseStep:    def.BaseStep(),
		Min:         pickNumber(overrides.Min, fs.Min),
		Max:         pickNumber(overrides.Max, fs.Max),
		Prefix:      pickText(overrides.Prefix, fs.Prefix),
		Suffix:      pickText(overrides.Suffix, fs.Suffix),
		Placeholder: pickText(overrides.Placeholder, fs.Placeholder),
	}

	r.BaseDefaultValue = pickNumber("", fs.DefaultValue)
	r.DefaultValue = pickNumber(overrides.DefaultValue, fs.DefaultValue)

	r.Step = pickNumber(overrides.Step, fs.Step)
	if r.Step == "" {
		r.Step = r.BaseStep
	}

	if r.Unsigned {
		r.Floor = "0"
		r.Min = clampLow(r.Min, r.Floor)
	}

	if rng, ok := def.StorageRange(); ok {
		if !r.Unsigned {
			r.Floor = rng.Signed.Min
		}
		r.Ceil = rng.Max(r.Unsigned)
		r.Min = clampLow(r.Min, r.Floor)
		r.Max = clampHigh(r.Max, r.Ceil)
	}
	return r
}

// Element returns the number input contract for the resolved settings.
func (r Resolved) Element() Element {
	return Element{Title: r.Title, Min: r.Min, Max: r.Max, Step: r.Step}
}

// FieldPrefix returns the prefix to render next to the input, choosing the
// singular or plural form by the default value.
func (r Resolved) FieldPrefix() string {
	return Affix(r.Prefix, r.count())
}

// FieldSuffix returns the suffix to render next to the input.
func (r Resolved) FieldSuffix() string {
	return Affix(r.Suffix, r.count())
}

func (r Resolved) count() decimal.Decimal {
	if d, ok := numeric.Parse(r.DefaultValue); ok {
		return d
	}
	return decimal.NewFromInt(1)
}

// Summary lists the resolved settings as "name: value" lines.
func (r Resolved) Summary() []string {
	entries := []struct{ key, value string }{
		{"default_value", r.DefaultValue},
		{"step", r.Step},
		{"min", r.Min},
		{"max", r.Max},
		{"prefix", r.Prefix},
		{"suffix", r.Suffix},
		{"placeholder", r.Placeholder},
		{"base_default_value", r.BaseDefaultValue},
		{"base_step", r.BaseStep},
		{"floor", r.Floor},
		{"ceil", r.Ceil},
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		value := e.value
		if value == "" {
			value = None
		}
		out = append(out, e.key+": "+value)
	}
	return out
}

// Affix picks the singular or plural form of a "singular|plural" pattern.
// Patterns without a pipe are returned as is.
func Affix(pattern string, count decimal.Decimal) string {
	forms := strings.SplitN(pattern, "|", 2)
	if len(forms) < 2 {
		return pattern
	}
	if count.Equal(decimal.NewFromInt(1)) {
		return forms[0]
	}
	return forms[1]
}

func pickNumber(override, base string) string {
	if numeric.IsNumeric(override) {
		return numeric.Canonical(override)
	}
	if numeric.IsNumeric(base) {
		return numeric.Canonical(base)
	}
	return ""
}

func pickText(override, base string) string {
	if override != "" {
		return override
	}
	return base
}

// clampLow raises value to floor; an unset value becomes floor.
func clampLow(value, floor string) string {
	lo, ok := numeric.Parse(floor)
	if !ok {
		return value
	}
	v, ok := numeric.Parse(value)
	if !ok || v.LessThan(lo) {
		return floor
	}
	return value
}

// clampHigh lowers value to ceil; an unset value becomes ceil.
func clampHigh(value, ceil string) string {
	hi, ok := numeric.Parse(ceil)
	if !ok {
		return value
	}
	v, ok := numeric.Parse(value)
	if !ok || v.GreaterThan(hi) {
		return ceil
	}
	return value
}
