// Package field models configurable numeric fields: their storage and field
// settings, how display mode overrides resolve against the storage range, and
// how submitted values are validated.
package field

import (
	"strconv"
	"strings"

	"github.com/coachpo/xnumber/errs"
	"github.com/coachpo/xnumber/pkg/numeric"
)

// Kind identifies the numeric field type.
type Kind string

const (
	// KindInteger stores whole numbers in an integer column.
	KindInteger Kind = "integer"
	// KindDecimal stores fixed point numbers in a numeric(precision, scale) column.
	KindDecimal Kind = "decimal"
	// KindFloat stores double precision floating point numbers.
	KindFloat Kind = "float"
)

// StepAny disables step validation.
const StepAny = "any"

const (
	minPrecision = 10
	maxPrecision = 32
	maxScale     = 10
)

// ParseKind resolves a kind name, ignoring case and surrounding whitespace.
func ParseKind(name string) (Kind, bool) {
	kind := Kind(strings.ToLower(strings.TrimSpace(name)))
	switch kind {
	case KindInteger, KindDecimal, KindFloat:
		return kind, true
	default:
		return kind, false
	}
}

// Storage holds the settings that shape the storage column. They cannot
// change once a field has data.
type Storage struct {
	Unsigned  bool         `yaml:"unsigned" json:"unsigned"`
	Size      numeric.Size `yaml:"size,omitempty" json:"size,omitempty"`
	Precision int          `yaml:"precision,omitempty" json:"precision,omitempty"`
	Scale     int          `yaml:"scale,omitempty" json:"scale,omitempty"`
}

// Settings holds the per field defaults a display mode may override. Numeric
// settings are decimal strings; an empty string means unset.
type Settings struct {
	DefaultValue string `yaml:"defaultValue,omitempty" json:"default_value,omitempty"`
	Step         string `yaml:"step,omitempty" json:"step,omitempty"`
	Min          string `yaml:"min,omitempty" json:"min,omitempty"`
	Max          string `yaml:"max,omitempty" json:"max,omitempty"`
	Prefix       string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix       string `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Placeholder  string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
}

// Definition describes a single numeric field.
type Definition struct {
	Name     string   `yaml:"name" json:"name"`
	Label    string   `yaml:"label,omitempty" json:"label,omitempty"`
	Kind     Kind     `yaml:"kind" json:"kind"`
	Storage  Storage  `yaml:"storage" json:"storage"`
	Settings Settings `yaml:"settings" json:"settings"`
}

// Title returns the label, falling back to the machine name.
func (d Definition) Title() string {
	if label := strings.TrimSpace(d.Label); label != "" {
		return label
	}
	return d.Name
}

// StorageRange returns the storable range: the integer size for integer
// fields and the precision/scale range for decimal fields. Float fields have
// no fixed range.
func (d Definition) StorageRange() (numeric.Range, bool) {
	switch d.Kind {
	case KindInteger:
		return numeric.SizeRange(d.Storage.Size)
	case KindDecimal:
		r, err := numeric.DecimalRange(d.Storage.Precision, d.Storage.Scale)
		if err != nil {
			return numeric.Range{}, false
		}
		return r, true
	default:
		return numeric.Range{}, false
	}
}

// BaseStep returns the finest step the storage allows.
func (d Definition) BaseStep() string {
	switch d.Kind {
	case KindInteger:
		return "1"
	case KindDecimal:
		return numeric.StepForScale(d.Storage.Scale)
	default:
		return StepAny
	}
}

// Validate checks the definition for consistency.
func (d Definition) Validate() error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return errs.New("", errs.CodeInvalid, errs.WithMessage("field name required"))
	}
	if _, ok := ParseKind(string(d.Kind)); !ok {
		return errs.New(name, errs.CodeInvalid,
			errs.WithMessage("kind must be one of integer, decimal, float"),
			errs.WithValue(string(d.Kind)))
	}

	switch d.Kind {
	case KindInteger:
		if _, ok := numeric.SizeRange(d.Storage.Size); !ok {
			return errs.New(name, errs.CodeInvalid,
				errs.WithMessage("unknown integer size"),
				errs.WithValue(string(d.Storage.Size)))
		}
	case KindDecimal:
		if d.Storage.Precision < minPrecision || d.Storage.Precision > maxPrecision {
			return errs.New(name, errs.CodeInvalid,
				errs.WithMessage("precision must be between "+strconv.Itoa(minPrecision)+" and "+strconv.Itoa(maxPrecision)),
				errs.WithValue(strconv.Itoa(d.Storage.Precision)))
		}
		if d.Storage.Scale < 0 || d.Storage.Scale > maxScale {
			return errs.New(name, errs.CodeInvalid,
				errs.WithMessage("scale must be between 0 and "+strconv.Itoa(maxScale)),
				errs.WithValue(strconv.Itoa(d.Storage.Scale)))
		}
	}

	s := d.Settings
	for _, setting := range []struct{ key, value string }{
		{"defaultValue", s.DefaultValue},
		{"min", s.Min},
		{"max", s.Max},
	} {
		if setting.value != "" && !numeric.IsNumeric(setting.value) {
			return errs.New(name, errs.CodeNotNumeric,
				errs.WithMessage(setting.key+" must be a number"),
				errs.WithValue(setting.value))
		}
	}

	if s.Step != "" && !strings.EqualFold(s.Step, StepAny) {
		step, ok := numeric.Parse(s.Step)
		if !ok || step.Sign() <= 0 {
			return errs.New(name, errs.CodeInvalid,
				errs.WithMessage("step must be a positive number"),
				errs.WithValue(s.Step))
		}
	}
	if strings.EqualFold(s.Step, StepAny) && d.Kind != KindFloat {
		return errs.New(name, errs.CodeInvalid,
			errs.WithMessage("step any is only allowed on float fields"),
			errs.WithValue(s.Step))
	}

	if s.Min != "" && s.Max != "" {
		lo, _ := numeric.Parse(s.Min)
		hi, _ := numeric.Parse(s.Max)
		if lo.GreaterThan(hi) {
			return errs.New(name, errs.CodeInvalid,
				errs.WithMessage("min must not exceed max"),
				errs.WithValue(s.Min),
				errs.WithLimit(s.Max))
		}
	}
	return nil
}
