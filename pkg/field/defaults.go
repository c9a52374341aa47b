package field

import (
	"strings"

	"github.com/coachpo/xnumber/pkg/numeric"
)

const (
	defaultPrecision = 10
	defaultScale     = 2
)

// DefaultStorage returns the storage settings a new field of kind starts with.
func DefaultStorage(kind Kind) Storage {
	switch kind {
	case KindInteger:
		return Storage{Size: numeric.SizeNormal}
	case KindDecimal:
		return Storage{Precision: defaultPrecision, Scale: defaultScale}
	default:
		return Storage{}
	}
}

// DefaultSettings returns the field settings a new field of kind starts with.
func DefaultSettings(kind Kind) Settings {
	switch kind {
	case KindInteger:
		return Settings{Step: "1"}
	case KindDecimal:
		return Settings{Step: numeric.StepForScale(defaultScale)}
	default:
		return Settings{Step: StepAny}
	}
}

// New returns a definition of kind populated with default settings.
func New(name string, kind Kind) Definition {
	return Definition{
		Name:     name,
		Kind:     kind,
		Storage:  DefaultStorage(kind),
		Settings: DefaultSettings(kind),
	}
}

// WithDefaults fills unset storage and step settings. A decimal field without
// a precision takes both the default precision and, when unset, the default
// scale.
func (d Definition) WithDefaults() Definition {
	if kind, ok := ParseKind(string(d.Kind)); ok {
		d.Kind = kind
	}
	d.Name = strings.TrimSpace(d.Name)

	switch d.Kind {
	case KindInteger:
		if size, ok := numeric.ParseSize(string(d.Storage.Size)); ok {
			d.Storage.Size = size
		} else if strings.TrimSpace(string(d.Storage.Size)) == "" {
			d.Storage.Size = numeric.SizeNormal
		}
		d.Storage.Precision, d.Storage.Scale = 0, 0
	case KindDecimal:
		if d.Storage.Precision == 0 {
			d.Storage.Precision = defaultPrecision
			if d.Storage.Scale == 0 {
				d.Storage.Scale = defaultScale
			}
		}
		d.Storage.Size = ""
	case KindFloat:
		d.Storage.Size = ""
		d.Storage.Precision, d.Storage.Scale = 0, 0
	}

	d.Settings.Step = strings.TrimSpace(d.Settings.Step)
	if d.Settings.Step == "" {
		d.Settings.Step = d.BaseStep()
	}
	return d
}
