// Package postgres encodes checked field values into pgx parameter types
// matching the column each field kind is stored in.
package postgres

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/coachpo/xnumber/errs"
	"github.com/coachpo/xnumber/pkg/field"
	"github.com/coachpo/xnumber/pkg/numeric"
)

// Column describes the storage a field's values are written to.
type Column struct {
	Name    string
	Kind    field.Kind
	Storage field.Storage
}

// ColumnFor derives the column of a field definition.
func ColumnFor(def field.Definition) Column {
	return Column{Name: def.Name, Kind: def.Kind, Storage: def.Storage}
}

func (c Column) definition() field.Definition {
	return field.Definition{Name: c.Name, Kind: c.Kind, Storage: c.Storage}
}

// Encode converts value into the pgx type for the column: pgtype.Int8 for
// integers, pgtype.Numeric for decimals and pgtype.Float8 for floats. An
// empty value encodes as SQL NULL. Decimal values are truncated to the column
// scale before the range check.
func (c Column) Encode(value string) (any, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return c.null(), nil
	}
	d, ok := numeric.Parse(trimmed)
	if !ok {
		return nil, errs.New(c.Name, errs.CodeNotNumeric,
			errs.WithMessage("value is not a number"), errs.WithValue(value))
	}

	switch c.Kind {
	case field.KindInteger:
		return c.encodeInteger(d)
	case field.KindDecimal:
		return c.encodeDecimal(d)
	case field.KindFloat:
		return c.encodeFloat(d)
	default:
		return nil, errs.New(c.Name, errs.CodeInvalid,
			errs.WithMessage("unknown field kind"), errs.WithValue(string(c.Kind)))
	}
}

func (c Column) null() any {
	switch c.Kind {
	case field.KindInteger:
		return pgtype.Int8{}
	case field.KindFloat:
		return pgtype.Float8{}
	default:
		return pgtype.Numeric{}
	}
}

func (c Column) encodeInteger(d decimal.Decimal) (pgtype.Int8, error) {
	if !d.Equal(d.Truncate(0)) {
		return pgtype.Int8{}, errs.New(c.Name, errs.CodePattern,
			errs.WithMessage("integer column requires a whole number"), errs.WithValue(d.String()))
	}
	if err := c.checkRange(d.String()); err != nil {
		return pgtype.Int8{}, err
	}
	return pgtype.Int8{Int64: d.IntPart(), Valid: true}, nil
}

func (c Column) encodeDecimal(d decimal.Decimal) (pgtype.Numeric, error) {
	truncated := numeric.Truncate(d, int32(c.Storage.Scale)).String()
	if err := c.checkRange(truncated); err != nil {
		return pgtype.Numeric{}, err
	}
	return numericFromString(truncated)
}

func (c Column) encodeFloat(d decimal.Decimal) (pgtype.Float8, error) {
	if c.Storage.Unsigned && d.Sign() < 0 {
		return pgtype.Float8{}, errs.New(c.Name, errs.CodeBelowMin,
			errs.WithMessage("unsigned column rejects negative values"),
			errs.WithValue(d.String()), errs.WithLimit("0"))
	}
	return pgtype.Float8{Float64: d.InexactFloat64(), Valid: true}, nil
}

func (c Column) checkRange(value string) error {
	rng, ok := c.definition().StorageRange()
	if !ok {
		return errs.New(c.Name, errs.CodeInvalid, errs.WithMessage("column has no storage range"))
	}
	if rng.Contains(value, c.Storage.Unsigned) {
		return nil
	}
	return errs.New(c.Name, errs.CodeOutOfRange,
		errs.WithMessage(fmt.Sprintf("value outside %s..%s", rng.Min(c.Storage.Unsigned), rng.Max(c.Storage.Unsigned))),
		errs.WithValue(value))
}

// numericFromString converts a decimal string into a pgtype.Numeric value.
func numericFromString(value string) (pgtype.Numeric, error) {
	var out pgtype.Numeric
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return out, fmt.Errorf("numeric value required")
	}
	if err := out.Scan(trimmed); err != nil {
		return out, fmt.Errorf("parse numeric %q: %w", trimmed, err)
	}
	return out, nil
}

// DecodeNumeric renders a numeric read back from the database as a canonical
// decimal string. NULL decodes to the empty string.
func DecodeNumeric(n pgtype.Numeric) (string, error) {
	if !n.Valid {
		return "", nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return "", fmt.Errorf("numeric value is not finite")
	}
	if n.Int == nil {
		return "0", nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp).String(), nil
}

// DecodeValue renders a value produced by Encode, or scanned from a column of
// the same type, as the text the database holds. NULL decodes to the empty
// string.
func DecodeValue(v any) (string, error) {
	switch v := v.(type) {
	case pgtype.Numeric:
		return DecodeNumeric(v)
	case pgtype.Int8:
		if !v.Valid {
			return "", nil
		}
		return strconv.FormatInt(v.Int64, 10), nil
	case pgtype.Float8:
		if !v.Valid {
			return "", nil
		}
		return numeric.FormatFloat(v.Float64), nil
	default:
		return "", fmt.Errorf("unsupported column value %T", v)
	}
}

// CopySource encodes values for one column into a source suitable for
// pgx.Conn.CopyFrom. Every value is encoded up front; all encoding failures
// are returned together.
func CopySource(col Column, values []string) (pgx.CopyFromSource, error) {
	rows := make([][]any, 0, len(values))
	var failures []error
	for i, value := range values {
		encoded, err := col.Encode(value)
		if err != nil {
			failures = append(failures, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		rows = append(rows, []any{encoded})
	}
	if len(failures) > 0 {
		return nil, errors.Join(failures...)
	}
	return pgx.CopyFromRows(rows), nil
}
