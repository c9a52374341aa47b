package postgres

import (
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/coachpo/xnumber/errs"
	"github.com/coachpo/xnumber/pkg/field"
	"github.com/coachpo/xnumber/pkg/numeric"
)

func decimalColumn(precision, scale int) Column {
	def := field.New("price", field.KindDecimal)
	def.Storage.Precision, def.Storage.Scale = precision, scale
	return ColumnFor(def)
}

func TestEncodeInteger(t *testing.T) {
	def := field.New("qty", field.KindInteger)
	def.Storage.Size = numeric.SizeSmall
	col := ColumnFor(def)

	out, err := col.Encode(" 1.2e2 ")
	require.NoError(t, err)
	require.Equal(t, pgtype.Int8{Int64: 120, Valid: true}, out)

	out, err = col.Encode("-32768")
	require.NoError(t, err)
	require.Equal(t, pgtype.Int8{Int64: -32768, Valid: true}, out)

	_, err = col.Encode("32768")
	require.True(t, errs.HasCode(err, errs.CodeOutOfRange))

	_, err = col.Encode("1.5")
	require.True(t, errs.HasCode(err, errs.CodePattern))

	col.Storage.Unsigned = true
	out, err = col.Encode("65535")
	require.NoError(t, err)
	require.Equal(t, pgtype.Int8{Int64: 65535, Valid: true}, out)
	_, err = col.Encode("-1")
	require.True(t, errs.HasCode(err, errs.CodeOutOfRange))
}

func TestEncodeBigUnsignedFitsInt8(t *testing.T) {
	def := field.New("id", field.KindInteger)
	def.Storage.Size = numeric.SizeBig
	def.Storage.Unsigned = true
	col := ColumnFor(def)

	out, err := col.Encode("9223372036854775807")
	require.NoError(t, err)
	require.Equal(t, pgtype.Int8{Int64: 9223372036854775807, Valid: true}, out)

	_, err = col.Encode("9223372036854775808")
	require.True(t, errs.HasCode(err, errs.CodeOutOfRange))
}

func TestEncodeDecimalTruncatesToScale(t *testing.T) {
	col := decimalColumn(10, 2)

	out, err := col.Encode("12.349")
	require.NoError(t, err)
	n, ok := out.(pgtype.Numeric)
	require.True(t, ok)
	require.True(t, n.Valid)
	text, err := DecodeNumeric(n)
	require.NoError(t, err)
	require.Equal(t, "12.34", text)

	out, err = col.Encode("-0.019")
	require.NoError(t, err)
	text, err = DecodeNumeric(out.(pgtype.Numeric))
	require.NoError(t, err)
	require.Equal(t, "-0.01", text)

	out, err = col.Encode("99999999.999")
	require.NoError(t, err)
	text, err = DecodeNumeric(out.(pgtype.Numeric))
	require.NoError(t, err)
	require.Equal(t, "99999999.99", text)

	_, err = col.Encode("100000000")
	require.True(t, errs.HasCode(err, errs.CodeOutOfRange))
}

func TestEncodeFloat(t *testing.T) {
	col := ColumnFor(field.New("ratio", field.KindFloat))

	out, err := col.Encode("0.25")
	require.NoError(t, err)
	require.Equal(t, pgtype.Float8{Float64: 0.25, Valid: true}, out)

	out, err = col.Encode("-1e3")
	require.NoError(t, err)
	require.Equal(t, pgtype.Float8{Float64: -1000, Valid: true}, out)

	col.Storage.Unsigned = true
	_, err = col.Encode("-0.5")
	require.True(t, errs.HasCode(err, errs.CodeBelowMin))
}

func TestEncodeEmptyIsNull(t *testing.T) {
	out, err := ColumnFor(field.New("qty", field.KindInteger)).Encode("")
	require.NoError(t, err)
	require.Equal(t, pgtype.Int8{}, out)

	out, err = decimalColumn(10, 2).Encode("  ")
	require.NoError(t, err)
	require.Equal(t, pgtype.Numeric{}, out)

	out, err = ColumnFor(field.New("ratio", field.KindFloat)).Encode("")
	require.NoError(t, err)
	require.Equal(t, pgtype.Float8{}, out)
}

func TestEncodeRejectsNonNumeric(t *testing.T) {
	_, err := decimalColumn(10, 2).Encode("ten")
	require.True(t, errs.HasCode(err, errs.CodeNotNumeric))

	_, err = Column{Name: "x", Kind: "money"}.Encode("1")
	require.True(t, errs.HasCode(err, errs.CodeInvalid))
}

func TestDecodeNumeric(t *testing.T) {
	text, err := DecodeNumeric(pgtype.Numeric{})
	require.NoError(t, err)
	require.Empty(t, text)

	text, err = DecodeNumeric(pgtype.Numeric{Int: big.NewInt(12345), Exp: -3, Valid: true})
	require.NoError(t, err)
	require.Equal(t, "12.345", text)

	text, err = DecodeNumeric(pgtype.Numeric{Int: big.NewInt(7), Exp: 2, Valid: true})
	require.NoError(t, err)
	require.Equal(t, "700", text)

	_, err = DecodeNumeric(pgtype.Numeric{NaN: true, Valid: true})
	require.Error(t, err)
}

func TestDecodeValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{pgtype.Int8{Int64: -42, Valid: true}, "-42"},
		{pgtype.Int8{}, ""},
		{pgtype.Float8{Float64: 0.1 + 0.2, Valid: true}, "0.3"},
		{pgtype.Float8{}, ""},
		{pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true}, "12.5"},
	}
	for _, tc := range cases {
		got, err := DecodeValue(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}

	_, err := DecodeValue("12")
	require.Error(t, err)
}

func TestNumericFromString(t *testing.T) {
	_, err := numericFromString(" ")
	require.Error(t, err)

	n, err := numericFromString("42.5")
	require.NoError(t, err)
	text, err := DecodeNumeric(n)
	require.NoError(t, err)
	require.Equal(t, "42.5", text)
}

func TestCopySource(t *testing.T) {
	src, err := CopySource(decimalColumn(10, 2), []string{"1.5", "", "2.255"})
	require.NoError(t, err)

	var rows []string
	for src.Next() {
		values, err := src.Values()
		require.NoError(t, err)
		require.Len(t, values, 1)
		text, err := DecodeNumeric(values[0].(pgtype.Numeric))
		require.NoError(t, err)
		rows = append(rows, text)
	}
	require.NoError(t, src.Err())
	require.Equal(t, []string{"1.5", "", "2.25"}, rows)

	_, err = CopySource(decimalColumn(10, 2), []string{"1", "x", "1e9"})
	require.Error(t, err)
	require.Equal(t, []errs.Code{errs.CodeNotNumeric, errs.CodeOutOfRange}, errs.Codes(err))
	require.Contains(t, err.Error(), "row 1:")
}
