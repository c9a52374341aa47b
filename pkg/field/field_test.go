package field

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coachpo/xnumber/errs"
	"github.com/coachpo/xnumber/pkg/numeric"
)

func TestNewUsesKindDefaults(t *testing.T) {
	integer := New("qty", KindInteger)
	require.Equal(t, numeric.SizeNormal, integer.Storage.Size)
	require.Equal(t, "1", integer.Settings.Step)
	require.NoError(t, integer.Validate())

	dec := New("price", KindDecimal)
	require.Equal(t, 10, dec.Storage.Precision)
	require.Equal(t, 2, dec.Storage.Scale)
	require.Equal(t, "0.01", dec.Settings.Step)
	require.NoError(t, dec.Validate())

	float := New("ratio", KindFloat)
	require.Equal(t, StepAny, float.Settings.Step)
	require.NoError(t, float.Validate())
}

func TestWithDefaultsNormalisesDefinition(t *testing.T) {
	def := Definition{Name: " price ", Kind: "Decimal"}.WithDefaults()
	require.Equal(t, "price", def.Name)
	require.Equal(t, KindDecimal, def.Kind)
	require.Equal(t, 10, def.Storage.Precision)
	require.Equal(t, 2, def.Storage.Scale)
	require.Equal(t, "0.01", def.Settings.Step)

	def = Definition{Name: "whole", Kind: KindDecimal, Storage: Storage{Precision: 12}}.WithDefaults()
	require.Equal(t, 0, def.Storage.Scale)
	require.Equal(t, "1", def.Settings.Step)

	def = Definition{Name: "n", Kind: KindInteger, Storage: Storage{Size: "TINY", Precision: 4}}.WithDefaults()
	require.Equal(t, numeric.SizeTiny, def.Storage.Size)
	require.Zero(t, def.Storage.Precision)

	def = Definition{Name: "f", Kind: KindFloat, Settings: Settings{Step: " 0.5 "}}.WithDefaults()
	require.Equal(t, "0.5", def.Settings.Step)
}

func TestValidateRejectsInconsistentDefinitions(t *testing.T) {
	cases := map[string]struct {
		def  Definition
		code errs.Code
	}{
		"empty name":      {Definition{Kind: KindFloat}, errs.CodeInvalid},
		"unknown kind":    {Definition{Name: "x", Kind: "money"}, errs.CodeInvalid},
		"unknown size":    {Definition{Name: "x", Kind: KindInteger, Storage: Storage{Size: "huge"}}, errs.CodeInvalid},
		"low precision":   {Definition{Name: "x", Kind: KindDecimal, Storage: Storage{Precision: 5, Scale: 2}}, errs.CodeInvalid},
		"high scale":      {Definition{Name: "x", Kind: KindDecimal, Storage: Storage{Precision: 20, Scale: 11}}, errs.CodeInvalid},
		"any on decimal":  {Definition{Name: "x", Kind: KindDecimal, Storage: Storage{Precision: 10, Scale: 2}, Settings: Settings{Step: "any"}}, errs.CodeInvalid},
		"zero step":       {Definition{Name: "x", Kind: KindFloat, Settings: Settings{Step: "0"}}, errs.CodeInvalid},
		"non-numeric min": {Definition{Name: "x", Kind: KindFloat, Settings: Settings{Min: "low"}}, errs.CodeNotNumeric},
		"min above max":   {Definition{Name: "x", Kind: KindFloat, Settings: Settings{Min: "5", Max: "1"}}, errs.CodeInvalid},
	}
	for name, tc := range cases {
		err := tc.def.Validate()
		require.Error(t, err, name)
		require.True(t, errs.HasCode(err, tc.code), "%s: %v", name, err)
	}
}

func TestStorageRangeAndBaseStep(t *testing.T) {
	r, ok := New("qty", KindInteger).StorageRange()
	require.True(t, ok)
	require.Equal(t, "2147483647", r.Signed.Max)

	dec := New("price", KindDecimal)
	dec.Storage.Precision, dec.Storage.Scale = 12, 3
	r, ok = dec.StorageRange()
	require.True(t, ok)
	require.Equal(t, "999999999.999", r.Signed.Max)
	require.Equal(t, "0.001", dec.BaseStep())

	_, ok = New("ratio", KindFloat).StorageRange()
	require.False(t, ok)
	require.Equal(t, StepAny, New("ratio", KindFloat).BaseStep())
}

func TestTitleFallsBackToName(t *testing.T) {
	require.Equal(t, "qty", New("qty", KindInteger).Title())
	def := New("qty", KindInteger)
	def.Label = "Quantity"
	require.Equal(t, "Quantity", def.Title())
}

func TestParseKind(t *testing.T) {
	kind, ok := ParseKind(" FLOAT ")
	require.True(t, ok)
	require.Equal(t, KindFloat, kind)
	_, ok = ParseKind("money")
	require.False(t, ok)
}
