package field

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coachpo/xnumber/errs"
)

func TestValidateElementEmptyPasses(t *testing.T) {
	require.NoError(t, ValidateElement(Element{Title: "Qty", Min: "1", Step: "2"}, ""))
}

func TestValidateElementNonNumericFailsAlone(t *testing.T) {
	err := ValidateElement(Element{Title: "Qty", Min: "1", Max: "10", Step: "2"}, "abc")
	require.Error(t, err)
	require.Equal(t, []errs.Code{errs.CodeNotNumeric}, errs.Codes(err))
	require.Contains(t, err.Error(), "Qty must be a number.")
}

func TestValidateElementReportsEveryFailure(t *testing.T) {
	el := Element{Title: "Qty", Min: "1", Max: "10", Step: "2"}

	err := ValidateElement(el, "0")
	require.Equal(t, []errs.Code{errs.CodeBelowMin, errs.CodeStepMismatch}, errs.Codes(err))
	require.Contains(t, err.Error(), "Qty must be higher than or equal to 1.")

	err = ValidateElement(el, "11")
	require.Equal(t, []errs.Code{errs.CodeAboveMax}, errs.Codes(err))
	require.Contains(t, err.Error(), "Qty must be lower than or equal to 10.")

	err = ValidateElement(el, "4")
	require.Equal(t, []errs.Code{errs.CodeStepMismatch}, errs.Codes(err))

	require.NoError(t, ValidateElement(el, "5"))
	require.NoError(t, ValidateElement(el, "1"))
}

func TestValidateElementStepAnySkipsStepCheck(t *testing.T) {
	require.NoError(t, ValidateElement(Element{Title: "Ratio", Step: "any"}, "3.3"))
	require.NoError(t, ValidateElement(Element{Title: "Ratio", Step: "ANY"}, "3.3"))
	require.NoError(t, ValidateElement(Element{Title: "Ratio"}, "3.3"))
}

func TestValidateElementDecimalStep(t *testing.T) {
	el := Element{Title: "Price", Min: "-9999999.99", Step: "0.1"}
	require.NoError(t, ValidateElement(el, "-0.1"))
	require.NoError(t, ValidateElement(Element{Title: "Price", Step: "0.1"}, "0.3"))
	require.True(t, errs.HasCode(ValidateElement(Element{Title: "Price", Step: "0.1"}, "0.25"), errs.CodeStepMismatch))
}

func TestValidateElementFromResolvedSettings(t *testing.T) {
	def := New("qty", KindInteger)
	def.Storage.Unsigned = true
	def.Storage.Size = "tiny"
	el := Resolve(def, Settings{}).Element()

	require.NoError(t, ValidateElement(el, "255"))
	require.True(t, errs.HasCode(ValidateElement(el, "256"), errs.CodeAboveMax))
	require.True(t, errs.HasCode(ValidateElement(el, "-1"), errs.CodeBelowMin))
	require.True(t, errs.HasCode(ValidateElement(el, "1.5"), errs.CodeStepMismatch))
}

func TestValidateItemInteger(t *testing.T) {
	def := New("qty", KindInteger)
	def.Storage.Size = "tiny"

	require.NoError(t, ValidateItem(def, "12"))
	require.NoError(t, ValidateItem(def, "-128"))
	require.True(t, errs.HasCode(ValidateItem(def, "012"), errs.CodePattern))
	require.True(t, errs.HasCode(ValidateItem(def, "1.5"), errs.CodePattern))

	err := ValidateItem(def, "-129")
	require.True(t, errs.HasCode(err, errs.CodeBelowMin))
	require.Contains(t, err.Error(), "the signed tiny value may be no less than -128.")

	def.Storage.Unsigned = true
	err = ValidateItem(def, "300")
	require.True(t, errs.HasCode(err, errs.CodeAboveMax))
	require.Contains(t, err.Error(), "the unsigned tiny value may be no greater than 255.")

	err = ValidateItem(def, "-1")
	require.Equal(t, []errs.Code{errs.CodeBelowMin}, errs.Codes(err))
}

func TestValidateItemDecimal(t *testing.T) {
	def := New("price", KindDecimal)

	require.NoError(t, ValidateItem(def, "1.5"))
	require.NoError(t, ValidateItem(def, ".5"))
	require.NoError(t, ValidateItem(def, "-0.25"))
	require.True(t, errs.HasCode(ValidateItem(def, "1.50"), errs.CodePattern))
	require.True(t, errs.HasCode(ValidateItem(def, "1e3"), errs.CodePattern))
	require.True(t, errs.HasCode(ValidateItem(def, "100000000"), errs.CodeOutOfRange))
	require.NoError(t, ValidateItem(def, "99999999.99"))
}

func TestValidateItemUnsignedFloat(t *testing.T) {
	def := New("ratio", KindFloat)
	require.NoError(t, ValidateItem(def, "-0.25"))

	def.Storage.Unsigned = true
	require.True(t, errs.HasCode(ValidateItem(def, "-0.25"), errs.CodeBelowMin))
	require.NoError(t, ValidateItem(def, "0"))
}

func TestNormalize(t *testing.T) {
	out, ok := Normalize("1.0E-7")
	require.True(t, ok)
	require.Equal(t, "0.0000001", out)

	_, ok = Normalize("seven")
	require.False(t, ok)

	stored, ok := StoredForm("+1.50")
	require.True(t, ok)
	require.Equal(t, "1.5", stored)
}

func TestIsEmpty(t *testing.T) {
	require.True(t, IsEmpty(""))
	require.True(t, IsEmpty("  "))
	require.False(t, IsEmpty("0"))
	require.False(t, IsEmpty("0.0"))
}
