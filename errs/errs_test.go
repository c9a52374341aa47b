package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormattingIncludesValueAndLimit(t *testing.T) {
	err := New(
		"price",
		CodeBelowMin,
		WithMessage("price must be higher than or equal to 10"),
		WithValue("9.5"),
		WithLimit("10"),
		WithCause(errors.New("below floor")),
	)

	out := err.Error()
	if !strings.Contains(out, "field=price") {
		t.Fatalf("expected field marker in error string: %s", out)
	}
	if !strings.Contains(out, "code=below_min") {
		t.Fatalf("expected code in error string: %s", out)
	}
	if !strings.Contains(out, "value=\"9.5\"") {
		t.Fatalf("expected value in error string: %s", out)
	}
	if !strings.Contains(out, "limit=\"10\"") {
		t.Fatalf("expected limit in error string: %s", out)
	}
	if !strings.Contains(out, "cause=\"below floor\"") {
		t.Fatalf("expected wrapped cause in error string: %s", out)
	}
}

func TestEmptyFieldRendersUnknown(t *testing.T) {
	err := New("  ", CodeInvalid)
	if got := err.Error(); !strings.HasPrefix(got, "field=unknown code=invalid_request") {
		t.Fatalf("unexpected rendering: %s", got)
	}
}

func TestNilErrorString(t *testing.T) {
	var e *E
	if got := e.Error(); got != "<nil>" {
		t.Fatalf("expected <nil> string for nil error, got %q", got)
	}
}

func TestHasCodeThroughWrapAndJoin(t *testing.T) {
	step := New("qty", CodeStepMismatch)
	max := New("qty", CodeAboveMax)
	joined := errors.Join(max, fmt.Errorf("element: %w", step))

	if !HasCode(joined, CodeStepMismatch) {
		t.Fatal("expected step mismatch to be found through join and wrap")
	}
	if !HasCode(joined, CodeAboveMax) {
		t.Fatal("expected above max to be found")
	}
	if HasCode(joined, CodeBelowMin) {
		t.Fatal("did not expect below min")
	}
}

func TestCodesPreservesOrder(t *testing.T) {
	joined := errors.Join(New("a", CodeNotNumeric), nil, New("a", CodeAboveMax), errors.New("plain"))
	codes := Codes(joined)
	if len(codes) != 2 || codes[0] != CodeNotNumeric || codes[1] != CodeAboveMax {
		t.Fatalf("unexpected codes: %v", codes)
	}
	if Codes(nil) != nil {
		t.Fatal("expected nil codes for nil error")
	}
}

func TestUnwrapReturnsCause(t *testing.T) {
	cause := errors.New("boom")
	err := New("x", CodeInvalid, WithCause(cause))
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
}
