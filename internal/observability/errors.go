package observability

import (
	"errors"
	"fmt"

	"github.com/coachpo/xnumber/errs"
)

// AggregateErrors joins the non-nil failures collected while running
// operation. The joined error is logged once, with the distinct error codes it
// carries, and returned wrapped with the operation name.
func AggregateErrors(operation string, failures []error, fields ...Field) error {
	joined := errors.Join(failures...)
	if joined == nil {
		return nil
	}

	seen := make(map[errs.Code]struct{})
	codes := make([]string, 0)
	for _, code := range errs.Codes(joined) {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, string(code))
	}

	count := 0
	for _, err := range failures {
		if err != nil {
			count++
		}
	}
	Log().Error("operation errors", append(fields,
		Field{Key: "operation", Value: operation},
		Field{Key: "error_count", Value: count},
		Field{Key: "codes", Value: codes},
	)...)
	return fmt.Errorf("%s failed: %w", operation, joined)
}
