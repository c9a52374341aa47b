// Package batch checks many submitted values for one field concurrently and
// reports the outcome of each in submission order.
package batch

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"

	"github.com/coachpo/xnumber/errs"
	"github.com/coachpo/xnumber/internal/observability"
	"github.com/coachpo/xnumber/internal/telemetry"
	"github.com/coachpo/xnumber/pkg/field"
)

// Result is the outcome of checking one value.
type Result struct {
	Index     int         `json:"index"`
	Value     string      `json:"value"`
	Canonical string      `json:"canonical,omitempty"`
	Valid     bool        `json:"valid"`
	Skipped   bool        `json:"skipped,omitempty"`
	Codes     []errs.Code `json:"codes,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
}

// Report summarises a batch run.
type Report struct {
	RunID   string        `json:"run_id"`
	Field   string        `json:"field"`
	Kind    field.Kind    `json:"kind"`
	Total   int           `json:"total"`
	Valid   int           `json:"valid"`
	Invalid int           `json:"invalid"`
	Skipped int           `json:"skipped"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Results []Result      `json:"results"`
}

// Checker validates values against a resolved field. The zero value of
// Workers selects one worker per CPU.
type Checker struct {
	Definition field.Definition
	Overrides  field.Settings
	Workers    int
	Metrics    *telemetry.ValidationMetrics

	clock func() time.Time
}

// NewChecker builds a checker for def with the element overrides applied.
func NewChecker(def field.Definition, overrides field.Settings, workers int) *Checker {
	return &Checker{Definition: def, Overrides: overrides, Workers: workers, clock: time.Now}
}

// WithMetrics attaches validation instruments to the checker.
func (c *Checker) WithMetrics(metrics *telemetry.ValidationMetrics) *Checker {
	c.Metrics = metrics
	return c
}

// Check validates values in parallel. Results keep the order of values. Once
// ctx is done the values not yet checked are reported as skipped and the
// context error is returned alongside the partial report.
func (c *Checker) Check(ctx context.Context, values []string) (Report, error) {
	now := c.clock
	if now == nil {
		now = time.Now
	}
	start := now()

	element := field.Resolve(c.Definition, c.Overrides).Element()
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type job struct {
		index int
		value string
	}
	jobs := make([]job, len(values))
	for i, v := range values {
		jobs[i] = job{index: i, value: v}
	}

	mapper := iter.Mapper[job, Result]{MaxGoroutines: workers}
	results := mapper.Map(jobs, func(j *job) Result {
		if err := ctx.Err(); err != nil {
			return Result{Index: j.index, Value: j.value, Skipped: true, Errors: []string{err.Error()}}
		}
		return c.checkOne(element, j.index, j.value)
	})

	report := Report{
		RunID:   uuid.NewString(),
		Field:   c.Definition.Name,
		Kind:    c.Definition.Kind,
		Total:   len(results),
		Results: results,
	}
	for _, r := range results {
		result := telemetry.ResultValid
		switch {
		case r.Skipped:
			report.Skipped++
			result = telemetry.ResultSkipped
		case r.Valid:
			report.Valid++
		default:
			report.Invalid++
			result = telemetry.ResultRejected
		}
		c.Metrics.RecordValue(ctx, c.Definition.Name, string(c.Definition.Kind), result, r.Codes)
	}
	report.Elapsed = now().Sub(start)
	c.Metrics.RecordBatch(ctx, c.Definition.Name, string(c.Definition.Kind), report.Elapsed)

	observability.Log().Info("batch checked",
		observability.Field{Key: "run_id", Value: report.RunID},
		observability.Field{Key: "field", Value: report.Field},
		observability.Field{Key: "total", Value: report.Total},
		observability.Field{Key: "invalid", Value: report.Invalid},
		observability.Field{Key: "skipped", Value: report.Skipped},
	)

	if report.Skipped > 0 {
		return report, ctx.Err()
	}
	return report, nil
}

func (c *Checker) checkOne(element field.Element, index int, value string) Result {
	res := Result{Index: index, Value: value}
	if field.IsEmpty(value) {
		res.Valid = true
		return res
	}

	if canonical, ok := field.Normalize(value); ok {
		res.Canonical = canonical
	}

	failures := []error{field.ValidateElement(element, value)}
	if stored, ok := field.StoredForm(value); ok {
		failures = append(failures, field.ValidateItem(c.Definition, stored))
	}
	err := errors.Join(failures...)
	if err == nil {
		res.Valid = true
		return res
	}
	res.Codes = errs.Codes(err)
	res.Errors = messages(err)
	observability.Log().Debug("value rejected",
		observability.Field{Key: "field", Value: c.Definition.Name},
		observability.Field{Key: "value", Value: value},
		observability.Field{Key: "codes", Value: res.Codes},
	)
	return res
}

// messages lists the human readable message of every envelope in err,
// falling back to the error text for foreign errors.
func messages(err error) []string {
	var out []string
	var walk func(error)
	walk = func(err error) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var e *errs.E
		if errors.As(err, &e) && e.Message != "" {
			out = append(out, e.Message)
			return
		}
		out = append(out, err.Error())
	}
	walk(err)
	return out
}
