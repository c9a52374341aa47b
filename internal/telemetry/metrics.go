package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/coachpo/xnumber/errs"
)

// Instrument names.
const (
	MetricValuesChecked  = "xnumber.values.checked"
	MetricValuesRejected = "xnumber.values.rejected"
	MetricBatchDuration  = "xnumber.batch.duration"
)

// ValidationMetrics records the outcome of checking field values.
type ValidationMetrics struct {
	environment string
	checked     metric.Int64Counter
	rejected    metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewValidationMetrics registers the validation instruments on meter.
func NewValidationMetrics(meter metric.Meter, environment string) (*ValidationMetrics, error) {
	m := &ValidationMetrics{environment: environment}
	var err error
	if m.checked, err = meter.Int64Counter(MetricValuesChecked,
		metric.WithDescription("Number of field values checked"),
		metric.WithUnit("{value}")); err != nil {
		return nil, err
	}
	if m.rejected, err = meter.Int64Counter(MetricValuesRejected,
		metric.WithDescription("Number of validation failures by error code"),
		metric.WithUnit("{error}")); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram(MetricBatchDuration,
		metric.WithDescription("Duration of a batch check"),
		metric.WithUnit("ms")); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordValue counts one checked value with its result and one rejection per
// error code it produced.
func (m *ValidationMetrics) RecordValue(ctx context.Context, field, kind, result string, codes []errs.Code) {
	if m == nil {
		return
	}
	base := FieldAttributes(m.environment, field, kind)
	m.checked.Add(ctx, 1, metric.WithAttributes(append(base, AttrResult.String(result))...))
	for _, code := range codes {
		attrs := make([]attribute.KeyValue, 0, len(base)+1)
		attrs = append(attrs, base...)
		m.rejected.Add(ctx, 1, metric.WithAttributes(append(attrs, AttrErrorCode.String(string(code)))...))
	}
}

// RecordBatch records how long a batch over field took.
func (m *ValidationMetrics) RecordBatch(ctx context.Context, field, kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000,
		metric.WithAttributes(FieldAttributes(m.environment, field, kind)...))
}
