package observability

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/coachpo/xnumber/errs"
)

type recordingLogger struct {
	noopLogger
	errors []string
	fields [][]Field
}

func (r *recordingLogger) Error(msg string, fields ...Field) {
	r.errors = append(r.errors, msg)
	r.fields = append(r.fields, fields)
}

func TestSetLoggerNilRestoresNoop(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	require.Same(t, rec, Log())

	SetLogger(nil)
	require.Equal(t, noopLogger{}, Log())
}

func TestZapLoggerForwardsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Info("value checked", Field{Key: "field", Value: "price"}, Field{Key: "valid", Value: true})
	logger.Warn("value rejected", Field{Key: "code", Value: "below_min"})
	logger.Debug("trace")

	require.Equal(t, 3, logs.Len())
	entry := logs.FilterMessage("value checked").All()[0]
	require.Equal(t, zapcore.InfoLevel, entry.Level)
	require.Equal(t, "price", entry.ContextMap()["field"])
	require.Equal(t, true, entry.ContextMap()["valid"])
	require.Equal(t, zapcore.WarnLevel, logs.FilterMessage("value rejected").All()[0].Level)
}

func TestNewZapLoggerNilIsNoop(t *testing.T) {
	require.Equal(t, noopLogger{}, NewZapLogger(nil))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestNewLoggerFollowsAtomicLevel(t *testing.T) {
	var buf bytes.Buffer
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger := NewLogger(level, &buf)

	logger.Info("hidden")
	require.Empty(t, buf.String())

	level.SetLevel(zapcore.DebugLevel)
	logger.Debug("shown", zap.String("field", "qty"))
	require.Contains(t, buf.String(), `"msg":"shown"`)
	require.Contains(t, buf.String(), `"field":"qty"`)
}

func TestAggregateErrors(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	t.Cleanup(func() { SetLogger(nil) })

	require.NoError(t, AggregateErrors("load", []error{nil, nil}))
	require.Empty(t, rec.errors)

	first := errs.New("price", errs.CodeInvalid, errs.WithMessage("bad scale"))
	second := fmt.Errorf("wrapped: %w", errs.New("qty", errs.CodeNotNumeric))
	third := errs.New("ratio", errs.CodeInvalid)
	err := AggregateErrors("load", []error{first, nil, second, third}, Field{Key: "path", Value: "fields.yaml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "load failed:")
	require.True(t, errors.Is(err, first))
	require.True(t, errs.HasCode(err, errs.CodeNotNumeric))

	require.Len(t, rec.errors, 1)
	logged := map[string]any{}
	for _, f := range rec.fields[0] {
		logged[f.Key] = f.Value
	}
	require.Equal(t, "fields.yaml", logged["path"])
	require.Equal(t, 3, logged["error_count"])
	require.Equal(t, []string{"invalid_request", "not_numeric"}, logged["codes"])
}
