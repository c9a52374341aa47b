package observability

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when no log level is configured.
const DefaultLevel = "info"

type zapLogger struct {
	base *zap.Logger
}

// NewZapLogger adapts a zap logger to the Logger interface.
func NewZapLogger(base *zap.Logger) Logger {
	if base == nil {
		return noopLogger{}
	}
	return zapLogger{base: base}
}

func (z zapLogger) Debug(msg string, fields ...Field) { z.base.Debug(msg, zapFields(fields)...) }
func (z zapLogger) Info(msg string, fields ...Field)  { z.base.Info(msg, zapFields(fields)...) }
func (z zapLogger) Warn(msg string, fields ...Field)  { z.base.Warn(msg, zapFields(fields)...) }
func (z zapLogger) Error(msg string, fields ...Field) { z.base.Error(msg, zapFields(fields)...) }

func zapFields(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

// NewLogger builds a JSON zap logger with the production encoder, writing to
// w. The level is atomic, so callers can raise or lower it after construction.
func NewLogger(level zap.AtomicLevel, w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(zapcore.AddSync(w))))
}

// ParseLevel maps a level name onto a zap level. Blank selects DefaultLevel.
func ParseLevel(level string) (zapcore.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "" {
		name = DefaultLevel
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return lvl, nil
}
