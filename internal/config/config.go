// Package config loads the YAML file describing xnumber fields and the
// runtime settings of the command line tools.
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coachpo/xnumber/errs"
	"github.com/coachpo/xnumber/internal/observability"
	"github.com/coachpo/xnumber/internal/telemetry"
	"github.com/coachpo/xnumber/pkg/field"
)

// Environment variables consulted by ApplyEnv and ResolvePath.
const (
	EnvConfigPath   = "XNUMBER_CONFIG"
	EnvLogLevel     = "XNUMBER_LOG_LEVEL"
	EnvOTLPEndpoint = "XNUMBER_OTLP_ENDPOINT"
)

// DefaultPath is used when neither a flag nor XNUMBER_CONFIG names a file.
const DefaultPath = "xnumber.yaml"

// FieldConfig is one configured field: its definition plus the overrides an
// input element applies on top of the field settings.
type FieldConfig struct {
	field.Definition `yaml:",inline"`
	Overrides        field.Settings `yaml:"overrides"`
}

// Resolve merges the definition with the configured overrides.
func (f FieldConfig) Resolve() field.Resolved {
	return field.Resolve(f.Definition, f.Overrides)
}

// BatchConfig sizes the concurrent batch checker.
type BatchConfig struct {
	Workers WorkerSetting `yaml:"workers"`
}

// LoggingConfig selects the log level of the zap backend.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config is the root of the configuration file.
type Config struct {
	Fields    []FieldConfig    `yaml:"fields"`
	Batch     BatchConfig      `yaml:"batch"`
	Logging   LoggingConfig    `yaml:"logging"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// Default returns a configuration with no fields and default runtime settings.
func Default() Config {
	cfg := Config{}
	_ = cfg.normalise()
	return cfg
}

// Load reads, normalises and validates the configuration at configPath.
func Load(ctx context.Context, configPath string) (Config, error) {
	_ = ctx

	reader, closer, err := openConfigFile(configPath)
	if err != nil {
		return Config{}, err
	}
	defer closer()

	return Decode(reader)
}

// Decode parses a configuration document from r.
func Decode(r io.Reader) (Config, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads configPath when it exists and falls back to Default
// otherwise. The boolean reports whether a file was read.
func LoadOrDefault(ctx context.Context, configPath string) (Config, bool, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		return Default(), false, nil
	}
	if _, err := os.Stat(filepath.Clean(path)); err != nil {
		if os.IsNotExist(err) {
			observability.Log().Debug("config file not found, using defaults",
				observability.Field{Key: "path", Value: path})
			return Default(), false, nil
		}
		return Config{}, false, fmt.Errorf("stat config: %w", err)
	}
	cfg, err := Load(ctx, path)
	if err != nil {
		return Config{}, false, err
	}
	return cfg, true, nil
}

// ResolvePath picks the configuration path: the explicit flag value first,
// then XNUMBER_CONFIG, then DefaultPath.
func ResolvePath(flagValue string, getenv func(string) string) string {
	if path := strings.TrimSpace(flagValue); path != "" {
		return path
	}
	if getenv != nil {
		if path := strings.TrimSpace(getenv(EnvConfigPath)); path != "" {
			return path
		}
	}
	return DefaultPath
}

// ApplyEnv overlays the environment overrides onto c.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if getenv == nil {
		return c
	}
	if level := strings.TrimSpace(getenv(EnvLogLevel)); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if endpoint := strings.TrimSpace(getenv(EnvOTLPEndpoint)); endpoint != "" {
		c.Telemetry.OTLPEndpoint = endpoint
	}
	return c
}

// Field returns the configured field called name.
func (c Config) Field(name string) (FieldConfig, error) {
	key := strings.TrimSpace(name)
	for _, f := range c.Fields {
		if f.Name == key {
			return f, nil
		}
	}
	return FieldConfig{}, errs.New(key, errs.CodeNotFound,
		errs.WithMessage(fmt.Sprintf("field %q is not configured", key)))
}

// FieldNames lists the configured field names in file order.
func (c Config) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		names = append(names, f.Name)
	}
	return names
}

func (c *Config) normalise() error {
	for i := range c.Fields {
		c.Fields[i].Definition = c.Fields[i].Definition.WithDefaults()
		c.Fields[i].Overrides = trimSettings(c.Fields[i].Overrides)
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = observability.DefaultLevel
	}
	c.Telemetry.OTLPEndpoint = strings.TrimSpace(c.Telemetry.OTLPEndpoint)
	c.Telemetry = c.Telemetry.WithDefaults()
	return nil
}

func trimSettings(s field.Settings) field.Settings {
	s.DefaultValue = strings.TrimSpace(s.DefaultValue)
	s.Step = strings.TrimSpace(s.Step)
	s.Min = strings.TrimSpace(s.Min)
	s.Max = strings.TrimSpace(s.Max)
	return s
}

// Validate performs semantic validation on the configuration. Every invalid
// field is reported, not only the first.
func (c Config) Validate() error {
	if _, err := observability.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if c.Batch.Workers.Count() <= 0 {
		return fmt.Errorf("batch workers must be >0")
	}

	var failures []error
	seen := make(map[string]struct{}, len(c.Fields))
	for _, f := range c.Fields {
		if _, dup := seen[f.Name]; dup && f.Name != "" {
			failures = append(failures, errs.New(f.Name, errs.CodeInvalid,
				errs.WithMessage("duplicate field name")))
			continue
		}
		seen[f.Name] = struct{}{}
		if err := f.Definition.Validate(); err != nil {
			failures = append(failures, err)
		}
	}
	return observability.AggregateErrors("validate fields", failures)
}

func openConfigFile(path string) (io.Reader, func(), error) {
	candidate := filepath.Clean(strings.TrimSpace(path))

	file, err := os.Open(candidate) // #nosec G304 -- path is operator controlled.
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}
