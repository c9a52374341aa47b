package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coachpo/xnumber/internal/config"
	"github.com/coachpo/xnumber/internal/observability"
)

type app struct {
	logLevel    string
	configPath  string
	getenv      func(string) string
	logger      *zap.Logger
	level       zap.AtomicLevel
	levelPinned bool // the flag or the environment chose the level
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Getenv).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	a := &app{getenv: getenv}

	root := &cobra.Command{
		Use:   "xnumber",
		Short: "Validate, normalise and sample numeric field values",
		Long: `xnumber checks numeric values the way number fields store them:
canonical decimal strings, step alignment against a minimum, storage ranges
for integer sizes and numeric(precision, scale) columns.

Field definitions are read from a YAML file (--config, $XNUMBER_CONFIG or
./xnumber.yaml).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initLogger(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
			observability.SetLogger(nil)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $XNUMBER_LOG_LEVEL, then logging.level of the config file, then info")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Field configuration file")

	root.AddCommand(
		newCanonCmd(),
		newStepCmd(),
		newRangesCmd(),
		newAlphaCmd(),
		a.newFieldsCmd(),
		a.newCheckCmd(),
		a.newSampleCmd(),
		a.newEncodeCmd(),
	)
	return root
}

func (a *app) initLogger(w io.Writer) error {
	level := a.logLevel
	if level == "" && a.getenv != nil {
		level = a.getenv(config.EnvLogLevel)
	}
	a.levelPinned = level != ""
	if level == "" {
		level = observability.DefaultLevel
	}
	lvl, err := observability.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.level = zap.NewAtomicLevelAt(lvl)
	a.logger = observability.NewLogger(a.level, w)
	observability.SetLogger(observability.NewZapLogger(a.logger))
	return nil
}

// loadConfig reads the field configuration. A missing file at the default
// location yields an empty configuration; an explicitly named file must exist.
// The logging level of a loaded file applies unless the flag or the
// environment already chose one.
func (a *app) loadConfig(ctx context.Context) (config.Config, error) {
	path := config.ResolvePath(a.configPath, a.getenv)
	explicit := a.configPath != "" || (a.getenv != nil && a.getenv(config.EnvConfigPath) != "")

	var (
		cfg    config.Config
		loaded = true
		err    error
	)
	if explicit {
		cfg, err = config.Load(ctx, path)
	} else {
		cfg, loaded, err = config.LoadOrDefault(ctx, path)
	}
	if err != nil {
		return config.Config{}, err
	}
	cfg = cfg.ApplyEnv(a.getenv)
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if loaded && !a.levelPinned {
		lvl, err := observability.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return config.Config{}, err
		}
		a.level.SetLevel(lvl)
	}
	return cfg, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
