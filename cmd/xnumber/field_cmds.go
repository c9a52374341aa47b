package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coachpo/xnumber/internal/batch"
	"github.com/coachpo/xnumber/internal/config"
	"github.com/coachpo/xnumber/internal/observability"
	"github.com/coachpo/xnumber/internal/storage/postgres"
	"github.com/coachpo/xnumber/internal/telemetry"
	"github.com/coachpo/xnumber/pkg/field"
)

func (a *app) newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields [NAME...]",
		Short: "Summarise configured fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = cfg.FieldNames()
			}
			out := cmd.OutOrStdout()
			for i, name := range names {
				f, err := cfg.Field(name)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				resolved := f.Resolve()
				fmt.Fprintf(out, "%s (%s)\n", resolved.Name, resolved.Kind)
				for _, line := range resolved.Summary() {
					fmt.Fprintf(out, "  %s\n", line)
				}
				if prefix, suffix := resolved.FieldPrefix(), resolved.FieldSuffix(); prefix != "" || suffix != "" {
					value := resolved.DefaultValue
					if value == "" {
						value = "1"
					}
					fmt.Fprintf(out, "  display: %s%s%s\n", prefix, value, suffix)
				}
			}
			return nil
		},
	}
}

func (a *app) newCheckCmd() *cobra.Command {
	var fieldName string
	var workers int
	cmd := &cobra.Command{
		Use:   "check --field NAME VALUE...",
		Short: "Validate values against a configured field and print a JSON report",
		Long: `Validates each value as a number input of the field (min, max and step)
and as a stored item (pattern and storage range). The command fails when any
value is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.loadConfig(ctx)
			if err != nil {
				return err
			}
			f, err := cfg.Field(fieldName)
			if err != nil {
				return err
			}

			provider, err := telemetry.NewProvider(ctx, cfg.Telemetry)
			if err != nil {
				return err
			}
			defer func() {
				if err := provider.Shutdown(ctx); err != nil {
					observability.Log().Warn("telemetry shutdown", observability.Field{Key: "error", Value: err.Error()})
				}
			}()
			metrics, err := telemetry.NewValidationMetrics(provider.Meter("xnumber/batch"), provider.Config().Environment)
			if err != nil {
				return fmt.Errorf("register metrics: %w", err)
			}

			if !cmd.Flags().Changed("workers") {
				workers = cfg.Batch.Workers.Count()
			}
			report, checkErr := batch.NewChecker(f.Definition, f.Overrides, workers).
				WithMetrics(metrics).
				Check(ctx, args)
			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if checkErr != nil {
				return checkErr
			}
			if report.Invalid > 0 {
				return fmt.Errorf("%d of %d values are invalid", report.Invalid, report.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fieldName, "field", "", "Configured field name")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "Concurrent checks; defaults to the config batch.workers")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func (a *app) newSampleCmd() *cobra.Command {
	var fieldName string
	var count int
	var seed uint64
	cmd := &cobra.Command{
		Use:   "sample --field NAME [--count N] [--seed N]",
		Short: "Generate random storable values for a configured field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			f, err := cfg.Field(fieldName)
			if err != nil {
				return err
			}
			if count < 1 {
				return errors.New("--count must be at least 1")
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			rng := rand.New(rand.NewPCG(seed, seed>>1|1))
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), field.Sample(f.Definition, rng))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fieldName, "field", "", "Configured field name")
	cmd.Flags().IntVar(&count, "count", 1, "Number of values")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed; defaults to the current time")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

type encodedValue struct {
	Value   string `json:"value"`
	Encoded any    `json:"encoded"`
	Type    string `json:"type"`
	Stored  string `json:"stored"`
}

func (a *app) newEncodeCmd() *cobra.Command {
	var fieldName string
	cmd := &cobra.Command{
		Use:   "encode --field NAME VALUE...",
		Short: "Show the PostgreSQL parameter and stored text each value encodes to",
		Long: `Encodes the values the way a COPY into the field column would. Nothing is
printed unless every value encodes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			f, err := cfg.Field(fieldName)
			if err != nil {
				return err
			}
			src, err := postgres.CopySource(postgres.ColumnFor(f.Definition), args)
			if err != nil {
				return err
			}

			out := make([]encodedValue, 0, len(args))
			for i := 0; src.Next(); i++ {
				row, err := src.Values()
				if err != nil {
					return err
				}
				stored, err := postgres.DecodeValue(row[0])
				if err != nil {
					return err
				}
				out = append(out, encodedValue{
					Value:   args[i],
					Encoded: row[0],
					Type:    strings.TrimPrefix(fmt.Sprintf("%T", row[0]), "pgtype."),
					Stored:  stored,
				})
			}
			if err := src.Err(); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&fieldName, "field", "", "Configured field name")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}
