package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coachpo/xnumber/pkg/numeric"
)

func newCanonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canon VALUE...",
		Short: "Print the canonical decimal form of each value",
		Example: `  xnumber canon 1.0E-7 -2.5e+3
  0.0000001
  -2500`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, value := range args {
				fmt.Fprintln(cmd.OutOrStdout(), numeric.Canonical(value))
			}
			return nil
		},
	}
}

func newStepCmd() *cobra.Command {
	var step, min string
	cmd := &cobra.Command{
		Use:   "step --step STEP [--min MIN] VALUE...",
		Short: "Report whether each value lies on the step grid",
		Long: `For every value prints "VALUE true" when it is a whole number of steps away
from MIN (or from zero without a minimum) and "VALUE false" otherwise. The
command fails when any value is off the grid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !numeric.IsNumeric(step) {
				return fmt.Errorf("--step must be a number, got %q", step)
			}
			if min != "" && !numeric.IsNumeric(min) {
				return fmt.Errorf("--min must be a number, got %q", min)
			}
			misaligned := 0
			for _, value := range args {
				ok := numeric.ValidStepMin(value, step, min)
				if !ok {
					misaligned++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %t\n", value, ok)
			}
			if misaligned > 0 {
				return fmt.Errorf("%d of %d values are not aligned to step %s", misaligned, len(args), step)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&step, "step", "1", "Step size")
	cmd.Flags().StringVar(&min, "min", "", "Grid anchor; values below it are rejected")
	return cmd
}

type rangeOutput struct {
	Storage  string `json:"storage"`
	Unsigned bool   `json:"unsigned"`
	Min      string `json:"min"`
	Max      string `json:"max"`
}

func newRangesCmd() *cobra.Command {
	var precision, scale int
	var unsigned bool
	cmd := &cobra.Command{
		Use:   "ranges [SIZE]",
		Short: "Print storage ranges as JSON",
		Long: `Without arguments prints the signed and unsigned range of every integer size.
With SIZE prints that size only. With --precision (and --scale) prints the
range of a numeric(precision, scale) column.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("precision") {
				rng, err := numeric.DecimalRange(precision, scale)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), rangeOutput{
					Storage:  fmt.Sprintf("numeric(%d,%d)", precision, scale),
					Unsigned: unsigned,
					Min:      rng.Min(unsigned),
					Max:      rng.Max(unsigned),
				})
			}

			sizes := numeric.Sizes()
			if len(args) == 1 {
				size, ok := numeric.ParseSize(args[0])
				if !ok {
					return fmt.Errorf("unknown size %q", args[0])
				}
				sizes = []numeric.Size{size}
			}
			out := make([]rangeOutput, 0, 2*len(sizes))
			for _, size := range sizes {
				rng, _ := numeric.SizeRange(size)
				for _, u := range []bool{false, true} {
					out = append(out, rangeOutput{Storage: string(size), Unsigned: u, Min: rng.Min(u), Max: rng.Max(u)})
				}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().IntVar(&precision, "precision", 0, "Decimal precision (total digits)")
	cmd.Flags().IntVar(&scale, "scale", 0, "Decimal scale (fractional digits)")
	cmd.Flags().BoolVar(&unsigned, "unsigned", false, "Report the unsigned decimal range")
	return cmd
}

func newAlphaCmd() *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "alpha VALUE...",
		Short: "Encode non-negative integers as sortable alphadecimal strings, or decode them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, value := range args {
				if decode {
					n, err := numeric.AlphadecimalToInt(value)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), n)
					continue
				}
				n, err := strconv.ParseUint(value, 10, 64)
				if err != nil {
					return fmt.Errorf("parse %q: %w", value, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), numeric.IntToAlphadecimal(n))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "Decode alphadecimal strings")
	return cmd
}
