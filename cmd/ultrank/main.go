// Package main provides the CLI entry point for ultrank.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ultrank/pkg/ultrank"
	"ultrank/pkg/ultrank/config"
	"ultrank/pkg/ultrank/interp"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		inputDir   string
		outputDir  string
		mode       string
		step       float64
		kind       string
		epsilon    float64
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "ultrank",
		Short: "Rank survey spreadsheet sheets by representativeness",
		Long: `ultrank resamples each sheet's response lines onto a common distance axis,
computes a representative mean profile and a signal-to-noise score per sheet,
ranks the sheets, and writes interpolated tables, a scores CSV, and an
overlay plot per workbook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.Paths.InputDir = inputDir
			}
			if flags.Changed("output") {
				cfg.Paths.OutputDir = outputDir
			}
			if flags.Changed("step") {
				cfg.Analysis.DistanceStep = step
			}
			if flags.Changed("kind") {
				cfg.Analysis.InterpolationKind = kind
			}
			if flags.Changed("epsilon") {
				cfg.Analysis.ScoreEpsilon = epsilon
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			preset, err := cfg.Mode(mode)
			if err != nil {
				return err
			}

			runner := &ultrank.Runner{
				InputDir:  cfg.Paths.InputDir,
				OutputDir: cfg.Paths.OutputDir,
				Opts: ultrank.Options{
					Step:    cfg.Analysis.DistanceStep,
					Kind:    interp.Kind(cfg.Analysis.InterpolationKind),
					Epsilon: cfg.Analysis.ScoreEpsilon,
				},
				Mode: ultrank.Mode{Tag: mode, YAxisLabel: preset.YAxisLabel},
			}
			return runner.Run()
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path (TOML)")
	rootCmd.Flags().StringVarP(&inputDir, "input", "i", "", "Input directory with .xlsx survey files")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for artifacts")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "ec", "Measurement mode preset (e.g. ec, ms)")
	rootCmd.Flags().Float64Var(&step, "step", ultrank.DefaultStep, "Common distance axis step in meters")
	rootCmd.Flags().StringVar(&kind, "kind", string(interp.KindLinear), "Interpolation kind: linear, nearest, zero, slinear, quadratic, cubic")
	rootCmd.Flags().Float64Var(&epsilon, "epsilon", ultrank.DefaultEpsilon, "Score divisor floor")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newConfigCommand())
	return rootCmd
}

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "ultrank.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("refusing to overwrite existing %s", path)
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote sample config to", path)
			return nil
		},
	}

	configCmd.AddCommand(initCmd)
	return configCmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
