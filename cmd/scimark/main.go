// Command scimark runs the SciMark2 numeric kernels and prints their rates.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexshd/scimark"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// cli holds the parsed flags of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	benchmarks  []string
	large       bool
	minTime     float64
	seed        int32
	repeat      int
	configPath  string
	format      string
	metricsFile string
	verbose     bool
	noColor     bool
}

func main() {
	c := &cli{stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCmd(c).Execute(); err != nil {
		slog.Error("scimark failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scimark",
		Short: "Measure floating-point throughput with the SciMark2 kernels",
		Long: `Run the SciMark2 numeric kernels and report each rate in Mflops.

Each kernel is calibrated by doubling its repetition count until one timed
burst lasts at least the minimum time. The composite score is the mean of the
five rates and is printed only when every kernel ran.

Every kernel runs --repeat times (default 1). The reference C driver always
loops the sparse kernel ten times; pass --repeat 10 for comparable averages.

Kernels: fft, sor, monte, sparse, lu (or all)

Examples:
  scimark                          # All kernels, small sizes, 2s each
  scimark -l                       # Out-of-cache problem sizes
  scimark -b fft -b lu -t 0.5      # Two kernels, 0.5s minimum time
  scimark --repeat 3 --format json # Average three runs, JSON output
  scimark --metrics-file out.prom  # Also write node_exporter textfile`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd)
		},
	}

	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	f := cmd.Flags()
	f.StringSliceVarP(&c.benchmarks, "benchmark", "b", []string{scimark.KernelAll},
		"kernel to run, repeatable (all, fft, sor, monte, sparse, lu)")
	f.BoolVarP(&c.large, "large", "l", false,
		"use the out-of-cache problem sizes")
	f.Float64VarP(&c.minTime, "mintime", "t", scimark.DefaultMinTime.Seconds(),
		"minimum time per kernel in seconds")
	f.Int32Var(&c.seed, "seed", scimark.DefaultSeed,
		"random generator seed")
	f.IntVar(&c.repeat, "repeat", scimark.DefaultRepeat,
		"measurements per kernel, averaged in the report")
	f.StringVar(&c.configPath, "config", "",
		"YAML file overlaying the defaults (flags take precedence)")
	f.StringVar(&c.format, "format", scimark.FormatText,
		"report format: text, json or yaml")
	f.StringVar(&c.metricsFile, "metrics-file", "",
		"write Prometheus metrics to this file")
	f.BoolVarP(&c.verbose, "verbose", "v", false,
		"log every calibration attempt")
	f.BoolVar(&c.noColor, "no-color", false,
		"disable colored log output")

	return cmd
}

// buildConfig layers defaults, the config file and explicitly set flags.
func (c *cli) buildConfig(cmd *cobra.Command) (scimark.Config, error) {
	cfg := scimark.DefaultConfig()
	if c.configPath != "" {
		loaded, err := scimark.LoadConfig(c.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("large") && c.large {
		cfg.UseLarge()
	}
	if flags.Changed("mintime") {
		cfg.MinTime = scimark.SecondsToDuration(c.minTime)
	}
	if flags.Changed("seed") {
		cfg.Seed = c.seed
	}
	if flags.Changed("repeat") {
		cfg.Repeat = c.repeat
	}
	if flags.Changed("benchmark") {
		cfg.Kernels = c.benchmarks
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if _, err := scimark.ParseKernels(cfg.Kernels); err != nil {
		return cfg, err
	}
	if err := scimark.ValidateFormat(c.format); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *cli) newLogger() *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(c.stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    c.noColor,
	}))
}

// printPreamble echoes the selected kernels and size preset ahead of the
// banner.
func (c *cli) printPreamble(cmd *cobra.Command, cfg scimark.Config) {
	if cmd.Flags().Changed("benchmark") {
		for _, name := range cfg.Kernels {
			fmt.Fprintf(c.stdout, "Running benchmark: %s\n", name)
		}
	}
	if cfg.Large {
		fmt.Fprintln(c.stdout, "Running in large mode")
	}
}

func (c *cli) run(cmd *cobra.Command) error {
	logger := c.newLogger()
	slog.SetDefault(logger)

	cfg, err := c.buildConfig(cmd)
	if err != nil {
		return err
	}

	metrics := scimark.NewMetrics()
	suite, err := scimark.NewSuite(cfg,
		scimark.WithSuiteLogger(logger),
		scimark.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	if c.format == scimark.FormatText {
		c.printPreamble(cmd, cfg)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, runErr := suite.Run(ctx)
	if report != nil && len(report.Results) > 0 {
		if err := report.Write(c.stdout, c.format); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	if c.metricsFile != "" {
		if err := metrics.WriteTextfile(c.metricsFile); err != nil {
			return err
		}
		logger.Info("metrics written", "path", c.metricsFile)
	}
	return nil
}
