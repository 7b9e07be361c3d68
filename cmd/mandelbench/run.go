package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amitgangrade/mandelbench/internal/bench"
	"github.com/amitgangrade/mandelbench/internal/config"
	"github.com/amitgangrade/mandelbench/internal/platform/tui"
	"github.com/amitgangrade/mandelbench/internal/registry"
	"github.com/amitgangrade/mandelbench/internal/storage"
)

var (
	flagConfig   string
	flagPreset   string
	flagStrategy string
	flagRuns     int
	flagWorkers  int
	flagSeed     uint64
	flagSave     bool
	flagTUI      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark",
	Long: `Run the benchmark with a chosen evaluation strategy.

Every run computes the full grid from scratch. With --runs N the best of
the N runs is reported as the execution time; every run must produce the
same checksum.

Configuration is read from --config, ~/.mandelbench/config.yaml or
./configs/bench.yaml, in that order. Flags override the loaded values.

Presets:
  quick    - One serial run
  standard - Best of 20 serial runs
  parallel - Best of 20 row-band runs

Examples:
  mandelbench run
  mandelbench run --runs 20
  mandelbench run --strategy rows --workers 4
  mandelbench run --strategy shuffled --seed 42 --save
  mandelbench run --preset parallel --tui`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	runCmd.Flags().StringVar(&flagPreset, "preset", "", "Run preset: quick, standard, parallel")
	runCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "serial", "Evaluation strategy (see 'mandelbench list')")
	runCmd.Flags().IntVarP(&flagRuns, "runs", "n", 1, "Number of timed runs; the best is reported")
	runCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "Goroutines for parallel strategies (0 = GOMAXPROCS)")
	runCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Permutation seed for the shuffled strategy (0 = default)")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Save runs to the database")
	runCmd.Flags().BoolVar(&flagTUI, "tui", false, "Show an interactive dashboard while running")
}

// loadRunConfig resolves the run configuration: file, then preset, then flags.
func loadRunConfig(cmd *cobra.Command) (config.BenchConfig, error) {
	cfg, err := config.LoadBench(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagPreset != "" {
		if err := config.ApplyPreset(&cfg, config.Preset(flagPreset)); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Strategy = flagStrategy
	}
	if flags.Changed("runs") {
		cfg.Runs = flagRuns
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("save") {
		cfg.Save = flagSave
	}
	if flags.Changed("db") || cfg.DBPath == "" {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = flagLogLevel
	}

	return cfg, cfg.Validate()
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	if !registry.Exists(cfg.Strategy) {
		return fmt.Errorf("unknown strategy %q (run 'mandelbench list' to see available strategies)", cfg.Strategy)
	}

	strategy, err := registry.Create(cfg.Strategy, registry.Options{
		Workers: cfg.Workers,
		Seed:    cfg.Seed,
	})
	if err != nil {
		return err
	}
	logger.Debug("config resolved",
		"strategy", cfg.Strategy,
		"runs", cfg.Runs,
		"workers", cfg.Workers,
		"save", cfg.Save,
	)

	var store *storage.Store
	if cfg.Save {
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	runner := bench.Runner{
		Strategy: strategy,
		Runs:     cfg.Runs,
		Workers:  cfg.Workers,
		Logger:   logger,
	}
	if store != nil {
		runner.Saver = store
	}

	var sess *bench.Session
	if flagTUI {
		sess, err = runDashboard(runner)
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		sess, err = runner.Run(ctx)
	}

	if sess != nil && len(sess.Runs) > 0 && !errors.Is(err, bench.ErrChecksumMismatch) {
		if reportErr := bench.Report(cmd.OutOrStdout(), sess); reportErr != nil {
			return reportErr
		}
	}
	return err
}

// runDashboard runs the session inside the interactive dashboard.
func runDashboard(runner bench.Runner) (*bench.Session, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("--tui requires an interactive terminal")
	}

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(fd); err == nil {
		width = w
		height = h
	}

	return tui.RunDashboard(runner, width, height)
}
