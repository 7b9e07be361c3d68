// mandelbench times an escape-time Mandelbrot computation over a fixed
// 1000x1000 grid and reports the elapsed time and a checksum of the
// iteration counts.
//
// Usage:
//
//	mandelbench                  - One serial run, prints time and checksum
//	mandelbench run              - Configurable run (strategy, runs, workers)
//	mandelbench list             - List evaluation strategies
//	mandelbench history          - Show stored runs
//	mandelbench compare          - Compare strategies over stored runs
//	mandelbench clear            - Delete stored runs
//	mandelbench board            - Browse stored runs interactively
//	mandelbench serve            - Serve the run board over SSH
//
// Global flags:
//
//	--db <path>          - Set database path (default: ~/.mandelbench/runs.db)
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amitgangrade/mandelbench/internal/bench"
	"github.com/amitgangrade/mandelbench/internal/strategies/serial"

	// Import strategies to register them
	_ "github.com/amitgangrade/mandelbench/internal/strategies/permuted"
	_ "github.com/amitgangrade/mandelbench/internal/strategies/rows"
)

const defaultDBPath = "~/.mandelbench/runs.db"

var (
	// Global flags
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mandelbench",
	Short: "Mandelbrot escape-time CPU benchmark",
	Long: `mandelbench computes the escape-time iteration count of every pixel of a
1000x1000 grid (iteration bound 256) and reports how long it took.

Without a subcommand it performs one serial run and prints:
  Execution Time: <seconds>s
  Checksum: <sum of all iteration counts>

Available commands:
  run      - Configurable benchmark run
  list     - Show evaluation strategies
  history  - Show stored runs
  compare  - Compare strategies over stored runs
  clear    - Delete stored runs
  board    - Interactive run browser
  serve    - Start SSH server for the run browser

Examples:
  mandelbench
  mandelbench run --runs 20
  mandelbench run --strategy rows --workers 8 --save
  mandelbench compare`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDefault,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}

// runDefault performs the plain benchmark: one serial pass, no config, no storage.
func runDefault(cmd *cobra.Command, _ []string) error {
	sess := bench.NewSession(serial.ID, 1)
	if err := sess.Record(bench.RunOnce(serial.Strategy{}, 1)); err != nil {
		return err
	}
	return bench.Report(cmd.OutOrStdout(), sess)
}

// newLogger builds the stderr logger used by every command.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mandelbench",
		Level:           lvl,
	}), nil
}
