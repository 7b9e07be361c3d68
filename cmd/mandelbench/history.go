package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amitgangrade/mandelbench/internal/storage"
)

var (
	flagHistoryLimit   int
	flagHistoryFastest bool
)

var historyCmd = &cobra.Command{
	Use:   "history [strategy]",
	Short: "Show stored runs",
	Long: `Display stored runs, newest first. Without a strategy every strategy is
shown. With --fastest a strategy is required and its fastest runs are listed.

Examples:
  mandelbench history
  mandelbench history serial --limit 5
  mandelbench history rows --fastest`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryFastest, "fastest", false, "Order by elapsed time instead of recency")
}

func runHistory(cmd *cobra.Command, args []string) error {
	var strategy string
	if len(args) == 1 {
		strategy = args[0]
	}
	if flagHistoryFastest && strategy == "" {
		return fmt.Errorf("--fastest needs a strategy")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var runs []storage.RunRecord
	if flagHistoryFastest {
		runs, err = store.FastestRuns(strategy, flagHistoryLimit)
	} else {
		runs, err = store.RecentRuns(strategy, flagHistoryLimit)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'mandelbench run --save' to record some!")
		return nil
	}

	fmt.Fprintf(out, "  %-10s  %-7s  %-3s  %-10s  %-12s  %s\n", "Strategy", "Workers", "Run", "Seconds", "Checksum", "Date")
	fmt.Fprintf(out, "  %-10s  %-7s  %-3s  %-10s  %-12s  %s\n", "--------", "-------", "---", "-------", "--------", "----")

	for _, r := range runs {
		fmt.Fprintf(out, "  %-10s  %-7d  %-3d  %-10.4f  %-12d  %s\n",
			r.Strategy, r.Workers, r.RunIndex, r.Elapsed.Seconds(), r.Checksum,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if strategy != "" {
		stats, err := store.GetStrategyStats(strategy)
		if err == nil && stats.RunCount > 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Best: %.4fs over %d runs\n", stats.Best.Seconds(), stats.RunCount)
			if stats.Checksums > 1 {
				fmt.Fprintf(out, "Warning: %d distinct checksums recorded\n", stats.Checksums)
			}
		}
	}
	return nil
}
