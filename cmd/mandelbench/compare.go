package main

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/amitgangrade/mandelbench/internal/bench"
	"github.com/amitgangrade/mandelbench/internal/registry"
	"github.com/amitgangrade/mandelbench/internal/storage"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare strategies over stored runs",
	Long: `Print fastest, slowest, mean and median seconds for every strategy,
computed from the runs in the database and sorted by fastest run.
Strategies without stored runs are listed as N/A.

Examples:
  mandelbench run --strategy serial --runs 10 --save
  mandelbench run --strategy rows --runs 10 --save
  mandelbench compare`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stored, err := store.Strategies()
	if err != nil {
		return err
	}

	ids := registry.IDs()
	for _, id := range stored {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	rows := make([]bench.Comparison, 0, len(ids))
	for _, id := range ids {
		ds, err := store.Durations(id)
		if err != nil {
			return err
		}
		rows = append(rows, bench.Comparison{Strategy: id, Stats: bench.Summarize(ds)})
	}

	return bench.WriteComparison(cmd.OutOrStdout(), rows)
}
