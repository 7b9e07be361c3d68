package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amitgangrade/mandelbench/internal/storage"
)

var flagClearAll bool

var clearCmd = &cobra.Command{
	Use:   "clear [strategy]",
	Short: "Delete stored runs",
	Long: `Delete the stored runs of one strategy, or of every strategy with --all.

Examples:
  mandelbench clear shuffled
  mandelbench clear --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&flagClearAll, "all", false, "Delete runs of every strategy")
}

func runClear(cmd *cobra.Command, args []string) error {
	var strategy string
	switch {
	case len(args) == 1 && flagClearAll:
		return fmt.Errorf("give either a strategy or --all, not both")
	case len(args) == 1:
		strategy = args[0]
	case !flagClearAll:
		return fmt.Errorf("give a strategy or --all")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ClearRuns(strategy)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d runs.\n", n)
	return nil
}
