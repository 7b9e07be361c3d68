package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amitgangrade/mandelbench/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List evaluation strategies",
	Long:  `Shows every pixel evaluation strategy compiled into mandelbench.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	strategies := registry.List()
	out := cmd.OutOrStdout()

	if len(strategies) == 0 {
		fmt.Fprintln(out, "No strategies available.")
		return
	}

	fmt.Fprintln(out, "Available strategies:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range strategies {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range strategies {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'mandelbench run --strategy <id>' to benchmark one.")
}
