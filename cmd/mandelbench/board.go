package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amitgangrade/mandelbench/internal/platform/tui"
	"github.com/amitgangrade/mandelbench/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse stored runs interactively",
	Long: `Open an interactive board of stored runs, one strategy at a time.

Controls:
  Tab/Shift+Tab  - Switch strategy
  S              - Toggle fastest/recent ordering
  R              - Reload from the database
  Q/Esc          - Quit`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("board requires an interactive terminal")
	}

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(fd); err == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return tui.RunBoard(store, width, height)
}
