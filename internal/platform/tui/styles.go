// Package tui provides the Bubble Tea screens of mandelbench: the live run
// dashboard, the stored-run board and the SSH server that serves the board.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Shared palette (ANSI 256-color codes).
const (
	colorAccent = lipgloss.Color("229")
	colorSelect = lipgloss.Color("57")
	colorBorder = lipgloss.Color("240")
	colorMuted  = lipgloss.Color("241")
	colorError  = lipgloss.Color("9")
	colorOK     = lipgloss.Color("10")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	helpStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	errorStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(colorOK)

	tabStyle       = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Background(colorSelect).
			Padding(0, 1)
)

// tableStyles returns the table styles shared by every screen.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorAccent).
		Background(colorSelect).
		Bold(false)
	return s
}

// centerText pads text on the left so it is centered within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
