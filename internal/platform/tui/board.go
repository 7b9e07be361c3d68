package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amitgangrade/mandelbench/internal/registry"
	"github.com/amitgangrade/mandelbench/internal/storage"
)

// Board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show strategy sidebar
	sidebarWidth       = 22  // Width of strategy sidebar
	maxRuns            = 100 // Max runs to load
)

// RunSource is the subset of the store the board reads from.
type RunSource interface {
	Strategies() ([]string, error)
	FastestRuns(strategy string, limit int) ([]storage.RunRecord, error)
	RecentRuns(strategy string, limit int) ([]storage.RunRecord, error)
	GetStrategyStats(strategy string) (*storage.StrategyStats, error)
}

var _ RunSource = (*storage.Store)(nil)

// BoardModel is the Bubble Tea model for browsing stored runs.
type BoardModel struct {
	source      RunSource
	strategies  []string
	cursor      int
	fastest     bool // Sort by elapsed time instead of recency
	runs        []storage.RunRecord
	stats       *storage.StrategyStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        KeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewBoardModel creates a new board model.
// A nil source shows an empty board.
func NewBoardModel(source RunSource, width, height int) BoardModel {
	h := help.New()
	h.ShowAll = false

	m := BoardModel{
		source:      source,
		fastest:     true,
		keys:        DefaultKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.strategies = m.loadStrategies()
	m.table = m.createTable()
	m.loadRuns()

	return m
}

// loadStrategies merges registered strategies with those found in storage,
// so runs of strategies no longer compiled in stay visible.
func (m *BoardModel) loadStrategies() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, id := range registry.IDs() {
		seen[id] = true
		ids = append(ids, id)
	}

	if m.source != nil {
		stored, err := m.source.Strategies()
		if err != nil {
			m.loadErr = err
		}
		for _, id := range stored {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	sort.Strings(ids)
	return ids
}

// createTable creates a new table with appropriate columns.
func (m *BoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Seconds", Width: 10},
		{Title: "Checksum", Width: 12},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if tableWidth > 50 {
		columns[3].Width = min(tableWidth-36, 20)
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	t.SetStyles(tableStyles())
	return t
}

// current returns the selected strategy ID, or "" if there are none.
func (m BoardModel) current() string {
	if len(m.strategies) == 0 {
		return ""
	}
	return m.strategies[m.cursor]
}

// loadRuns loads runs and stats for the selected strategy.
func (m *BoardModel) loadRuns() {
	m.runs = nil
	m.stats = nil

	id := m.current()
	if m.source == nil || id == "" {
		m.updateTableRows()
		return
	}

	var err error
	if m.fastest {
		m.runs, err = m.source.FastestRuns(id, maxRuns)
	} else {
		m.runs, err = m.source.RecentRuns(id, maxRuns)
	}
	if err != nil {
		m.loadErr = err
		m.runs = nil
	}

	if stats, err := m.source.GetStrategyStats(id); err == nil {
		m.stats = stats
	} else {
		m.loadErr = err
	}

	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *BoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%.4f", r.Elapsed.Seconds()),
			fmt.Sprintf("%d", r.Checksum),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the board model.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if len(m.strategies) > 0 {
				m.cursor = (m.cursor + 1) % len(m.strategies)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.strategies) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.strategies) - 1
				}
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Sort):
			m.fastest = !m.fastest
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			current := m.current()
			m.loadErr = nil
			m.strategies = m.loadStrategies()
			m.cursor = 0
			for i, id := range m.strategies {
				if id == current {
					m.cursor = i
				}
			}
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	order := "FASTEST"
	if !m.fastest {
		order = "RECENT"
	}
	title := fmt.Sprintf("%s RUNS", order)
	if id := m.current(); id != "" {
		title = fmt.Sprintf("%s RUNS - %s", order, id)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}
	b.WriteString("\n")

	if summary := m.renderSummary(); summary != "" {
		b.WriteString(summary)
		b.WriteString("\n")
	}
	if m.loadErr != nil {
		b.WriteString(errorStyle.Render(m.loadErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderWideLayout renders the board with a strategy sidebar.
func (m BoardModel) renderWideLayout() string {
	sidebarStyle := panelStyle.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Strategies\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.strategies {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(colorAccent)
		}
		sidebar.WriteString(style.Render(cursor + id))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		panelStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders strategy tabs above the table.
func (m BoardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabs := make([]string, len(m.strategies))
	for i, id := range m.strategies {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(id)
		} else {
			tabs[i] = tabStyle.Render(id)
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && m.current() != "" {
		tabLine = fmt.Sprintf("< %s >", m.current())
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(panelStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m BoardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return mutedStyle.Padding(2, 4).Render("No runs recorded yet.\nRun 'mandelbench run --save' to add some!")
	}
	return m.table.View()
}

// renderSummary renders aggregate statistics for the selected strategy.
func (m BoardModel) renderSummary() string {
	if m.stats == nil || m.stats.RunCount == 0 {
		return ""
	}

	summary := fmt.Sprintf("%d runs  Best %.4fs  Average %.4fs",
		m.stats.RunCount, m.stats.Best.Seconds(), m.stats.Average.Seconds())
	if m.stats.Checksums > 1 {
		return summary + "  " + errorStyle.Render(fmt.Sprintf("%d distinct checksums", m.stats.Checksums))
	}
	return summary + "  " + okStyle.Render("checksum stable")
}

// IsQuitting returns true if user wants to quit.
func (m BoardModel) IsQuitting() bool {
	return m.quitting
}

// Selected returns the strategy currently shown.
func (m BoardModel) Selected() string {
	return m.current()
}

// RunBoard runs the board screen until the user quits.
func RunBoard(source RunSource, width, height int) error {
	model := NewBoardModel(source, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
