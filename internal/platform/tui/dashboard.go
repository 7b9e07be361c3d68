package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amitgangrade/mandelbench/internal/bench"
	"github.com/amitgangrade/mandelbench/internal/registry"
)

// runDoneMsg is sent by the runner after each accepted run.
type runDoneMsg struct {
	result bench.RunResult
}

// sessionDoneMsg is sent once the runner returns.
type sessionDoneMsg struct {
	err error
}

// attach makes the runner forward every finished run to send, after any
// OnRun hook it already had.
func attach(runner *bench.Runner, send func(tea.Msg)) {
	forward := runner.OnRun
	runner.OnRun = func(r bench.RunResult) {
		if forward != nil {
			forward(r)
		}
		send(runDoneMsg{result: r})
	}
}

// drive runs the session and reports its end to send.
func drive(ctx context.Context, runner *bench.Runner, send func(tea.Msg)) (*bench.Session, error) {
	sess, err := runner.Run(ctx)
	send(sessionDoneMsg{err: err})
	return sess, err
}

// DashboardModel shows the runs of a session as the runner finishes them.
// It does not animate, so the screen only changes between runs.
type DashboardModel struct {
	title    string
	total    int
	session  *bench.Session
	table    table.Model
	help     help.Model
	keys     dashboardKeyMap
	width    int
	height   int
	err      error
	done     bool
	quitting bool
}

// NewDashboardModel creates a dashboard for runs passes of strategy.
func NewDashboardModel(strategy registry.Strategy, runs, workers, width, height int) DashboardModel {
	if runs <= 0 {
		runs = 1
	}

	m := DashboardModel{
		title:   strategy.Title(),
		total:   runs,
		session: bench.NewSession(strategy.ID(), workers),
		help:    help.New(),
		keys:    dashboardKeyMap{DefaultKeyMap()},
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates the run table sized to the window.
func (m DashboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 5},
		{Title: "Seconds", Width: 10},
		{Title: "Checksum", Width: 14},
	}

	height := m.height - 10 // Title, summary, help and borders
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

// updateTableRows rebuilds the table from the session.
func (m *DashboardModel) updateTableRows() {
	best := m.session.Best()
	rows := make([]table.Row, len(m.session.Runs))
	for i, r := range m.session.Runs {
		marker := ""
		if r.Index == best.Index {
			marker = " *"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Index),
			fmt.Sprintf("%.4f%s", r.Seconds(), marker),
			fmt.Sprintf("%d", r.Checksum),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoBottom()
}

// Init does nothing; the runner drives the dashboard.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) || (m.done && msg.String() == "enter") {
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil

	case runDoneMsg:
		if m.quitting || m.done {
			return m, nil
		}
		if err := m.session.Record(msg.result); err != nil {
			m.err = err
		}
		m.updateTableRows()
		return m, nil

	case sessionDoneMsg:
		m.done = true
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("MANDELBENCH - %s", m.title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render(m.err.Error())
	case m.done:
		status = okStyle.Render(fmt.Sprintf("Done: %d runs", len(m.session.Runs)))
	default:
		status = titleStyle.Render(fmt.Sprintf("Running %d of %d...", len(m.session.Runs)+1, m.total))
	}
	b.WriteString(status)
	b.WriteString("\n")

	if len(m.session.Runs) == 0 {
		b.WriteString(panelStyle.Render(mutedStyle.Render("Waiting for the first run...")))
	} else {
		b.WriteString(panelStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if len(m.session.Runs) > 0 {
		stats := m.session.Stats()
		summary := fmt.Sprintf("Best %.4fs  Mean %.4fs  Median %.4fs  Checksum %d",
			stats.Fastest.Seconds(), stats.Mean.Seconds(), stats.Median.Seconds(), m.session.Checksum())
		b.WriteString(summary)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Session returns the runs shown so far.
func (m DashboardModel) Session() *bench.Session {
	return m.session
}

// Err returns the error that stopped the session, if any.
func (m DashboardModel) Err() error {
	return m.err
}

// Done reports whether the session finished without error.
func (m DashboardModel) Done() bool {
	return m.done && m.err == nil
}

// RunDashboard executes runner while showing its progress, and returns the
// runner's session. Quitting early cancels the remaining runs; the session
// then holds the runs that completed and is not saved.
func RunDashboard(runner bench.Runner, width, height int) (*bench.Session, error) {
	if runner.Strategy == nil {
		return nil, errors.New("tui: no strategy")
	}

	model := NewDashboardModel(runner.Strategy, runner.Runs, runner.Workers, width, height)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	attach(&runner, p.Send)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type outcome struct {
		sess *bench.Session
		err  error
	}
	result := make(chan outcome, 1)
	go func() {
		sess, err := drive(ctx, &runner, p.Send)
		result <- outcome{sess: sess, err: err}
	}()

	_, runErr := p.Run()
	cancel()
	out := <-result

	if runErr != nil {
		return out.sess, runErr
	}
	if errors.Is(out.err, context.Canceled) {
		return out.sess, nil
	}
	return out.sess, out.err
}
