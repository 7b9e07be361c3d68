package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amitgangrade/mandelbench/internal/storage"
)

// fakeSource serves canned runs keyed by strategy.
type fakeSource struct {
	runs map[string][]storage.RunRecord
	err  error
}

func (f *fakeSource) Strategies() ([]string, error) {
	var ids []string
	for id := range f.runs {
		ids = append(ids, id)
	}
	return ids, f.err
}

func (f *fakeSource) FastestRuns(strategy string, limit int) ([]storage.RunRecord, error) {
	return f.runs[strategy], f.err
}

func (f *fakeSource) RecentRuns(strategy string, limit int) ([]storage.RunRecord, error) {
	runs := f.runs[strategy]
	reversed := make([]storage.RunRecord, len(runs))
	for i, r := range runs {
		reversed[len(runs)-1-i] = r
	}
	return reversed, f.err
}

func (f *fakeSource) GetStrategyStats(strategy string) (*storage.StrategyStats, error) {
	runs := f.runs[strategy]
	stats := &storage.StrategyStats{Strategy: strategy, RunCount: len(runs)}
	checksums := make(map[uint64]bool)
	for _, r := range runs {
		if stats.Best == 0 || r.Elapsed < stats.Best {
			stats.Best = r.Elapsed
		}
		checksums[r.Checksum] = true
	}
	stats.Checksums = len(checksums)
	return stats, f.err
}

func TestBoardNilSource(t *testing.T) {
	m := NewBoardModel(nil, 100, 30)

	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty board should show the empty message")
	}
}

func TestBoardMergesStoredStrategies(t *testing.T) {
	src := &fakeSource{runs: map[string][]storage.RunRecord{
		"legacy": {{Strategy: "legacy", RunIndex: 1, Elapsed: 2 * time.Second, Checksum: 5, CreatedAt: time.Now()}},
		"zeta":   {{Strategy: "zeta", RunIndex: 1, Elapsed: time.Second, Checksum: 5, CreatedAt: time.Now()}},
	}}

	m := NewBoardModel(src, 100, 30)
	if m.Selected() != "legacy" {
		t.Fatalf("Selected() = %q, expected first sorted strategy %q", m.Selected(), "legacy")
	}
	if !strings.Contains(m.View(), "2.0000") {
		t.Error("board should show the stored run time")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(BoardModel)
	if m.Selected() != "zeta" {
		t.Errorf("after tab Selected() = %q, expected zeta", m.Selected())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(BoardModel)
	if m.Selected() != "legacy" {
		t.Errorf("after shift+tab Selected() = %q, expected legacy", m.Selected())
	}
}

func TestBoardFlagsUnstableChecksum(t *testing.T) {
	src := &fakeSource{runs: map[string][]storage.RunRecord{
		"broken": {
			{Strategy: "broken", RunIndex: 1, Elapsed: time.Second, Checksum: 1},
			{Strategy: "broken", RunIndex: 2, Elapsed: time.Second, Checksum: 2},
		},
	}}

	m := NewBoardModel(src, 100, 30)
	if !strings.Contains(m.View(), "2 distinct checksums") {
		t.Error("board should flag distinct checksums")
	}
}

func TestBoardShowsLoadError(t *testing.T) {
	src := &fakeSource{err: errors.New("disk on fire")}

	m := NewBoardModel(src, 100, 30)
	if !strings.Contains(m.View(), "disk on fire") {
		t.Error("board should show the load error")
	}
}

func TestBoardQuit(t *testing.T) {
	m := NewBoardModel(nil, 60, 20)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(BoardModel)
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("q should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("quitting board should render nothing")
	}
}

func TestBoardLayoutFollowsWidth(t *testing.T) {
	m := NewBoardModel(nil, 120, 30)
	if !m.showSidebar {
		t.Error("wide board should show the sidebar")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	m = updated.(BoardModel)
	if m.showSidebar {
		t.Error("narrow board should hide the sidebar")
	}
}
