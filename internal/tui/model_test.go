package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lineheat/internal/heatmap"
	"lineheat/internal/report"
)

func testReport() *report.Report {
	return &report.Report{
		TotalRunTime: 10.0,
		Files: []report.FileReport{
			{
				Name:     "app/main.py",
				Language: "python",
				Entries: []report.SourceEntry{
					report.Line{Number: 1, Text: "a = 1"},
					report.Skip{Count: 3},
					report.Line{Number: 5, Text: "b = 2"},
				},
				TimeByLine:  map[int]float64{1: 0.5},
				CountByLine: map[int]int{1: 4},
			},
			{
				Name:     "lib/util.py",
				Language: "python",
				Entries: []report.SourceEntry{
					report.Line{Number: 1, Text: "def f():"},
				},
				TimeByLine:  map[int]float64{},
				CountByLine: map[int]int{},
			},
		},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBuildRowsPositions(t *testing.T) {
	rep := testReport()
	rows := BuildRows(&rep.Files[0], heatmap.NewScale(rep.TotalRunTime))
	if len(rows) != 3 {
		t.Fatalf("expected 3 display rows, got %d", len(rows))
	}
	if rows[0].Skip || rows[0].Pos != 0 || rows[0].Number != 1 {
		t.Fatalf("row 0 wrong: %+v", rows[0])
	}
	if !rows[1].Skip || rows[1].SkipCount != 3 {
		t.Fatalf("row 1 should be the skip marker: %+v", rows[1])
	}
	if rows[2].Skip || rows[2].Pos != 1 || rows[2].Number != 5 {
		t.Fatalf("row 2 wrong: %+v", rows[2])
	}
	if !rows[0].Recorded || rows[0].Background == "" {
		t.Fatalf("executed row should be recorded and colored: %+v", rows[0])
	}
	if rows[2].Recorded || rows[2].Background != "" {
		t.Fatalf("never-executed row should be inert and uncolored: %+v", rows[2])
	}
}

func TestHighlightedStatStateMachine(t *testing.T) {
	rep := testReport()
	m := InitialModel(rep, heatmap.NewScale(rep.TotalRunTime))

	// Cursor starts on row 0 (recorded): Highlighted.
	row, ok := m.HighlightedStat()
	if !ok {
		t.Fatalf("cursor on recorded row should highlight")
	}
	if row.Stat.Time != 0.5 || row.Stat.Count != 4 {
		t.Fatalf("highlighted stat wrong: %+v", row.Stat)
	}

	// Move onto the skip marker: inert.
	m.CursorIdx = 1
	if _, ok := m.HighlightedStat(); ok {
		t.Fatalf("skip marker must never highlight")
	}

	// Move onto the never-executed line: inert.
	m.CursorIdx = 2
	if _, ok := m.HighlightedStat(); ok {
		t.Fatalf("never-executed line must never highlight")
	}

	// Back to row 0: highlighting resumes (no sticky state).
	m.CursorIdx = 0
	if _, ok := m.HighlightedStat(); !ok {
		t.Fatalf("returning to a recorded row should highlight again")
	}
}

func TestUpdateCursorAndFileNavigation(t *testing.T) {
	rep := testReport()
	m := InitialModel(rep, heatmap.NewScale(rep.TotalRunTime))

	next, _ := m.Update(key("j"))
	m = next.(AppModel)
	if m.CursorIdx != 1 {
		t.Fatalf("j should move cursor down, got %d", m.CursorIdx)
	}

	// Cursor stops at the last row.
	for i := 0; i < 10; i++ {
		next, _ = m.Update(key("j"))
		m = next.(AppModel)
	}
	if m.CursorIdx != 2 {
		t.Fatalf("cursor should clamp at last row, got %d", m.CursorIdx)
	}

	next, _ = m.Update(key("l"))
	m = next.(AppModel)
	if m.CurrentFile() != 1 || m.CursorIdx != 0 {
		t.Fatalf("l should switch file and reset cursor: file=%d cursor=%d",
			m.CurrentFile(), m.CursorIdx)
	}

	next, _ = m.Update(key("h"))
	m = next.(AppModel)
	if m.CurrentFile() != 0 {
		t.Fatalf("h should switch back to file 0, got %d", m.CurrentFile())
	}
}

func TestSearchFiltersFiles(t *testing.T) {
	rep := testReport()
	m := InitialModel(rep, heatmap.NewScale(rep.TotalRunTime))

	m.InputBuffer.SetValue("util")
	m.performSearch()
	if len(m.FilteredFiles) != 1 || m.FilteredFiles[0] != 1 {
		t.Fatalf("filter should match lib/util.py only: %v", m.FilteredFiles)
	}
	if m.CurrentFile() != 1 {
		t.Fatalf("selection should land on the match, got %d", m.CurrentFile())
	}

	m.InputBuffer.SetValue("")
	m.performSearch()
	if len(m.FilteredFiles) != 2 {
		t.Fatalf("clearing the filter should restore all files: %v", m.FilteredFiles)
	}

	m.InputBuffer.SetValue("nomatch")
	m.performSearch()
	if len(m.FilteredFiles) != 0 || m.CurrentFile() != -1 {
		t.Fatalf("unmatched filter should leave no selection: %v", m.FilteredFiles)
	}
}

func TestViewSurvivesEmptySelection(t *testing.T) {
	rep := testReport()
	m := InitialModel(rep, heatmap.NewScale(rep.TotalRunTime))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(AppModel)

	m.InputBuffer.SetValue("nomatch")
	m.performSearch()
	if v := m.View(); v == "" {
		t.Fatalf("view should render even with no matching files")
	}
}
