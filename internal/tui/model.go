package tui

import (
	"lineheat/internal/heatmap"
	"lineheat/internal/report"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DisplayRow is one row of the source pane: a visible line carrying
// its reindexed position, or a collapsed skip marker. Markers take no
// position and never carry data.
type DisplayRow struct {
	Skip      bool
	SkipCount int

	Pos        int
	Number     int
	Text       string
	Stat       report.Stat
	Recorded   bool
	Background string // "#rrggbb"; empty when the line has no recorded time
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Report    *report.Report
	Scale     heatmap.Scale
	Summaries []report.FileSummary
	Rows      [][]DisplayRow // per file, built once at startup
	Err       error

	// UI State
	FileIdx    int // index into FilteredFiles
	CursorIdx  int // index into the current file's rows
	WindowSize tea.WindowSizeMsg
	ShowHelp   bool

	// Search State
	InputMode     bool
	InputBuffer   textinput.Model
	FilteredFiles []int // indices of Report.Files to show
	SearchActive  bool

	// Components
	SourceViewport viewport.Model
}

// InitialModel builds the full view state up front: the report is
// already in memory, so every file's rows are reindexed before the
// first frame and never rebuilt.
func InitialModel(rep *report.Report, scale heatmap.Scale) AppModel {
	ti := textinput.New()
	ti.Placeholder = "File name..."
	ti.CharLimit = 80
	ti.Width = 24

	rows := make([][]DisplayRow, len(rep.Files))
	filtered := make([]int, len(rep.Files))
	for i := range rep.Files {
		rows[i] = BuildRows(&rep.Files[i], scale)
		filtered[i] = i
	}

	return AppModel{
		Report:        rep,
		Scale:         scale,
		Summaries:     rep.Summaries(),
		Rows:          rows,
		FilteredFiles: filtered,
		InputBuffer:   ti,
	}
}

// BuildRows walks one file's entries in order, assigning dense
// zero-based positions to visible lines, exactly like the HTML
// reindexer. Skip entries become inert marker rows.
func BuildRows(f *report.FileReport, scale heatmap.Scale) []DisplayRow {
	var rows []DisplayRow
	pos := 0
	for _, e := range f.Entries {
		switch e := e.(type) {
		case report.Line:
			stat, recorded := f.StatAt(e.Number)
			background := ""
			if recorded && stat.Time > 0 {
				background = scale.ColorFor(stat.Time)
			}
			rows = append(rows, DisplayRow{
				Pos:        pos,
				Number:     e.Number,
				Text:       e.Text,
				Stat:       stat,
				Recorded:   recorded,
				Background: background,
			})
			pos++
		case report.Skip:
			rows = append(rows, DisplayRow{Skip: true, SkipCount: e.Count})
		}
	}
	return rows
}

// CurrentFile returns the index into Report.Files for the selection,
// or -1 when the filter matches nothing.
func (m *AppModel) CurrentFile() int {
	if len(m.FilteredFiles) == 0 || m.FileIdx >= len(m.FilteredFiles) {
		return -1
	}
	return m.FilteredFiles[m.FileIdx]
}

// CurrentRows returns the display rows of the selected file.
func (m *AppModel) CurrentRows() []DisplayRow {
	fi := m.CurrentFile()
	if fi < 0 {
		return nil
	}
	return m.Rows[fi]
}

// CursorRow returns the row under the cursor, if any.
func (m *AppModel) CursorRow() (DisplayRow, bool) {
	rows := m.CurrentRows()
	if m.CursorIdx < 0 || m.CursorIdx >= len(rows) {
		return DisplayRow{}, false
	}
	return rows[m.CursorIdx], true
}

// HighlightedStat is the cursor-as-hover rule: a row is highlighted
// only when it is a visible line with recorded data. Skip markers and
// never-executed lines are inert.
func (m *AppModel) HighlightedStat() (DisplayRow, bool) {
	row, ok := m.CursorRow()
	if !ok || row.Skip || !row.Recorded {
		return DisplayRow{}, false
	}
	return row, true
}

func (m AppModel) Init() tea.Cmd {
	return nil
}
