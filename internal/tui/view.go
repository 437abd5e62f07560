package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lineheat/internal/report"
)

const listPaneWidth = 36

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Foreground(lipgloss.Color("205")) // Pinkish

	unselectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(3).
				Foreground(lipgloss.Color("250"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	numStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	paneStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))

	detailStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("208")) // Orange
)

func sourcePaneWidth(total int) int {
	w := total - listPaneWidth - 8
	if w < 20 {
		w = 20
	}
	return w
}

func sourcePaneHeight(total int) int {
	// Title, footer, detail panel, borders.
	h := total - 10
	if h < 5 {
		h = 5
	}
	return h
}

func (m AppModel) View() string {
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}
	if m.Report == nil || len(m.Report.Files) == 0 {
		return "\n  Empty report.\n"
	}
	if m.ShowHelp {
		return m.helpView()
	}

	height := sourcePaneHeight(m.WindowSize.Height)

	left := m.fileListView(height)
	right := m.sourceView()

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(listPaneWidth).Height(height).Render(left),
		paneStyle.Width(sourcePaneWidth(m.WindowSize.Width)).Height(height).Render(right),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("lineheat · execution heatmap"))
	b.WriteString("\n")
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m AppModel) fileListView(height int) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("Files"))
	b.WriteString("\n\n")

	if len(m.FilteredFiles) == 0 {
		b.WriteString(dimStyle.Render("  no matches"))
		return b.String()
	}

	// Window the list around the selection when it outgrows the pane.
	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.FileIdx >= visible {
		start = m.FileIdx - visible + 1
	}

	for i := start; i < len(m.FilteredFiles) && i-start < visible; i++ {
		fi := m.FilteredFiles[i]
		s := m.Summaries[fi]
		label := fmt.Sprintf("%s  %.3fs", truncate(s.Name, listPaneWidth-14), s.TotalTime)
		if i == m.FileIdx {
			b.WriteString(selectedItemStyle.Render("▸ " + label))
		} else {
			b.WriteString(unselectedItemStyle.Render(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m AppModel) sourceView() string {
	if len(m.CurrentRows()) == 0 {
		return dimStyle.Render("(no visible lines)")
	}
	return m.SourceViewport.View()
}

func (m AppModel) renderRow(r DisplayRow, selected bool, width int) string {
	if r.Skip {
		noun := "lines"
		if r.SkipCount == 1 {
			noun = "line"
		}
		return dimStyle.Render(fmt.Sprintf("      · %d %s skipped", r.SkipCount, noun))
	}

	prefix := " "
	if selected {
		prefix = cursorStyle.Render("▌")
	}
	num := numStyle.Render(fmt.Sprintf("%5d ", r.Number))
	text := truncate(r.Text, width-8)

	if r.Background != "" {
		// The heat color is the same hex the HTML renderer uses;
		// dark text keeps the pale end of the ramp readable.
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(r.Background)).
			Foreground(lipgloss.Color("235"))
		text = style.Render(text)
	} else if selected {
		text = lipgloss.NewStyle().Bold(true).Render(text)
	}

	return prefix + num + text
}

// detailView is the tooltip analogue: filled only when the cursor row
// is a line with recorded data, otherwise a quiet placeholder.
func (m AppModel) detailView() string {
	width := listPaneWidth + sourcePaneWidth(m.WindowSize.Width) + 4
	row, ok := m.HighlightedStat()
	if ok {
		pct := 100 * row.Stat.Time / m.Report.TotalRunTime
		noun := "calls"
		if row.Stat.Count == 1 {
			noun = "call"
		}
		return detailStyle.Width(width).Render(fmt.Sprintf(
			"line %d · %.6fs of %.6fs total (%.2f%%) · %d %s",
			row.Number, row.Stat.Time, m.Report.TotalRunTime, pct, row.Stat.Count, noun))
	}
	r, found := m.CursorRow()
	switch {
	case found && !r.Skip:
		return detailStyle.Width(width).Render(dimStyle.Render(
			fmt.Sprintf("line %d · never executed", r.Number)))
	case found:
		return detailStyle.Width(width).Render(dimStyle.Render("skipped region"))
	default:
		return detailStyle.Width(width).Render(dimStyle.Render("no line selected"))
	}
}

func (m AppModel) footerView() string {
	if m.InputMode {
		return " /" + m.InputBuffer.View()
	}
	hints := " ↑/↓ move · tab/←/→ file · / filter · ? help · q quit"
	if m.SearchActive {
		hints += dimStyle.Render("  (filter: " + m.InputBuffer.Value() + ", esc clears)")
	}
	return dimStyle.Render(hints)
}

func (m AppModel) helpView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("lineheat help"))
	b.WriteString("\n\n")
	b.WriteString("  Each line is shaded by the runtime it consumed; darker is hotter.\n")
	b.WriteString("  The cursor row's exact timing shows in the panel below the source.\n")
	b.WriteString("  Lines that never executed carry no shading and no timing detail.\n")
	b.WriteString("  Dim markers stand for source regions omitted from the profile.\n\n")
	b.WriteString("  ↑/k ↓/j      move cursor\n")
	b.WriteString("  pgup/pgdown  page\n")
	b.WriteString("  g/G          first/last row\n")
	b.WriteString("  tab ←/→      switch file\n")
	b.WriteString("  /            filter files\n")
	b.WriteString("  esc          clear filter / close help\n")
	b.WriteString("  q            quit\n\n")
	b.WriteString(dimStyle.Render("  version " + report.Version + " · press ? or esc to return"))
	return b.String()
}

func truncate(s string, max int) string {
	if max < 1 {
		max = 1
	}
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return s[:max-1] + "…"
}
