package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.SourceViewport.Width = sourcePaneWidth(msg.Width)
		m.SourceViewport.Height = sourcePaneHeight(msg.Height)
		m.clampCursor()
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.performSearch()
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.SearchActive = false
				m.InputBuffer.SetValue("")
				m.performSearch()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.SearchActive {
				m.InputBuffer.Blur()
				m.SearchActive = false
				m.InputBuffer.SetValue("")
				m.performSearch()
				return m, nil
			}
			if m.ShowHelp {
				m.ShowHelp = false
				return m, nil
			}
		case "up", "k":
			if m.CursorIdx > 0 {
				m.CursorIdx--
			}
		case "down", "j":
			if m.CursorIdx < len(m.CurrentRows())-1 {
				m.CursorIdx++
			}
		case "pgup":
			m.CursorIdx -= m.SourceViewport.Height
			m.clampCursor()
		case "pgdown":
			m.CursorIdx += m.SourceViewport.Height
			m.clampCursor()
		case "g":
			m.CursorIdx = 0
		case "G":
			m.CursorIdx = len(m.CurrentRows()) - 1
			m.clampCursor()
		case "left", "h", "shift+tab":
			if m.FileIdx > 0 {
				m.FileIdx--
				m.CursorIdx = 0
			}
		case "right", "l", "tab":
			if m.FileIdx < len(m.FilteredFiles)-1 {
				m.FileIdx++
				m.CursorIdx = 0
			}
		case "?":
			m.ShowHelp = !m.ShowHelp
		case "/":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
		m.syncViewport()
	}

	return m, cmd
}

// syncViewport re-renders the source pane content and keeps the
// cursor row inside the visible window.
func (m *AppModel) syncViewport() {
	rows := m.CurrentRows()
	width := sourcePaneWidth(m.WindowSize.Width) - 2
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = m.renderRow(r, i == m.CursorIdx, width)
	}
	m.SourceViewport.SetContent(strings.Join(lines, "\n"))

	if m.SourceViewport.Height <= 0 {
		return
	}
	if m.CursorIdx < m.SourceViewport.YOffset {
		m.SourceViewport.SetYOffset(m.CursorIdx)
	} else if m.CursorIdx >= m.SourceViewport.YOffset+m.SourceViewport.Height {
		m.SourceViewport.SetYOffset(m.CursorIdx - m.SourceViewport.Height + 1)
	}
}

// performSearch filters the file list by substring match on name.
func (m *AppModel) performSearch() {
	term := strings.ToLower(m.InputBuffer.Value())
	if term == "" {
		m.SearchActive = false
		m.FilteredFiles = make([]int, len(m.Report.Files))
		for i := range m.Report.Files {
			m.FilteredFiles[i] = i
		}
	} else {
		m.SearchActive = true
		var result []int
		for i, f := range m.Report.Files {
			if strings.Contains(strings.ToLower(f.Name), term) {
				result = append(result, i)
			}
		}
		m.FilteredFiles = result
	}

	if m.FileIdx >= len(m.FilteredFiles) {
		if len(m.FilteredFiles) > 0 {
			m.FileIdx = len(m.FilteredFiles) - 1
		} else {
			m.FileIdx = 0
		}
	}
	m.CursorIdx = 0
	m.syncViewport()
}

func (m *AppModel) clampCursor() {
	rows := m.CurrentRows()
	if m.CursorIdx >= len(rows) {
		m.CursorIdx = len(rows) - 1
	}
	if m.CursorIdx < 0 {
		m.CursorIdx = 0
	}
}
