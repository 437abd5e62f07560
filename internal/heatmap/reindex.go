package heatmap

import (
	"fmt"
	"html/template"
	"strings"

	"lineheat/internal/report"
)

// RenderedFile is one file's concatenated row markup plus the lookup
// tables that correlate rendered rows back to timing data. Positions
// are dense and zero-based, assigned to visible lines in display
// order; skip markers occupy no positions. Absence from the maps means
// the line never ran.
type RenderedFile struct {
	Name       string          `json:"name"`
	Rows       template.HTML   `json:"rows"`
	TimeByPos  map[int]float64 `json:"time_by_pos"`
	CountByPos map[int]int     `json:"count_by_pos"`
	Positions  int             `json:"positions"`
}

var lineTmpl = template.Must(template.New("line").Parse(
	`<div class="heat-line" data-pos="{{.Pos}}"{{if .Background}} style="background-color: {{.Background}}"{{end}}>` +
		`<span class="line-num">{{.Number}}</span>` +
		`<span class="line-code">{{.Code}}</span>` +
		`</div>` + "\n"))

type lineRow struct {
	Pos        int
	Number     int
	Background string
	Code       template.HTML
}

// formatLine produces one self-contained visual row: number cell,
// highlighted code cell, and a background override when the line has
// recorded time. Pure; safe to call in any order.
func formatLine(pos, number int, text, language, background string) template.HTML {
	var buf strings.Builder
	err := lineTmpl.Execute(&buf, lineRow{
		Pos:        pos,
		Number:     number,
		Background: background,
		Code:       Highlight(language, text),
	})
	if err != nil {
		// The template is static and the data is plain values; an
		// execution error here is a programming bug.
		panic(err)
	}
	return template.HTML(buf.String())
}

func formatSkip(count int) template.HTML {
	noun := "lines"
	if count == 1 {
		noun = "line"
	}
	return template.HTML(fmt.Sprintf("<div class=\"skip-marker\">%d %s skipped</div>\n", count, noun))
}

// Reindex walks one file's entries in order, assigning a dense
// zero-based position to every visible line and translating the
// per-line-number statistics into per-position tables. Skip entries
// emit a collapsed marker and touch neither the counter nor the maps.
func Reindex(f *report.FileReport, scale Scale) RenderedFile {
	var rows strings.Builder
	timeByPos := make(map[int]float64)
	countByPos := make(map[int]int)
	pos := 0

	for _, e := range f.Entries {
		switch e := e.(type) {
		case report.Line:
			stat, recorded := f.StatAt(e.Number)
			background := ""
			if recorded && stat.Time > 0 {
				background = scale.ColorFor(stat.Time)
			}
			rows.WriteString(string(formatLine(pos, e.Number, e.Text, f.Language, background)))
			if recorded {
				timeByPos[pos] = stat.Time
				countByPos[pos] = stat.Count
			}
			pos++
		case report.Skip:
			rows.WriteString(string(formatSkip(e.Count)))
		default:
			panic(fmt.Sprintf("unknown source entry type %T", e))
		}
	}

	return RenderedFile{
		Name:       f.Name,
		Rows:       template.HTML(rows.String()),
		TimeByPos:  timeByPos,
		CountByPos: countByPos,
		Positions:  pos,
	}
}
