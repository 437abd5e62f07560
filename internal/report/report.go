package report

// Version of the lineheat tool.
const Version = "0.3.0"

// Report is one profiling run across one or more source files.
// It is assembled by an external profiler; lineheat only renders it.
type Report struct {
	TotalRunTime float64      // Maximum observed runtime across all files, seconds
	Files        []FileReport // In the order the profiler emitted them
}

// FileReport holds one file's source entries and per-line statistics.
type FileReport struct {
	Name        string          // File path; also the in-page anchor
	Language    string          // Lexer name for highlighting (e.g. "python")
	Entries     []SourceEntry   // Visible lines and skip regions, in file order
	TimeByLine  map[int]float64 // Original line number -> cumulative seconds
	CountByLine map[int]int     // Original line number -> execution count
}

// SourceEntry is either a Line to render or a Skip region.
// The set of implementations is closed; the reindexer matches exhaustively.
type SourceEntry interface {
	sourceEntry()
}

// Line is a single source line to render.
// Line numbers within one file are strictly increasing but not
// necessarily contiguous; gaps are covered by Skip entries.
type Line struct {
	Number int    // Original line number in the source file
	Text   string // Raw source text, not yet highlighted
}

// Skip is a run of consecutive omitted lines, rendered as one
// collapsed marker. It contributes nothing to the reindexed tables.
type Skip struct {
	Count int // Number of omitted lines
}

func (Line) sourceEntry() {}
func (Skip) sourceEntry() {}

// Stat is the recorded time/count pair for a line that executed.
type Stat struct {
	Time  float64 // Cumulative seconds spent on the line
	Count int     // Times the line executed
}

// StatAt returns the recorded stat for an original line number.
// Absence means the line never ran; that is the expected case for
// most lines, not an error.
func (f *FileReport) StatAt(line int) (Stat, bool) {
	t, okT := f.TimeByLine[line]
	c, okC := f.CountByLine[line]
	if !okT && !okC {
		return Stat{}, false
	}
	return Stat{Time: t, Count: c}, true
}

// FileSummary is derived per-file data for list views and --json output.
type FileSummary struct {
	Name          string  `json:"name"`
	TotalTime     float64 `json:"total_time"`
	ExecutedLines int     `json:"executed_lines"`
	VisibleLines  int     `json:"visible_lines"`
	HottestLine   int     `json:"hottest_line"` // 0 when nothing ran
	HottestTime   float64 `json:"hottest_time"`
}

// Summarize walks one file's entries and statistics.
func Summarize(f *FileReport) FileSummary {
	s := FileSummary{Name: f.Name}
	for _, e := range f.Entries {
		line, ok := e.(Line)
		if !ok {
			continue
		}
		s.VisibleLines++
		t, recorded := f.TimeByLine[line.Number]
		if _, hasCount := f.CountByLine[line.Number]; !recorded && !hasCount {
			continue
		}
		s.ExecutedLines++
		s.TotalTime += t
		if t > s.HottestTime {
			s.HottestTime = t
			s.HottestLine = line.Number
		}
	}
	return s
}

// Summaries returns one FileSummary per file, in report order.
func (r *Report) Summaries() []FileSummary {
	out := make([]FileSummary, 0, len(r.Files))
	for i := range r.Files {
		out = append(out, Summarize(&r.Files[i]))
	}
	return out
}
