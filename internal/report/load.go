package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Wire form of the report. Profilers emit either JSON or msgpack with
// the same field layout; entries carry a "kind" tag.
type reportWire struct {
	TotalRunTime float64    `json:"total_run_time" msgpack:"total_run_time"`
	Files        []fileWire `json:"files" msgpack:"files"`
}

type fileWire struct {
	Name        string          `json:"name" msgpack:"name"`
	Language    string          `json:"language,omitempty" msgpack:"language"`
	Entries     []entryWire     `json:"entries" msgpack:"entries"`
	TimeByLine  map[int]float64 `json:"time_by_line" msgpack:"time_by_line"`
	CountByLine map[int]int     `json:"count_by_line" msgpack:"count_by_line"`
}

type entryWire struct {
	Kind  string `json:"kind" msgpack:"kind"`
	Line  int    `json:"line,omitempty" msgpack:"line"`
	Text  string `json:"text,omitempty" msgpack:"text"`
	Count int    `json:"count,omitempty" msgpack:"count"`
}

// Load reads a report file, choosing the codec by extension:
// .msgpack/.mp are binary, everything else is JSON.
func Load(path string, defaultLanguage string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return DecodeMsgpack(f, defaultLanguage)
	default:
		return DecodeJSON(f, defaultLanguage)
	}
}

// DecodeJSON decodes a JSON-encoded report.
func DecodeJSON(r io.Reader, defaultLanguage string) (*Report, error) {
	var w reportWire
	dec := json.NewDecoder(r)
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("failed to decode report JSON: %w", err)
	}
	return fromWire(&w, defaultLanguage)
}

// DecodeMsgpack decodes a msgpack-encoded report.
func DecodeMsgpack(r io.Reader, defaultLanguage string) (*Report, error) {
	var w reportWire
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("failed to decode report msgpack: %w", err)
	}
	return fromWire(&w, defaultLanguage)
}

// fromWire validates at the load boundary. Past this point the
// renderer trusts the report (duplicate line numbers, skip counts
// that don't match gaps, etc. are the producer's responsibility).
func fromWire(w *reportWire, defaultLanguage string) (*Report, error) {
	if w.TotalRunTime <= 0 {
		return nil, fmt.Errorf("report total_run_time must be positive, got %g", w.TotalRunTime)
	}
	if len(w.Files) == 0 {
		return nil, fmt.Errorf("report has no files")
	}

	rep := &Report{TotalRunTime: w.TotalRunTime}
	for i, fw := range w.Files {
		if fw.Name == "" {
			return nil, fmt.Errorf("file %d has no name", i)
		}
		fr := FileReport{
			Name:        fw.Name,
			Language:    fw.Language,
			TimeByLine:  fw.TimeByLine,
			CountByLine: fw.CountByLine,
		}
		if fr.Language == "" {
			fr.Language = defaultLanguage
		}
		if fr.TimeByLine == nil {
			fr.TimeByLine = map[int]float64{}
		}
		if fr.CountByLine == nil {
			fr.CountByLine = map[int]int{}
		}
		for j, ew := range fw.Entries {
			switch ew.Kind {
			case "line":
				fr.Entries = append(fr.Entries, Line{Number: ew.Line, Text: ew.Text})
			case "skip":
				fr.Entries = append(fr.Entries, Skip{Count: ew.Count})
			default:
				return nil, fmt.Errorf("file %q entry %d: unknown kind %q", fw.Name, j, ew.Kind)
			}
		}
		rep.Files = append(rep.Files, fr)
	}
	return rep, nil
}

// Dump writes the normalized report plus per-file summaries as
// indented JSON. Used by --json mode and the web API.
func Dump(w io.Writer, rep *Report) error {
	out := struct {
		Report    reportWire    `json:"report"`
		Summaries []FileSummary `json:"summaries"`
		Version   string        `json:"version"`
	}{
		Report:    toWire(rep),
		Summaries: rep.Summaries(),
		Version:   Version,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toWire(rep *Report) reportWire {
	w := reportWire{TotalRunTime: rep.TotalRunTime}
	for _, f := range rep.Files {
		fw := fileWire{
			Name:        f.Name,
			Language:    f.Language,
			TimeByLine:  f.TimeByLine,
			CountByLine: f.CountByLine,
		}
		for _, e := range f.Entries {
			switch e := e.(type) {
			case Line:
				fw.Entries = append(fw.Entries, entryWire{Kind: "line", Line: e.Number, Text: e.Text})
			case Skip:
				fw.Entries = append(fw.Entries, entryWire{Kind: "skip", Count: e.Count})
			default:
				panic(fmt.Sprintf("unknown source entry type %T", e))
			}
		}
		w.Files = append(w.Files, fw)
	}
	return w
}
