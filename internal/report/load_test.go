package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

const sampleJSON = `{
  "total_run_time": 10.0,
  "files": [
    {
      "name": "app/main.py",
      "entries": [
        {"kind": "line", "line": 1, "text": "a = 1"},
        {"kind": "skip", "count": 3},
        {"kind": "line", "line": 5, "text": "b = 2"}
      ],
      "time_by_line": {"1": 0.5},
      "count_by_line": {"1": 4}
    }
  ]
}`

func TestDecodeJSON(t *testing.T) {
	rep, err := DecodeJSON(strings.NewReader(sampleJSON), "python")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if rep.TotalRunTime != 10.0 {
		t.Fatalf("total run time = %g, want 10", rep.TotalRunTime)
	}
	if len(rep.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(rep.Files))
	}

	f := rep.Files[0]
	if f.Language != "python" {
		t.Fatalf("missing language should take the default, got %q", f.Language)
	}
	if len(f.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(f.Entries))
	}
	if l, ok := f.Entries[0].(Line); !ok || l.Number != 1 || l.Text != "a = 1" {
		t.Fatalf("entry 0 wrong: %#v", f.Entries[0])
	}
	if s, ok := f.Entries[1].(Skip); !ok || s.Count != 3 {
		t.Fatalf("entry 1 wrong: %#v", f.Entries[1])
	}
	if f.TimeByLine[1] != 0.5 || f.CountByLine[1] != 4 {
		t.Fatalf("per-line stats wrong: %v %v", f.TimeByLine, f.CountByLine)
	}
}

func TestDecodeJSONUnknownKindFatal(t *testing.T) {
	bad := `{"total_run_time": 1, "files": [{"name": "x", "entries": [{"kind": "blob"}]}]}`
	if _, err := DecodeJSON(strings.NewReader(bad), "python"); err == nil {
		t.Fatalf("unknown entry kind must be a load error")
	} else if !strings.Contains(err.Error(), "blob") {
		t.Fatalf("error should name the offending kind: %v", err)
	}
}

func TestDecodeJSONValidation(t *testing.T) {
	cases := []string{
		`{"total_run_time": 0, "files": [{"name": "x"}]}`,
		`{"total_run_time": -1, "files": [{"name": "x"}]}`,
		`{"total_run_time": 5, "files": []}`,
		`{"total_run_time": 5, "files": [{"name": ""}]}`,
	}
	for _, c := range cases {
		if _, err := DecodeJSON(strings.NewReader(c), "python"); err == nil {
			t.Fatalf("expected validation error for %s", c)
		}
	}
}

func TestDecodeMsgpackRoundTrip(t *testing.T) {
	rep, err := DecodeJSON(strings.NewReader(sampleJSON), "python")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	raw, err := msgpack.Marshal(toWire(rep))
	if err != nil {
		t.Fatalf("msgpack encode failed: %v", err)
	}
	got, err := DecodeMsgpack(bytes.NewReader(raw), "python")
	if err != nil {
		t.Fatalf("msgpack decode failed: %v", err)
	}
	if got.TotalRunTime != rep.TotalRunTime || len(got.Files) != len(rep.Files) {
		t.Fatalf("round trip lost data: %#v", got)
	}
	if got.Files[0].TimeByLine[1] != 0.5 {
		t.Fatalf("round trip lost per-line stats: %v", got.Files[0].TimeByLine)
	}
	if len(got.Files[0].Entries) != 3 {
		t.Fatalf("round trip lost entries: %d", len(got.Files[0].Entries))
	}
}

func TestStatAt(t *testing.T) {
	f := &FileReport{
		TimeByLine:  map[int]float64{1: 0.5},
		CountByLine: map[int]int{1: 4, 9: 2},
	}
	if s, ok := f.StatAt(1); !ok || s.Time != 0.5 || s.Count != 4 {
		t.Fatalf("StatAt(1) = %v %v", s, ok)
	}
	// Count without time still counts as recorded (zero-time line).
	if s, ok := f.StatAt(9); !ok || s.Time != 0 || s.Count != 2 {
		t.Fatalf("StatAt(9) = %v %v", s, ok)
	}
	if _, ok := f.StatAt(5); ok {
		t.Fatalf("StatAt(5) should report never-executed")
	}
}

func TestSummarize(t *testing.T) {
	f := &FileReport{
		Name: "x.py",
		Entries: []SourceEntry{
			Line{Number: 1, Text: "a"},
			Skip{Count: 2},
			Line{Number: 4, Text: "b"},
			Line{Number: 5, Text: "c"},
		},
		TimeByLine:  map[int]float64{1: 0.25, 4: 3.5},
		CountByLine: map[int]int{1: 10, 4: 1},
	}
	s := Summarize(f)
	if s.VisibleLines != 3 || s.ExecutedLines != 2 {
		t.Fatalf("line counts wrong: %+v", s)
	}
	if s.TotalTime != 3.75 {
		t.Fatalf("total time = %g, want 3.75", s.TotalTime)
	}
	if s.HottestLine != 4 || s.HottestTime != 3.5 {
		t.Fatalf("hottest wrong: %+v", s)
	}
}

func TestDump(t *testing.T) {
	rep, err := DecodeJSON(strings.NewReader(sampleJSON), "python")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	var b bytes.Buffer
	if err := Dump(&b, rep); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	out := b.String()
	for _, want := range []string{`"summaries"`, `"version"`, `"total_run_time"`, `"kind": "skip"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump output missing %s:\n%s", want, out)
		}
	}
}
