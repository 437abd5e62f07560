package heatmap

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"lineheat/internal/report"
)

//go:embed style.css
var pageCSS string

// One self-contained page: styles and the interaction script travel
// with the markup so the output works as a plain file, not just
// behind the web server.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>lineheat &middot; execution heatmap</title>
<style>
{{.CSS}}</style>
</head>
<body>
<div class="help-banner">Lines are shaded by how much runtime they consumed; darker is hotter.
Hover over an executed line for exact timing and call counts.
Dimmed markers stand for source regions omitted from the profile.</div>
<ul class="module-list">
{{- range .Files}}
<li><a href="#file-{{anchor .Name}}">{{.Name}}</a></li>
{{- end}}
</ul>
{{- range $i, $f := .Files}}
<div class="file-section" id="file-{{anchor $f.Name}}">
<h2 class="file-header">{{$f.Name}}</h2>
<div class="code-body" data-file="{{$i}}">
{{$f.Rows}}</div>
</div>
{{- end}}
<div class="footer">lineheat {{.Version}} &middot; total run time {{printf "%.6f" .TotalRunTime}}s</div>
<div class="tooltip" id="tooltip"></div>
<script>
var totalRunTime = {{.TotalJS}};
var fileStats = {{.Stats}};
(function () {
  "use strict";
  var tooltip = document.getElementById("tooltip");
  document.querySelectorAll(".code-body").forEach(function (body) {
    var stats = fileStats[Number(body.dataset.file)];
    body.querySelectorAll(".heat-line").forEach(function (row) {
      var pos = Number(row.dataset.pos);
      row.addEventListener("mouseenter", function (ev) {
        var s = stats[pos];
        if (!s) { return; }
        row.classList.add("heat-line--hot");
        var pct = 100 * s.t / totalRunTime;
        tooltip.textContent = s.t.toFixed(6) + "s of " + totalRunTime.toFixed(6) +
          "s total (" + pct.toFixed(2) + "%), " +
          s.c + (s.c === 1 ? " call" : " calls");
        tooltip.style.left = (ev.pageX + 14) + "px";
        tooltip.style.top = (ev.pageY + 14) + "px";
        tooltip.classList.add("tooltip--visible");
      });
      row.addEventListener("mouseleave", function () {
        row.classList.remove("heat-line--hot");
        tooltip.classList.remove("tooltip--visible");
      });
    });
  });
})();
</script>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"anchor": anchorFor,
}).Parse(pageTemplate))

type pageData struct {
	CSS          template.CSS
	Version      string
	TotalRunTime float64
	TotalJS      template.JS // exact numeric literal for the script
	Files        []RenderedFile
	Stats        template.JS
}

// posStat is the wire form of one position's tooltip data.
type posStat struct {
	T float64 `json:"t"`
	C int     `json:"c"`
}

// RenderHTML renders the whole report as one interactive page.
// Every file is reindexed before any markup is emitted, so the
// row-to-data correspondence is fixed before the script that binds
// hover handlers ever runs.
func RenderHTML(w io.Writer, rep *report.Report, scale Scale) error {
	files := make([]RenderedFile, 0, len(rep.Files))
	for i := range rep.Files {
		files = append(files, Reindex(&rep.Files[i], scale))
	}
	stats, err := statsJS(files)
	if err != nil {
		return fmt.Errorf("failed to serialize lookup tables: %w", err)
	}
	data := pageData{
		CSS:          template.CSS(pageCSS),
		Version:      report.Version,
		TotalRunTime: rep.TotalRunTime,
		TotalJS:      template.JS(strconv.FormatFloat(rep.TotalRunTime, 'g', -1, 64)),
		Files:        files,
		Stats:        stats,
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render heatmap page: %w", err)
	}
	return nil
}

// statsJS serializes the per-file position tables for the hover
// script. Map keys become JSON strings; the script indexes with
// numbers, which coerce to the same strings.
func statsJS(files []RenderedFile) (template.JS, error) {
	all := make([]map[int]posStat, len(files))
	for i, f := range files {
		m := make(map[int]posStat, len(f.TimeByPos))
		for pos, t := range f.TimeByPos {
			m[pos] = posStat{T: t, C: f.CountByPos[pos]}
		}
		all[i] = m
	}
	b, err := json.Marshal(all)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// anchorFor makes a file name safe to use as an element id.
func anchorFor(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
