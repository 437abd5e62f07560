package web

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"lineheat/internal/heatmap"
	"lineheat/internal/report"
)

//go:embed help.md
var helpMD string

// StartServer renders the report once and serves the interactive page
// on the given port. The report is immutable, so everything is built
// up front and handlers only read.
func StartServer(rep *report.Report, scale heatmap.Scale, port int) error {
	var page bytes.Buffer
	if err := heatmap.RenderHTML(&page, rep, scale); err != nil {
		return fmt.Errorf("failed to render heatmap: %w", err)
	}

	rendered := make(map[string]heatmap.RenderedFile, len(rep.Files))
	for i := range rep.Files {
		rendered[rep.Files[i].Name] = heatmap.Reindex(&rep.Files[i], scale)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page.Bytes())
	})

	// API Endpoints
	mux.HandleFunc("/api/report", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := report.Dump(w, rep); err != nil {
			log.Printf("api/report: %v", err)
		}
	})

	mux.HandleFunc("/api/file", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "name is required", 400)
			return
		}
		rf, ok := rendered[name]
		if !ok {
			http.Error(w, "no such file in report", 404)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rf)
	})

	mux.HandleFunc("/api/help", func(w http.ResponseWriter, r *http.Request) {
		text := strings.ReplaceAll(helpMD, "{{VERSION}}", report.Version)
		w.Header().Set("Content-Type", "text/markdown")
		w.Write([]byte(text))
	})

	fmt.Printf("Starting lineheat web server at http://localhost:%d\n", port)
	fmt.Printf("Go to http://localhost:%d in your browser.\n", port)

	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}
