package config

import (
	"os"
	"path/filepath"
	"testing"

	"lineheat/internal/heatmap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lineheat.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("empty path should load defaults: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults", cfg)
	}

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should load defaults: %v", err)
	}
	if cfg.Port != 8080 || cfg.DefaultLanguage != "python" {
		t.Fatalf("defaults wrong: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
cold_color = "#ffffff"
hot_color = "#ff0000"
min_time = 0.001
port = 9999
default_language = "go"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ColdColor != "#ffffff" || cfg.HotColor != "#ff0000" {
		t.Fatalf("colors not applied: %+v", cfg)
	}
	if cfg.MinTime != 0.001 || cfg.Port != 9999 || cfg.DefaultLanguage != "go" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `port = 3000`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("port override lost: %+v", cfg)
	}
	if cfg.ColdColor != heatmap.DefaultColdColor || cfg.MinTime != heatmap.DefaultMinTime {
		t.Fatalf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		`cold_color = "not-a-color"`,
		`hot_color = "#zzz"`,
		`min_time = -1.0`,
		`port = "oops"`,
	}
	for _, c := range cases {
		if _, err := Load(writeConfig(t, c)); err == nil {
			t.Fatalf("expected error for config %q", c)
		}
	}
}

func TestScaleUsesConfiguredEndpoints(t *testing.T) {
	cfg := Default()
	cfg.ColdColor = "#ffffff"
	cfg.HotColor = "#000000"
	s := cfg.Scale(10.0)
	if s.Cold() != "#ffffff" || s.Hot() != "#000000" {
		t.Fatalf("scale endpoints wrong: cold=%s hot=%s", s.Cold(), s.Hot())
	}
}
