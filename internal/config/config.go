package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"

	"lineheat/internal/heatmap"
)

// Config tunes presentation details. Everything has a default; a
// config file is never required.
type Config struct {
	ColdColor       string  `toml:"cold_color"`       // "#rrggbb" endpoint for cheap lines
	HotColor        string  `toml:"hot_color"`        // "#rrggbb" endpoint for hot lines
	MinTime         float64 `toml:"min_time"`         // Lower bound of the color domain, seconds
	Port            int     `toml:"port"`             // Web mode port
	DefaultLanguage string  `toml:"default_language"` // Lexer for files that don't name one
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ColdColor:       heatmap.DefaultColdColor,
		HotColor:        heatmap.DefaultHotColor,
		MinTime:         heatmap.DefaultMinTime,
		Port:            8080,
		DefaultLanguage: "python",
	}
}

// Load reads a TOML config file over the defaults. An empty path or a
// missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if _, err := colorful.Hex(cfg.ColdColor); err != nil {
		return cfg, fmt.Errorf("invalid cold_color %q: %w", cfg.ColdColor, err)
	}
	if _, err := colorful.Hex(cfg.HotColor); err != nil {
		return cfg, fmt.Errorf("invalid hot_color %q: %w", cfg.HotColor, err)
	}
	if cfg.MinTime <= 0 {
		return cfg, fmt.Errorf("min_time must be positive, got %g", cfg.MinTime)
	}
	return cfg, nil
}

// Scale builds the color scale for one report's total run time.
func (c Config) Scale(totalRunTime float64) heatmap.Scale {
	cold, err := colorful.Hex(c.ColdColor)
	if err != nil {
		cold, _ = colorful.Hex(heatmap.DefaultColdColor)
	}
	hot, err := colorful.Hex(c.HotColor)
	if err != nil {
		hot, _ = colorful.Hex(heatmap.DefaultHotColor)
	}
	return heatmap.NewScaleWith(cold, hot, c.MinTime, totalRunTime)
}
