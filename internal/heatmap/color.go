package heatmap

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultMinTime is the lower bound of the color domain: small enough
// that any real measurement lands above it, nonzero so the log scale
// is defined for lines with tiny but real runtime.
const DefaultMinTime = 1e-6

// Default endpoint colors, pale straw to saturated red-orange.
const (
	DefaultColdColor = "#fff5eb"
	DefaultHotColor  = "#d94801"
)

// Scale maps an execution time to a display color. The mapping is
// logarithmic: line-time distributions are heavy-tailed, and a linear
// scale would leave everything but the hottest lines indistinguishable.
type Scale struct {
	cold, hot      colorful.Color
	logMin, logMax float64
}

// NewScale builds a scale over [DefaultMinTime, maxTime] with the
// default endpoint colors. maxTime is the report's total run time,
// so each report's range is calibrated to its own maximum.
func NewScale(maxTime float64) Scale {
	cold, _ := colorful.Hex(DefaultColdColor)
	hot, _ := colorful.Hex(DefaultHotColor)
	return NewScaleWith(cold, hot, DefaultMinTime, maxTime)
}

// NewScaleWith builds a scale with explicit endpoints and bounds.
func NewScaleWith(cold, hot colorful.Color, minTime, maxTime float64) Scale {
	if minTime <= 0 {
		minTime = DefaultMinTime
	}
	return Scale{
		cold:   cold,
		hot:    hot,
		logMin: math.Log(minTime),
		logMax: math.Log(maxTime),
	}
}

// ColorFor returns the "#rrggbb" color for a nonzero execution time.
// Callers branch on zero/absent time themselves (never-executed lines
// get no color at all rather than the cold endpoint). A degenerate
// domain (maxTime at or below the minimum bound) yields the cold
// endpoint for every input.
func (s Scale) ColorFor(t float64) string {
	if s.logMax <= s.logMin {
		return s.cold.Hex()
	}
	frac := (math.Log(t) - s.logMin) / (s.logMax - s.logMin)
	if frac < 0 || math.IsNaN(frac) {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	// Lab blending keeps the ramp perceptually even; Clamped guards
	// against out-of-gamut intermediates.
	return s.cold.BlendLab(s.hot, frac).Clamped().Hex()
}

// Cold returns the cold endpoint as "#rrggbb".
func (s Scale) Cold() string { return s.cold.Hex() }

// Hot returns the hot endpoint as "#rrggbb".
func (s Scale) Hot() string { return s.hot.Hex() }
