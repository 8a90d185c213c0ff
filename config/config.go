// Package config holds the explorer's startup settings.
//
// Settings come from three layers, later ones winning: [Default], an
// optional YAML file, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Precision overrides.
const (
	// PrecisionAuto tries double precision first and falls back to single.
	PrecisionAuto = "auto"

	// PrecisionF32 forces the single-precision kernel.
	PrecisionF32 = "f32"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the full set of startup settings.
type Config struct {
	// Width and Height are the initial window size in pixels.
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`

	// Sensitivity is the relative zoom change per scroll line.
	Sensitivity float64 `yaml:"sensitivity"`

	// CenterX, CenterY and Zoom are the home view.
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
	Zoom    float64 `yaml:"zoom"`

	// Precision is PrecisionAuto or PrecisionF32.
	Precision string `yaml:"precision"`

	// LogLevel is a slog level name: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Title is the window title shown before the first input event.
	Title string `yaml:"title"`
}

// Default returns the built-in settings: an 800x600 window showing the
// whole set.
func Default() Config {
	return Config{
		Width:       800,
		Height:      600,
		Sensitivity: 0.02,
		CenterX:     -0.5,
		CenterY:     0,
		Zoom:        3,
		Precision:   PrecisionAuto,
		LogLevel:    "warn",
		Title:       "Mandelbrot fractal",
	}
}

// LoadFile reads a YAML file over Default. Keys missing from the file keep
// their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// AllowF64 reports whether the double-precision kernel may be tried.
func (c Config) AllowF64() bool {
	return c.Precision != PrecisionF32
}

// Level returns the parsed log level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// Validate checks every setting and reports the first invalid one.
func (c Config) Validate() error {
	switch {
	case c.Width == 0 || c.Height == 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	case !(c.Sensitivity > 0 && c.Sensitivity < 1):
		return fmt.Errorf("%w: sensitivity %v not in (0, 1)", ErrInvalid, c.Sensitivity)
	case !finite(c.CenterX) || !finite(c.CenterY):
		return fmt.Errorf("%w: center (%v, %v)", ErrInvalid, c.CenterX, c.CenterY)
	case !finite(c.Zoom) || c.Zoom <= 0:
		return fmt.Errorf("%w: zoom %v", ErrInvalid, c.Zoom)
	case c.Precision != PrecisionAuto && c.Precision != PrecisionF32:
		return fmt.Errorf("%w: precision %q, want %q or %q", ErrInvalid, c.Precision, PrecisionAuto, PrecisionF32)
	}
	_, err := c.Level()
	return err
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
