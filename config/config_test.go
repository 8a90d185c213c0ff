package config

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	if !Default().AllowF64() {
		t.Error("Default().AllowF64() = false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"zero sensitivity", func(c *Config) { c.Sensitivity = 0 }},
		{"sensitivity one", func(c *Config) { c.Sensitivity = 1 }},
		{"NaN sensitivity", func(c *Config) { c.Sensitivity = math.NaN() }},
		{"infinite center", func(c *Config) { c.CenterX = math.Inf(1) }},
		{"NaN center", func(c *Config) { c.CenterY = math.NaN() }},
		{"zero zoom", func(c *Config) { c.Zoom = 0 }},
		{"negative zoom", func(c *Config) { c.Zoom = -2 }},
		{"unknown precision", func(c *Config) { c.Precision = "f16" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		c := Default()
		c.LogLevel = tt.in
		got, err := c.Level()
		if err != nil || got != tt.want {
			t.Errorf("Level(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	cfg, fl, err := Parse("mandelbrot", []string{
		"-w", "1024", "--height=768", "-s", "0.1",
		"--center-x", "-0.75", "--center-y=0.1", "-z", "1e-3",
		"--precision", "f32", "--log-level", "debug",
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Config{
		Width: 1024, Height: 768, Sensitivity: 0.1,
		CenterX: -0.75, CenterY: 0.1, Zoom: 1e-3,
		Precision: PrecisionF32, LogLevel: "debug", Title: Default().Title,
	}
	if cfg != want {
		t.Errorf("Parse() = %+v, want %+v", cfg, want)
	}
	if fl.Version || fl.ConfigPath != "" {
		t.Errorf("Flags = %+v, want zero", fl)
	}
	if cfg.AllowF64() {
		t.Error("AllowF64() = true with --precision f32")
	}
}

func TestParseInvalid(t *testing.T) {
	if _, _, err := Parse("mandelbrot", []string{"--zoom", "0"}, &bytes.Buffer{}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Parse(--zoom 0) = %v, want ErrInvalid", err)
	}
	if _, _, err := Parse("mandelbrot", []string{"--no-such-flag"}, &bytes.Buffer{}); err == nil {
		t.Error("Parse(--no-such-flag) succeeded")
	}
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse("mandelbrot", []string{"--help"}, &out)
	if !errors.Is(err, pflag.ErrHelp) {
		t.Errorf("Parse(--help) = %v, want pflag.ErrHelp", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("--sensitivity")) {
		t.Errorf("usage does not list --sensitivity:\n%s", out.String())
	}
}

func TestParseVersionSkipsValidation(t *testing.T) {
	_, fl, err := Parse("mandelbrot", []string{"-v", "--zoom=-1"}, &bytes.Buffer{})
	if err != nil || !fl.Version {
		t.Errorf("Parse(-v) = %+v, %v", fl, err)
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mandelbrot.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "width: 1920\nheight: 1080\ncenter_x: -0.743643887037151\nzoom: 0.0001\n")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Width != 1920 || cfg.Height != 1080 || cfg.CenterX != -0.743643887037151 || cfg.Zoom != 0.0001 {
		t.Errorf("LoadFile() = %+v", cfg)
	}
	if cfg.Sensitivity != Default().Sensitivity || cfg.Precision != PrecisionAuto {
		t.Errorf("missing keys did not keep defaults: %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile(missing) succeeded")
	}
	if _, err := LoadFile(writeFile(t, "width: [1, 2]\n")); err == nil {
		t.Error("LoadFile(bad yaml) succeeded")
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "width: 1920\nheight: 1080\nzoom: 0.5\nlog_level: info\n")
	cfg, fl, err := Parse("mandelbrot", []string{"--config", path, "-z", "2"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if fl.ConfigPath != path {
		t.Errorf("ConfigPath = %q, want %q", fl.ConfigPath, path)
	}
	if cfg.Width != 1920 || cfg.Height != 1080 || cfg.LogLevel != "info" {
		t.Errorf("file settings lost: %+v", cfg)
	}
	if cfg.Zoom != 2 {
		t.Errorf("Zoom = %v, want flag value 2", cfg.Zoom)
	}
}
