package config

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Flags are the command-line switches that are not settings.
type Flags struct {
	// ConfigPath is the YAML file given with --config.
	ConfigPath string

	// Snapshot is the PNG path given with --snapshot. When set the home view
	// is rendered on the CPU and no window is opened.
	Snapshot string

	// Version is set by --version.
	Version bool
}

func newFlagSet(name string, cfg *Config, fl *Flags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Uint32VarP(&cfg.Width, "width", "w", cfg.Width, "Initial window width in pixels")
	fs.Uint32VarP(&cfg.Height, "height", "H", cfg.Height, "Initial window height in pixels")
	fs.Float64VarP(&cfg.Sensitivity, "sensitivity", "s", cfg.Sensitivity, "Relative zoom change per scroll line, in (0, 1)")
	fs.Float64Var(&cfg.CenterX, "center-x", cfg.CenterX, "Real part of the initial view center")
	fs.Float64Var(&cfg.CenterY, "center-y", cfg.CenterY, "Imaginary part of the initial view center")
	fs.Float64VarP(&cfg.Zoom, "zoom", "z", cfg.Zoom, "Plane extent of the shorter window side")
	fs.StringVar(&cfg.Precision, "precision", cfg.Precision, "Kernel precision: auto or f32")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Initial window title")
	fs.StringVar(&fl.ConfigPath, "config", "", "YAML settings file")
	fs.StringVar(&fl.Snapshot, "snapshot", "", "Render the initial view to a PNG file and exit")
	fs.BoolVarP(&fl.Version, "version", "v", false, "Show version information")
	return fs
}

// Parse builds the settings from args (without the program name). Flags
// given on the command line override the --config file, which overrides
// Default. Usage is written to out on a parse error or --help, in which
// case the error wraps pflag.ErrHelp. The settings are validated unless
// --version was given.
func Parse(name string, args []string, out io.Writer) (Config, Flags, error) {
	cfg := Default()
	var fl Flags
	fs := newFlagSet(name, &cfg, &fl)
	fs.SetOutput(out)
	if err := fs.Parse(args); err != nil {
		return cfg, fl, fmt.Errorf("config: %w", err)
	}
	if fl.Version {
		return cfg, fl, nil
	}

	if fl.ConfigPath != "" {
		file, err := LoadFile(fl.ConfigPath)
		if err != nil {
			return cfg, fl, err
		}
		var ignored Flags
		overlay := newFlagSet(name, &file, &ignored)
		var setErr error
		fs.Visit(func(f *pflag.Flag) {
			if err := overlay.Set(f.Name, f.Value.String()); err != nil && setErr == nil {
				setErr = fmt.Errorf("config: --%s: %w", f.Name, err)
			}
		})
		if setErr != nil {
			return cfg, fl, setErr
		}
		cfg = file
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fl, err
	}
	return cfg, fl, nil
}
