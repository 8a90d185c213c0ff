// Command mandelbrot opens an interactive GPU view of the Mandelbrot set.
//
// Drag with the left mouse button to pan and scroll to zoom around the
// pointer. F11 toggles fullscreen, Escape leaves it. C copies the current
// location to the clipboard, V jumps to a copied location and R resets the
// view.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gogpu"
	"github.com/spf13/pflag"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/config"
	"github.com/gogpu/mandelbrot/internal/parallel"
	"github.com/gogpu/mandelbrot/snapshot"
	"github.com/gogpu/mandelbrot/viewport"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cfg, fl, err := config.Parse("mandelbrot", args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if fl.Version {
		fmt.Fprintf(stderr, "mandelbrot version %s\n", mandelbrot.Version)
		return 0
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	mandelbrot.SetLogger(logger)

	if fl.Snapshot != "" {
		if err := writeSnapshot(fl.Snapshot, cfg); err != nil {
			logger.Error("mandelbrot: snapshot failed", "error", err)
			return 1
		}
		logger.Info("mandelbrot: snapshot written", "path", fl.Snapshot)
		return 0
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(int(cfg.Width), int(cfg.Height)).
		WithContinuousRender(false))

	h := newHost(app, cfg, logger)
	if err := h.run(); err != nil {
		logger.Error("mandelbrot: fatal", "error", err)
		return 1
	}
	return 0
}

// writeSnapshot renders the home view of cfg on the CPU to a PNG file.
func writeSnapshot(path string, cfg config.Config) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	pool := parallel.NewPool(0)
	defer pool.Close()
	return snapshot.WritePNG(f, mandelbrot.HomeView(cfg, viewport.F64), pool)
}
