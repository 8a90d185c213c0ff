package mandelbrot

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/mandelbrot/config"
	"github.com/gogpu/mandelbrot/frame"
	"github.com/gogpu/mandelbrot/internal/gpu"
	"github.com/gogpu/mandelbrot/viewport"
	"github.com/gogpu/mandelbrot/window"
)

// ErrNoDevice is returned by Open when neither kernel precision can run on
// the device.
var ErrNoDevice = gpu.ErrNoDevice

// Explorer is a running fractal view: the negotiated renderer together with
// the frame context that drives it.
type Explorer struct {
	ctx      *frame.Context
	renderer *gpu.Renderer
}

// HomeView returns the initial camera described by cfg.
func HomeView(cfg config.Config, p viewport.Precision) viewport.State {
	s := viewport.New(cfg.Width, cfg.Height, p)
	s.Center = f64.Vec2{cfg.CenterX, cfg.CenterY}
	s.Zoom = cfg.Zoom
	return s
}

// Open negotiates the kernel precision on the provider's device and builds
// the frame context rendering into surface. cfg must be valid.
func Open(cfg config.Config, provider gpucontext.DeviceProvider, win window.Window, surface frame.Surface, opts ...frame.Option) (*Explorer, error) {
	dev, err := gpu.FromProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("mandelbrot: %w", err)
	}
	r, err := dev.Open(cfg.AllowF64())
	if err != nil {
		return nil, fmt.Errorf("mandelbrot: %w", err)
	}

	Logger().Info("mandelbrot: renderer ready",
		"precision", r.Precision(), "format", dev.Format,
		"width", cfg.Width, "height", cfg.Height)

	state := HomeView(cfg, r.Precision())
	return &Explorer{
		ctx:      frame.New(state, cfg.Sensitivity, win, surface, r, opts...),
		renderer: r,
	}, nil
}

// Context returns the frame context to feed window events and redraws to.
func (e *Explorer) Context() *frame.Context {
	return e.ctx
}

// Precision returns the kernel precision chosen by Open.
func (e *Explorer) Precision() viewport.Precision {
	return e.renderer.Precision()
}

// Close releases the GPU resources. The context must not be redrawn after
// Close.
func (e *Explorer) Close() {
	e.renderer.Destroy()
}
