package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/config"
	"github.com/gogpu/mandelbrot/frame"
	"github.com/gogpu/mandelbrot/input"
	"github.com/gogpu/mandelbrot/internal/gpu"
	"github.com/gogpu/mandelbrot/window"
)

var errNoSurfaceView = errors.New("no surface view for this frame")

// host adapts a gogpu App to the explorer: it is the frame.Surface, the
// window.Window and the event pump.
//
// gogpu delivers events on the main thread and runs OnDraw synchronously
// on its render thread between event batches, so callbacks never overlap.
type host struct {
	app *gogpu.App
	cfg config.Config
	log *slog.Logger

	ex  *mandelbrot.Explorer
	dc  *gogpu.Context
	err error

	width, height uint32
	titleWarned   bool
}

var (
	_ frame.Surface = (*host)(nil)
	_ window.Window = (*host)(nil)

	_ gpucontext.WindowChrome   = (*gogpu.App)(nil)
	_ gpucontext.WindowProvider = (*gogpu.App)(nil)
	_ gpu.DeviceSource          = (*wgpu.Device)(nil)

	_ interface{ HalTextureView() hal.TextureView } = (*wgpu.TextureView)(nil)
)

func newHost(app *gogpu.App, cfg config.Config, log *slog.Logger) *host {
	return &host{
		app:    app,
		cfg:    cfg,
		log:    log,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// run installs the callbacks and blocks in the gogpu event loop.
func (h *host) run() error {
	h.app.OnDraw(h.draw)
	h.app.OnResize(h.resize)
	h.app.OnClose(func() {
		h.dispatch(input.CloseRequested())
		if h.ex != nil {
			h.ex.Close()
		}
	})
	h.bindEvents(h.app.EventSource())

	if err := h.app.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return h.err
}

// resize forwards a logical window size. Before the first frame there is
// no explorer yet and the size is only recorded.
func (h *host) resize(w, ht int) {
	if w <= 0 || ht <= 0 {
		return
	}
	if h.ex == nil {
		h.width, h.height = uint32(w), uint32(ht)
		return
	}
	h.dispatch(input.Resize(uint32(w), uint32(ht)))
}

func (h *host) draw(dc *gogpu.Context) {
	if h.err != nil {
		return
	}
	w, ht := dc.Width(), dc.Height()
	if w <= 0 || ht <= 0 {
		return
	}
	h.dc = dc
	defer func() { h.dc = nil }()

	if h.ex == nil {
		h.width, h.height = uint32(w), uint32(ht)
		if err := h.open(); err != nil {
			h.fail(err)
			return
		}
	}

	// The Windows modal resize loop redraws without calling OnResize.
	ctx := h.ex.Context()
	if uint32(w) != h.width || uint32(ht) != h.height {
		ctx.OnEvent(input.Resize(uint32(w), uint32(ht)))
	}
	if err := ctx.OnRedraw(); err != nil {
		h.fail(err)
	}
}

// open negotiates the renderer on the first frame, once gogpu has created
// the device.
func (h *host) open() error {
	provider := h.app.GPUContextProvider()
	if provider == nil {
		return errors.New("gogpu: no GPU context provider")
	}
	ex, err := mandelbrot.Open(h.cfg, provider, h, h, frame.WithClipboard(systemClipboard{}))
	if err != nil {
		return err
	}
	h.ex = ex
	h.log.Info("mandelbrot: started", "precision", ex.Precision(), "adapter", provider.AdapterInfo().Name)
	return nil
}

// fail records a fatal error and stops the event loop.
func (h *host) fail(err error) {
	h.err = err
	h.log.Error("mandelbrot: stopping", "error", err)
	h.app.Quit()
}

// dispatch feeds an event to the explorer once it exists.
func (h *host) dispatch(ev input.Event) {
	if h.ex == nil || h.err != nil {
		return
	}
	h.ex.Context().OnEvent(ev)
}

// Configure records the drawable size. gogpu reconfigures its swap chain
// on its own before the next OnDraw.
func (h *host) Configure(width, height uint32) {
	h.width, h.height = width, height
	h.log.Debug("mandelbrot: surface configured", "width", width, "height", height)
}

func (h *host) Size() (uint32, uint32) {
	return h.width, h.height
}

func (h *host) Acquire() (frame.Image, error) {
	if h.dc == nil {
		return frame.Image{}, errors.New("acquire outside of a draw callback")
	}
	view := h.dc.SurfaceView()
	if view == nil {
		return frame.Image{}, errNoSurfaceView
	}
	hv := view.HalTextureView()
	if hv == nil {
		return frame.Image{}, fmt.Errorf("%w: view released", errNoSurfaceView)
	}
	return frame.Image{View: hv, Width: h.width, Height: h.height}, nil
}

// Present is a no-op: gogpu presents the surface after OnDraw returns.
func (h *host) Present(frame.Image) {}

func (h *host) Fullscreen() bool {
	return h.app.IsFullscreen()
}

// EnterFullscreen uses borderless fullscreen; gogpu does not expose
// exclusive video modes.
func (h *host) EnterFullscreen(window.Mode) {
	h.app.SetFullscreen(true)
}

func (h *host) ExitFullscreen() {
	h.app.SetFullscreen(false)
}

func (h *host) DisplayModes() []window.Mode {
	return nil
}

// SetTitle cannot reach the window: gogpu sets the title only at creation.
func (h *host) SetTitle(title string) {
	if !h.titleWarned {
		h.titleWarned = true
		h.log.Warn("mandelbrot: gogpu has no runtime title setter, live title disabled", "title", title)
	}
}

func (h *host) RequestRedraw() {
	h.app.RequestRedraw()
}

func (h *host) bindEvents(src gpucontext.EventSource) {
	src.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		h.dispatch(input.KeyPress(mapKey(key)))
	})
	src.OnKeyRelease(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		h.dispatch(input.KeyRelease(mapKey(key)))
	})
	src.OnMouseMove(func(x, y float64) {
		h.dispatch(input.PointerMove(x, y))
	})
	src.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		h.dispatch(input.PointerMove(x, y))
		h.dispatch(input.ButtonPress(mapButton(b)))
	})
	src.OnMouseRelease(func(b gpucontext.MouseButton, _, _ float64) {
		h.dispatch(input.ButtonRelease(mapButton(b)))
	})
	src.OnScroll(func(_, dy float64) {
		h.dispatch(input.Scroll(scrollDelta(dy)))
	})
}

// systemClipboard is the OS clipboard.
type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
