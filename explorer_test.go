package mandelbrot

import (
	"errors"
	"testing"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/mandelbrot/config"
	"github.com/gogpu/mandelbrot/frame"
	"github.com/gogpu/mandelbrot/internal/gpu"
	"github.com/gogpu/mandelbrot/internal/gpu/gputest"
	"github.com/gogpu/mandelbrot/viewport"
	"github.com/gogpu/mandelbrot/window"
)

type testSurface struct {
	width, height uint32
	presented     int
}

func (s *testSurface) Configure(w, h uint32)  { s.width, s.height = w, h }
func (s *testSurface) Size() (uint32, uint32) { return s.width, s.height }
func (s *testSurface) Present(frame.Image)    { s.presented++ }

func (s *testSurface) Acquire() (frame.Image, error) {
	return frame.Image{View: gputest.View(), Width: s.width, Height: s.height}, nil
}

type testWindow struct{ redraws int }

func (*testWindow) Fullscreen() bool            { return false }
func (*testWindow) EnterFullscreen(window.Mode) {}
func (*testWindow) ExitFullscreen()             {}
func (*testWindow) DisplayModes() []window.Mode { return nil }
func (*testWindow) SetTitle(string)             {}
func (w *testWindow) RequestRedraw()            { w.redraws++ }

func TestHomeView(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 1024, 512
	cfg.CenterX, cfg.CenterY, cfg.Zoom = -0.75, 0.1, 0.25

	s := HomeView(cfg, viewport.F32)
	if s.Width != 1024 || s.Height != 512 {
		t.Errorf("size = %dx%d, want 1024x512", s.Width, s.Height)
	}
	if s.Center != (f64.Vec2{-0.75, 0.1}) || s.Zoom != 0.25 {
		t.Errorf("view = %v zoom %v", s.Center, s.Zoom)
	}
	if s.Precision != viewport.F32 {
		t.Errorf("Precision = %v, want F32", s.Precision)
	}
	if !s.Valid() {
		t.Error("home view is not valid")
	}
}

func TestOpenWithoutHAL(t *testing.T) {
	_, err := Open(config.Default(), &gputest.Provider{}, nil, nil)
	if !errors.Is(err, gpu.ErrNoHAL) {
		t.Errorf("Open() error = %v, want ErrNoHAL", err)
	}
}

func TestOpenRendersFrame(t *testing.T) {
	if _, err := gpu.CompileShader(viewport.F32); err != nil {
		t.Skipf("Skipping: naga cannot compile the f32 kernel: %v", err)
	}
	cfg := config.Default()
	surface := &testSurface{width: cfg.Width, height: cfg.Height}

	ex, err := Open(cfg, gputest.NewNoop(t, 0), &testWindow{}, surface)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer ex.Close()

	if ex.Precision() != viewport.F32 {
		t.Errorf("Precision = %v on a device without shader-f64, want f32", ex.Precision())
	}
	if got, want := ex.Context().State(), HomeView(cfg, viewport.F32); got != want {
		t.Errorf("initial state = %+v, want %+v", got, want)
	}
	if err := ex.Context().OnRedraw(); err != nil {
		t.Fatalf("OnRedraw() error = %v", err)
	}
	if surface.presented != 1 {
		t.Errorf("presented = %d, want 1", surface.presented)
	}
}
