// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package frame sequences the explorer's per-frame work.
//
// A [Context] owns every piece of mutable state of the event loop: the
// camera, the gesture tracker, the fullscreen edge detectors and the frame
// timing. The host feeds it window events through [Context.OnEvent] and
// redraw ticks through [Context.OnRedraw]. Context is not safe for
// concurrent use; all calls must come from the event loop goroutine.
//
// Redraw ordering:
//
//	resync size -> write parameters (if dirty) -> acquire image ->
//	record pass -> submit -> present
//
// The parameter write is queued before the pass that reads it is submitted,
// and commands on one queue execute in submission order. A parameter write
// that fails during OnRedraw is fatal.
package frame

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"
	"golang.org/x/text/language"

	"github.com/gogpu/mandelbrot/input"
	"github.com/gogpu/mandelbrot/viewport"
	"github.com/gogpu/mandelbrot/window"
)

// ErrAcquire is returned by OnRedraw when no presentable surface image can
// be acquired. It is fatal.
var ErrAcquire = errors.New("frame: failed to acquire next surface image")

// Image is an acquired presentable surface image.
type Image struct {
	View          hal.TextureView
	Width, Height uint32
}

// Surface is the swap surface of the window.
type Surface interface {
	// Configure applies a new drawable size.
	Configure(width, height uint32)

	// Size returns the current drawable size.
	Size() (width, height uint32)

	// Acquire returns the next presentable image.
	Acquire() (Image, error)

	// Present queues img for display.
	Present(img Image)
}

// Renderer records and submits the fractal draw.
type Renderer interface {
	// WriteParams queues a write of the encoded viewport to the GPU
	// parameter buffer. data is only valid for the duration of the call.
	WriteParams(data []byte) error

	// Record encodes the render pass targeting img: clear to black, bind
	// the parameter buffer, draw the full-screen quad.
	Record(img Image) (Pass, error)
}

// Pass is a recorded frame ready for submission.
type Pass interface {
	Submit() error
}

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Timing holds frame-time measurements.
type Timing struct {
	// Last is the wall time from the start of the previous redraw to the end
	// of its render pass recording.
	Last time.Duration

	// Frames counts presented frames.
	Frames uint64
}

// Option configures a Context.
type Option func(*options)

type options struct {
	clipboard Clipboard
	now       func() time.Time
	title     *window.TitleFormatter
}

// WithClipboard enables the copy/paste location bindings (C and V).
func WithClipboard(c Clipboard) Option {
	return func(o *options) {
		o.clipboard = c
	}
}

// WithClock replaces time.Now for frame timing.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithTitleFormatter replaces the default English title formatter.
func WithTitleFormatter(f *window.TitleFormatter) Option {
	return func(o *options) {
		o.title = f
	}
}

// Context is the explicit state bundle of the event loop.
type Context struct {
	state    viewport.State
	input    *input.Translator
	screen   *window.Fullscreen
	bindings map[input.Key]*window.Edge

	win      window.Window
	surface  Surface
	renderer Renderer
	opts     options

	timing Timing
	dirty  bool
	done   bool
	params []byte
}

// New returns a Context for the given initial camera. The camera's
// precision must match the shader variant the renderer was built with.
// The parameter buffer is written once before New returns.
func New(state viewport.State, sensitivity float64, win window.Window, surface Surface, renderer Renderer, opts ...Option) *Context {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.title == nil {
		o.title = window.NewTitleFormatter(language.English)
	}

	c := &Context{
		state:    state,
		win:      win,
		surface:  surface,
		renderer: renderer,
		opts:     o,
		bindings: map[input.Key]*window.Edge{
			input.KeyC: {},
			input.KeyV: {},
			input.KeyR: {},
		},
		timing: Timing{Last: time.Second},
	}
	c.input = input.NewTranslator(&c.state, sensitivity)
	c.screen = window.NewFullscreen(win)
	c.tryUpload()
	return c
}

// State returns a copy of the camera.
func (c *Context) State() viewport.State {
	return c.state
}

// Pointer returns the last known pointer position.
func (c *Context) Pointer() (x, y float64) {
	p := c.input.Pointer()
	return p[0], p[1]
}

// Timing returns the frame-time measurements.
func (c *Context) Timing() Timing {
	return c.timing
}

// Dirty reports whether the GPU parameter buffer is stale.
func (c *Context) Dirty() bool {
	return c.dirty
}

// Done reports whether a close was requested. Once done, OnEvent and
// OnRedraw do nothing.
func (c *Context) Done() bool {
	return c.done
}

// OnEvent dispatches a window event.
func (c *Context) OnEvent(ev input.Event) {
	if c.done {
		return
	}

	switch ev.Kind {
	case input.KindCloseRequested:
		slogger().Debug("frame: close requested", "frames", c.timing.Frames)
		c.done = true
		return
	case input.KindResize:
		c.resize(ev.Width, ev.Height)
		return
	case input.KindKeyPress, input.KindKeyRelease:
		pressed := ev.Kind == input.KindKeyPress
		if c.screen.OnKey(ev.Key, pressed) {
			return
		}
		c.onBinding(ev.Key, pressed)
	}

	if c.input.OnEvent(ev) {
		c.invalidate()
	}
	c.refreshTitle()
}

// resize reconfigures the surface and resynchronizes the parameter buffer
// right away, then asks for a redraw: some platforms do not repaint the
// swap surface after a resize on their own.
func (c *Context) resize(width, height uint32) {
	c.surface.Configure(width, height)
	c.input.OnEvent(input.Resize(width, height))
	c.tryUpload()
	slogger().Debug("frame: resized", "width", c.state.Width, "height", c.state.Height)
	c.win.RequestRedraw()
}

// OnRedraw renders one frame. A returned error is fatal.
func (c *Context) OnRedraw() error {
	if c.done {
		return nil
	}
	start := c.opts.now()

	w, h := c.surface.Size()
	if max(w, 1) != c.state.Width || max(h, 1) != c.state.Height {
		c.state.Resize(w, h)
		c.dirty = true
	}
	if c.dirty {
		if err := c.upload(); err != nil {
			return err
		}
	}

	img, err := c.surface.Acquire()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquire, err)
	}

	pass, err := c.renderer.Record(img)
	if err != nil {
		return fmt.Errorf("frame: record pass: %w", err)
	}
	c.timing.Last = c.opts.now().Sub(start)

	if err := pass.Submit(); err != nil {
		return fmt.Errorf("frame: submit: %w", err)
	}
	c.surface.Present(img)
	c.timing.Frames++
	return nil
}

// Title returns the window title for the current state.
func (c *Context) Title() string {
	return c.opts.title.Format(window.TitleInfo{
		Center:        c.state.Center,
		Magnification: c.state.Magnification(),
		FrameTime:     c.timing.Last,
		Pointer:       c.input.Pointer(),
	})
}

func (c *Context) refreshTitle() {
	c.win.SetTitle(c.Title())
}

// invalidate marks the parameter buffer stale and schedules a redraw.
func (c *Context) invalidate() {
	c.dirty = true
	c.win.RequestRedraw()
}

// upload encodes the camera and queues the parameter buffer write. The
// buffer stays dirty when the write fails.
func (c *Context) upload() error {
	c.params = viewport.AppendEncode(c.params[:0], c.state)
	if err := c.renderer.WriteParams(c.params); err != nil {
		c.dirty = true
		return fmt.Errorf("frame: write params: %w", err)
	}
	c.dirty = false
	return nil
}

// tryUpload uploads outside of a redraw. A failure is retried by the next
// OnRedraw, which reports it.
func (c *Context) tryUpload() {
	if err := c.upload(); err != nil {
		slogger().Warn("frame: params upload deferred to next redraw", "error", err)
	}
}
