package window

import (
	"github.com/gogpu/mandelbrot/input"
)

// Mode is a display video mode.
type Mode struct {
	Width, Height uint32

	// RefreshMilliHz is the refresh rate in millihertz, 0 when unknown.
	RefreshMilliHz uint32
}

// Window is the platform window the explorer renders into.
type Window interface {
	// Fullscreen reports whether the window is currently fullscreen.
	Fullscreen() bool

	// EnterFullscreen switches to exclusive fullscreen using mode. A zero
	// Mode requests borderless fullscreen at the desktop resolution.
	EnterFullscreen(mode Mode)

	// ExitFullscreen returns to windowed mode.
	ExitFullscreen()

	// DisplayModes lists the video modes of the window's current monitor.
	// It may return nil when the platform does not expose them.
	DisplayModes() []Mode

	// SetTitle replaces the window title.
	SetTitle(title string)

	// RequestRedraw schedules a redraw of the window.
	RequestRedraw()
}

// BestMode returns the highest-resolution mode, preferring the higher
// refresh rate among equal resolutions. It returns false for an empty list.
func BestMode(modes []Mode) (Mode, bool) {
	if len(modes) == 0 {
		return Mode{}, false
	}
	best := modes[0]
	for _, m := range modes[1:] {
		a, b := uint64(m.Width)*uint64(m.Height), uint64(best.Width)*uint64(best.Height)
		if a > b || (a == b && m.RefreshMilliHz > best.RefreshMilliHz) {
			best = m
		}
	}
	return best, true
}

// Fullscreen is the fullscreen/exit state machine. Two independent edge
// detectors watch F11 (toggle) and Escape (leave fullscreen).
type Fullscreen struct {
	win    Window
	toggle Edge
	exit   Edge
}

// NewFullscreen returns a controller acting on win.
func NewFullscreen(win Window) *Fullscreen {
	return &Fullscreen{win: win}
}

// OnKey feeds a key transition to the state machine and reports whether the
// key is bound to it. Events for other keys are ignored.
func (f *Fullscreen) OnKey(key input.Key, pressed bool) bool {
	switch key {
	case input.KeyF11:
		if f.toggle.Update(pressed) {
			f.Toggle()
		}
		return true
	case input.KeyEscape:
		if f.exit.Update(pressed) && f.win.Fullscreen() {
			slogger().Debug("window: leaving fullscreen")
			f.win.ExitFullscreen()
		}
		return true
	default:
		return false
	}
}

// Toggle switches between windowed and fullscreen mode.
func (f *Fullscreen) Toggle() {
	if f.win.Fullscreen() {
		slogger().Debug("window: leaving fullscreen")
		f.win.ExitFullscreen()
		return
	}
	mode, ok := BestMode(f.win.DisplayModes())
	if !ok {
		slogger().Debug("window: no display modes reported, using borderless fullscreen")
	}
	slogger().Debug("window: entering fullscreen", "width", mode.Width, "height", mode.Height)
	f.win.EnterFullscreen(mode)
}
