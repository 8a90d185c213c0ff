package input

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/mandelbrot/viewport"
)

// ErrInvalidView is returned by SetView for non-finite coordinates or a
// non-positive zoom.
var ErrInvalidView = errors.New("input: invalid view")

// Gesture holds transient per-gesture data.
type Gesture struct {
	// Pointer is the last known pointer position in pixels.
	Pointer f64.Vec2

	// Dragging is true while the primary button is held.
	Dragging bool

	// Scroll is the scroll delta received but not yet applied.
	Scroll float64

	// seen is false until the first pointer move; before that Pointer
	// tracks the screen center.
	seen bool
}

// Translator converts events into mutations of a viewport.State.
//
// Translator is not safe for concurrent use. It is owned by the event loop
// together with the State it mutates.
type Translator struct {
	state       *viewport.State
	sensitivity float64
	gesture     Gesture

	homeCenter f64.Vec2
	homeZoom   float64
}

// NewTranslator returns a translator mutating state. Sensitivity is the
// relative zoom change per scroll line. The current view of state becomes
// the home view restored by ResetView.
func NewTranslator(state *viewport.State, sensitivity float64) *Translator {
	t := &Translator{
		state:       state,
		sensitivity: sensitivity,
		homeCenter:  state.Center,
		homeZoom:    state.Zoom,
	}
	t.gesture.Pointer = state.ScreenCenter()
	return t
}

// Sensitivity returns the relative zoom change per scroll line.
func (t *Translator) Sensitivity() float64 {
	return t.sensitivity
}

// Gesture returns a copy of the current gesture state.
func (t *Translator) Gesture() Gesture {
	return t.gesture
}

// Pointer returns the last known pointer position, or the screen center
// before the first pointer event.
func (t *Translator) Pointer() f64.Vec2 {
	if !t.gesture.seen {
		return t.state.ScreenCenter()
	}
	return t.gesture.Pointer
}

// OnEvent applies ev to the state and reports whether the camera changed.
func (t *Translator) OnEvent(ev Event) bool {
	switch ev.Kind {
	case KindResize:
		t.state.Resize(ev.Width, ev.Height)
		if !t.gesture.seen {
			t.gesture.Pointer = t.state.ScreenCenter()
		}
		return true
	case KindPointerMove:
		return t.move(f64.Vec2{ev.X, ev.Y})
	case KindScroll:
		t.gesture.Scroll += ev.Delta
		return t.zoom()
	case KindButtonPress:
		if ev.Button == ButtonPrimary {
			t.gesture.Dragging = true
		}
		return false
	case KindButtonRelease:
		if ev.Button == ButtonPrimary {
			t.gesture.Dragging = false
		}
		return false
	default:
		return false
	}
}

// move records the pointer position and pans while dragging. The plane
// point under the pointer follows the pointer.
func (t *Translator) move(p f64.Vec2) bool {
	prev, seen := t.gesture.Pointer, t.gesture.seen
	t.gesture.Pointer = p
	t.gesture.seen = true
	if !t.gesture.Dragging || !seen {
		return false
	}

	k := t.state.Scale()
	center := f64.Vec2{
		t.state.Center[0] - (p[0]-prev[0])/k,
		t.state.Center[1] - (p[1]-prev[1])/k,
	}
	if !finite(center[0]) || !finite(center[1]) {
		return false
	}
	t.state.Center = center
	return true
}

// zoom consumes the pending scroll delta. The plane point under the pointer
// stays under the pointer.
func (t *Translator) zoom() bool {
	delta := t.gesture.Scroll
	t.gesture.Scroll = 0
	if delta == 0 {
		return false
	}

	anchor := t.Pointer()
	fixed := t.state.PixelToPlane(anchor)

	z := t.state.Zoom * math.Pow(1+t.sensitivity, delta)
	if !finite(z) || z <= 0 {
		return false
	}

	next := *t.state
	next.Zoom = z
	c := next.ScreenCenter()
	k := next.Scale()
	next.Center = f64.Vec2{
		fixed[0] - (anchor[0]-c[0])/k,
		fixed[1] - (anchor[1]-c[1])/k,
	}
	if !next.Valid() {
		return false
	}
	*t.state = next
	return true
}

// ResetView restores the center and zoom the translator was created with.
func (t *Translator) ResetView() {
	t.state.Center = t.homeCenter
	t.state.Zoom = t.homeZoom
}

// SetView jumps to the given center and zoom.
func (t *Translator) SetView(center f64.Vec2, zoom float64) error {
	if !finite(center[0]) || !finite(center[1]) || !finite(zoom) || zoom <= 0 {
		return fmt.Errorf("%w: center=%v zoom=%v", ErrInvalidView, center, zoom)
	}
	t.state.Center = center
	t.state.Zoom = zoom
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
