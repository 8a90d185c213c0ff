// Package input translates window-system events into camera changes.
//
// Events arrive as a small tagged union ([Event] with a [Kind]) so that the
// translator does not depend on any particular windowing library. Adapters
// in cmd/ convert framework callbacks into these values.
package input

import "fmt"

// Kind identifies the variant held by an Event.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindResize
	KindPointerMove
	KindScroll
	KindButtonPress
	KindButtonRelease
	KindKeyPress
	KindKeyRelease
	KindCloseRequested
)

var kindNames = [...]string{
	KindUnknown:        "Unknown",
	KindResize:         "Resize",
	KindPointerMove:    "PointerMove",
	KindScroll:         "Scroll",
	KindButtonPress:    "ButtonPress",
	KindButtonRelease:  "ButtonRelease",
	KindKeyPress:       "KeyPress",
	KindKeyRelease:     "KeyRelease",
	KindCloseRequested: "CloseRequested",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Button is a pointer button.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Key is a keyboard key the explorer reacts to. Keys without a binding map
// to KeyUnknown.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyF11
	KeyC
	KeyV
	KeyR
)

// Event is a window-system event. Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind

	// Resize.
	Width, Height uint32

	// PointerMove, in physical pixels relative to the top-left corner.
	X, Y float64

	// Scroll, in lines. Positive values scroll up.
	Delta float64

	// ButtonPress, ButtonRelease.
	Button Button

	// KeyPress, KeyRelease.
	Key Key
}

// Resize returns a KindResize event.
func Resize(width, height uint32) Event {
	return Event{Kind: KindResize, Width: width, Height: height}
}

// PointerMove returns a KindPointerMove event.
func PointerMove(x, y float64) Event {
	return Event{Kind: KindPointerMove, X: x, Y: y}
}

// Scroll returns a KindScroll event.
func Scroll(delta float64) Event {
	return Event{Kind: KindScroll, Delta: delta}
}

// ButtonPress returns a KindButtonPress event.
func ButtonPress(b Button) Event {
	return Event{Kind: KindButtonPress, Button: b}
}

// ButtonRelease returns a KindButtonRelease event.
func ButtonRelease(b Button) Event {
	return Event{Kind: KindButtonRelease, Button: b}
}

// KeyPress returns a KindKeyPress event.
func KeyPress(k Key) Event {
	return Event{Kind: KindKeyPress, Key: k}
}

// KeyRelease returns a KindKeyRelease event.
func KeyRelease(k Key) Event {
	return Event{Kind: KindKeyRelease, Key: k}
}

// CloseRequested returns a KindCloseRequested event.
func CloseRequested() Event {
	return Event{Kind: KindCloseRequested}
}
