// Package window contains the window-level state machines of the explorer:
// edge-triggered fullscreen handling and title formatting.
//
// The package talks to the platform through the [Window] interface and never
// touches a windowing library directly.
package window

// Edge is a rising-edge detector over a boolean signal such as a key's
// pressed state. It fires only on a released-to-pressed transition; held
// repeats and releases never fire.
//
// The zero value starts in the released state.
type Edge struct {
	pressed bool
}

// Update stores the new level and reports whether it is a rising edge.
// The level is stored on every call, whether or not the edge fired.
func (e *Edge) Update(pressed bool) bool {
	fired := pressed && !e.pressed
	e.pressed = pressed
	return fired
}

// Pressed returns the last stored level.
func (e *Edge) Pressed() bool {
	return e.pressed
}
