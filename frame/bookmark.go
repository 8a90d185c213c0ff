package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/mandelbrot/input"
)

// ErrBadLocation is returned by ParseLocation for malformed input.
var ErrBadLocation = errors.New("frame: malformed location")

// FormatLocation renders a view as "x,y,zoom" with full float64 precision.
func FormatLocation(center f64.Vec2, zoom float64) string {
	return strconv.FormatFloat(center[0], 'g', -1, 64) + "," +
		strconv.FormatFloat(center[1], 'g', -1, 64) + "," +
		strconv.FormatFloat(zoom, 'g', -1, 64)
}

// ParseLocation parses the output of FormatLocation. Surrounding
// whitespace is ignored.
func ParseLocation(s string) (f64.Vec2, float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return f64.Vec2{}, 0, fmt.Errorf("%w: want 3 comma-separated numbers, got %d", ErrBadLocation, len(parts))
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return f64.Vec2{}, 0, fmt.Errorf("%w: %w", ErrBadLocation, err)
		}
		v[i] = f
	}
	return f64.Vec2{v[0], v[1]}, v[2], nil
}

// onBinding handles the view bindings: C copies the location, V jumps to
// the location on the clipboard, R resets the view. Each fires once per
// key press.
func (c *Context) onBinding(key input.Key, pressed bool) {
	edge, ok := c.bindings[key]
	if !ok || !edge.Update(pressed) {
		return
	}

	switch key {
	case input.KeyC:
		c.copyLocation()
	case input.KeyV:
		c.pasteLocation()
	case input.KeyR:
		c.input.ResetView()
		c.invalidate()
	}
}

func (c *Context) copyLocation() {
	if c.opts.clipboard == nil {
		return
	}
	loc := FormatLocation(c.state.Center, c.state.Zoom)
	if err := c.opts.clipboard.WriteAll(loc); err != nil {
		slogger().Warn("frame: copy location failed", "error", err)
		return
	}
	slogger().Info("frame: location copied", "location", loc)
}

func (c *Context) pasteLocation() {
	if c.opts.clipboard == nil {
		return
	}
	text, err := c.opts.clipboard.ReadAll()
	if err != nil {
		slogger().Warn("frame: read clipboard failed", "error", err)
		return
	}
	center, zoom, err := ParseLocation(text)
	if err == nil {
		err = c.input.SetView(center, zoom)
	}
	if err != nil {
		slogger().Warn("frame: paste location ignored", "error", err)
		return
	}
	c.invalidate()
}
