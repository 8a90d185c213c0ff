package window

import (
	"strconv"
	"time"

	"golang.org/x/image/math/f64"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TitleInfo is the data shown in the window title.
type TitleInfo struct {
	Center        f64.Vec2
	Magnification float64
	FrameTime     time.Duration
	Pointer       f64.Vec2
}

// FPS estimates frames per second from a frame duration. Durations below
// one microsecond are clamped to one microsecond.
func FPS(frame time.Duration) int64 {
	us := max(frame.Microseconds(), 1)
	return 1_000_000 / us
}

// TitleFormatter renders TitleInfo for a language. Integer counters use the
// language's digit grouping.
type TitleFormatter struct {
	p *message.Printer
}

// NewTitleFormatter returns a formatter for tag.
func NewTitleFormatter(tag language.Tag) *TitleFormatter {
	return &TitleFormatter{p: message.NewPrinter(tag)}
}

// Format returns the window title for info.
func (f *TitleFormatter) Format(info TitleInfo) string {
	return f.p.Sprintf("Mandelbrot fractal | coords: (%s, %s) | zoom: %sx | frame time: %d ms (%d FPS) | %sx%s",
		formatFloat(info.Center[0]), formatFloat(info.Center[1]),
		formatFloat(info.Magnification),
		info.FrameTime.Milliseconds(), FPS(info.FrameTime),
		formatFloat(info.Pointer[0]), formatFloat(info.Pointer[1]))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
