// Package snapshot renders the fractal on the CPU.
//
// It evaluates the same escape-time kernel and palette as the GPU shaders,
// in float64, and is used for headless PNG snapshots and as a reference for
// the camera mapping.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/mandelbrot/internal/parallel"
	"github.com/gogpu/mandelbrot/viewport"
)

// MaxIterations is the escape-time iteration limit of the kernel.
const MaxIterations = 512

// rowsPerJob is the height of the band each pool job renders.
const rowsPerJob = 16

// Escape returns the number of iterations before z = z² + c leaves the
// radius-2 disk, or MaxIterations when it never does.
func Escape(c f64.Vec2) int {
	var x, y float64
	for i := range MaxIterations {
		x2, y2 := x*x, y*y
		if x2+y2 > 4 {
			return i
		}
		x, y = x2-y2+c[0], 2*x*y+c[1]
	}
	return MaxIterations
}

// Color maps an iteration count to the kernel's cosine palette. Points in
// the set are black.
func Color(iter int) color.RGBA {
	if iter >= MaxIterations {
		return color.RGBA{A: 0xff}
	}
	t := math.Sqrt(float64(iter) / MaxIterations)
	channel := func(phase float64) uint8 {
		v := 0.5 + 0.5*math.Cos(2*math.Pi*(t+phase))
		return uint8(math.Round(v * 255))
	}
	return color.RGBA{R: channel(0), G: channel(0.1), B: channel(0.2), A: 0xff}
}

// Render draws s into a new image of s's size. Each pixel is sampled at its
// center. Rows are split into bands across pool.
func Render(s viewport.State, pool *parallel.Pool) *image.RGBA {
	w, h := s.Size()
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))

	var jobs []func()
	for y0 := 0; y0 < int(h); y0 += rowsPerJob {
		y1 := min(y0+rowsPerJob, int(h))
		jobs = append(jobs, func() {
			for y := y0; y < y1; y++ {
				for x := 0; x < int(w); x++ {
					c := s.PixelToPlane(f64.Vec2{float64(x) + 0.5, float64(y) + 0.5})
					img.SetRGBA(x, y, Color(Escape(c)))
				}
			}
		})
	}
	pool.Run(jobs)
	return img
}

// WritePNG renders s and encodes it as PNG to out.
func WritePNG(out io.Writer, s viewport.State, pool *parallel.Pool) error {
	if !s.Valid() {
		return fmt.Errorf("snapshot: invalid view %+v", s)
	}
	if err := png.Encode(out, Render(s, pool)); err != nil {
		return fmt.Errorf("snapshot: encode png: %w", err)
	}
	return nil
}
