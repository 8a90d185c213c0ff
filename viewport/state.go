// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package viewport holds the camera model of the fractal explorer and its
// GPU uniform encodings.
//
// The camera maps screen pixels to points of the complex plane. Screen
// coordinates have their origin at the top-left corner with Y increasing
// downward; plane coordinates use the same axis orientation, so a pixel
// offset (dx, dy) from the screen center maps to a plane offset of
// (dx, dy) / Scale.
//
// Zoom is the plane distance spanned by the shorter side of the drawable
// area. Displayed magnification is 1/Zoom.
package viewport

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Precision selects the uniform layout and the shader variant.
// It is fixed once at startup by device negotiation.
type Precision uint8

const (
	// F64 evaluates the fractal with 64-bit floats on the GPU.
	F64 Precision = iota
	// F32 evaluates the fractal with 32-bit floats on the GPU.
	F32
)

// String returns "f64" or "f32".
func (p Precision) String() string {
	switch p {
	case F64:
		return "f64"
	case F32:
		return "f32"
	default:
		return fmt.Sprintf("Precision(%d)", uint8(p))
	}
}

// State is the authoritative camera model.
//
// All host-side arithmetic is float64 regardless of Precision; only the
// encoded uniform is narrowed to float32 in F32 mode.
type State struct {
	// Center is the plane point shown at the screen center.
	Center f64.Vec2

	// Zoom is the plane distance covered by the shorter screen side.
	// Always > 0.
	Zoom float64

	// Width and Height are the drawable size in pixels. Both are >= 1.
	Width, Height uint32

	// Precision selects the uniform layout.
	Precision Precision
}

// New returns a State centered on the origin with Zoom 1 for a drawable of
// the given size. Zero dimensions are raised to 1.
func New(width, height uint32, p Precision) State {
	s := State{Zoom: 1, Precision: p}
	s.Resize(width, height)
	return s
}

// Resize updates the drawable size. Zero dimensions are raised to 1 so the
// aspect ratio and scale stay finite while a window is minimized.
func (s *State) Resize(width, height uint32) {
	s.Width = max(width, 1)
	s.Height = max(height, 1)
}

// Size returns the drawable size in pixels.
func (s State) Size() (width, height uint32) {
	return s.Width, s.Height
}

// Aspect returns width / height.
func (s State) Aspect() float64 {
	return float64(s.Width) / float64(s.Height)
}

// Scale returns the number of pixels per plane unit.
func (s State) Scale() float64 {
	return float64(min(s.Width, s.Height)) / s.Zoom
}

// Magnification returns 1/Zoom.
func (s State) Magnification() float64 {
	return 1 / s.Zoom
}

// ScreenCenter returns the pixel coordinates of the screen center.
func (s State) ScreenCenter() f64.Vec2 {
	return f64.Vec2{float64(s.Width) / 2, float64(s.Height) / 2}
}

// PixelToPlane maps a pixel position to plane coordinates.
func (s State) PixelToPlane(p f64.Vec2) f64.Vec2 {
	c := s.ScreenCenter()
	k := s.Scale()
	return f64.Vec2{
		s.Center[0] + (p[0]-c[0])/k,
		s.Center[1] + (p[1]-c[1])/k,
	}
}

// PlaneToPixel maps plane coordinates to a pixel position.
func (s State) PlaneToPixel(z f64.Vec2) f64.Vec2 {
	c := s.ScreenCenter()
	k := s.Scale()
	return f64.Vec2{
		c[0] + (z[0]-s.Center[0])*k,
		c[1] + (z[1]-s.Center[1])*k,
	}
}

// Valid reports whether the camera invariants hold: finite center and a
// finite positive zoom.
func (s State) Valid() bool {
	return finite(s.Center[0]) && finite(s.Center[1]) &&
		finite(s.Zoom) && s.Zoom > 0 &&
		s.Width > 0 && s.Height > 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
