package main

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/mandelbrot/input"
)

// mapKey translates a gogpu key code. Keys the explorer does not bind map
// to input.KeyUnknown.
func mapKey(k gpucontext.Key) input.Key {
	switch k {
	case gpucontext.KeyEscape:
		return input.KeyEscape
	case gpucontext.KeyF11:
		return input.KeyF11
	case gpucontext.KeyC:
		return input.KeyC
	case gpucontext.KeyV:
		return input.KeyV
	case gpucontext.KeyR:
		return input.KeyR
	default:
		return input.KeyUnknown
	}
}

// mapButton translates a gogpu mouse button.
func mapButton(b gpucontext.MouseButton) input.Button {
	switch b {
	case gpucontext.MouseButtonLeft:
		return input.ButtonPrimary
	case gpucontext.MouseButtonRight:
		return input.ButtonSecondary
	default:
		return input.ButtonMiddle
	}
}

// scrollDelta converts a wheel offset to a zoom delta in lines. Scrolling
// up (positive dy) zooms in, which shrinks the plane extent.
func scrollDelta(dy float64) float64 {
	return -dy
}
