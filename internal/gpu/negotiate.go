package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/mandelbrot/viewport"
)

// CapabilityF64 names the device feature the double-precision kernel needs.
const CapabilityF64 = "shader-f64"

var (
	// ErrNoDevice is returned by Negotiate when neither precision tier can
	// be opened.
	ErrNoDevice = errors.New("gpu: no usable device")

	// ErrMissingFeature is returned for a tier whose device feature is not
	// enabled.
	ErrMissingFeature = errors.New("gpu: device feature not enabled")
)

// RequireF64 wraps open so that the viewport.F64 tier fails with
// ErrMissingFeature unless features enables gputypes.FeatureShaderFloat64.
// open is not called for a refused tier.
func RequireF64[T any](features gputypes.Features, open func(viewport.Precision) (T, error)) func(viewport.Precision) (T, error) {
	return func(p viewport.Precision) (T, error) {
		if p == viewport.F64 && !features.Contains(gputypes.FeatureShaderFloat64) {
			var zero T
			return zero, fmt.Errorf("%w: %s", ErrMissingFeature, CapabilityF64)
		}
		return open(p)
	}
}

// Negotiate opens a resource at the best precision available. With allowF64
// it first tries viewport.F64 and falls back to viewport.F32 on failure;
// without it only F32 is tried. open is called at most twice. The returned
// precision is the one the resource was opened with.
func Negotiate[T any](open func(viewport.Precision) (T, error), allowF64 bool) (T, viewport.Precision, error) {
	var errF64 error
	if allowF64 {
		r, err := open(viewport.F64)
		if err == nil {
			slogger().Info("gpu: using double precision", "capability", CapabilityF64)
			return r, viewport.F64, nil
		}
		errF64 = err
		slogger().Warn("gpu: double precision unavailable, falling back to f32",
			"capability", CapabilityF64, "error", err)
	}

	r, err := open(viewport.F32)
	if err != nil {
		var zero T
		if errF64 != nil {
			return zero, viewport.F32, fmt.Errorf("%w: %s tier: %w; f32 tier: %w",
				ErrNoDevice, CapabilityF64, errF64, err)
		}
		return zero, viewport.F32, fmt.Errorf("%w: f32 tier: %w", ErrNoDevice, err)
	}
	slogger().Info("gpu: using single precision")
	return r, viewport.F32, nil
}
