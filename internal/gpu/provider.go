package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mandelbrot/viewport"
)

// ErrNoHAL is returned when a device provider does not expose HAL handles.
var ErrNoHAL = errors.New("gpu: provider does not expose a HAL device")

// DeviceSource is the part of a *wgpu.Device the renderer is built on.
// gogpu's provider returns its *wgpu.Device from Device().
type DeviceSource interface {
	HalDevice() hal.Device
	HalQueue() hal.Queue
	Features() gputypes.Features
}

var _ DeviceSource = (*wgpu.Device)(nil)

// Device is the HAL device and queue shared with the window's surface.
type Device struct {
	Device hal.Device
	Queue  hal.Queue

	// Features are the features the device was opened with.
	Features gputypes.Features

	// Format is the surface texture format render targets use.
	Format gputypes.TextureFormat
}

// FromProvider extracts the HAL device and queue from a gogpu device
// provider whose Device() is a DeviceSource.
func FromProvider(provider gpucontext.DeviceProvider) (Device, error) {
	if provider == nil {
		return Device{}, fmt.Errorf("%w: nil provider", ErrNoHAL)
	}
	src, ok := provider.Device().(DeviceSource)
	if !ok {
		return Device{}, fmt.Errorf("%w: device is %T", ErrNoHAL, provider.Device())
	}

	device, queue := src.HalDevice(), src.HalQueue()
	if device == nil || queue == nil {
		return Device{}, fmt.Errorf("%w: device released", ErrNoHAL)
	}

	return Device{
		Device:   device,
		Queue:    queue,
		Features: src.Features(),
		Format:   SurfaceFormat(provider),
	}, nil
}

// SurfaceFormat returns the provider's surface format, or BGRA8Unorm when
// the provider does not know it yet.
func SurfaceFormat(provider gpucontext.DeviceProvider) gputypes.TextureFormat {
	if provider == nil {
		return gputypes.TextureFormatBGRA8Unorm
	}
	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		return f
	}
	slogger().Debug("gpu: surface format unknown, assuming BGRA8Unorm")
	return gputypes.TextureFormatBGRA8Unorm
}

// Open negotiates the precision tier on d and returns a ready renderer.
// The double-precision tier is tried only with allowF64 and only when the
// device was opened with shader-f64.
func (d Device) Open(allowF64 bool) (*Renderer, error) {
	r, _, err := Negotiate(RequireF64(d.Features, func(p viewport.Precision) (*Renderer, error) {
		return NewRenderer(d.Device, d.Queue, d.Format, p)
	}), allowF64)
	return r, err
}
