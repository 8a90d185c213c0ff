// Package gputest provides a device provider backed by the wgpu noop HAL,
// shaped like the provider of a running gogpu app.
package gputest

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// Source stands in for a *wgpu.Device.
type Source struct {
	Device   hal.Device
	Queue    hal.Queue
	Enabled  gputypes.Features
	Released bool
}

// HalDevice returns the HAL device, or nil once released.
func (s *Source) HalDevice() hal.Device {
	if s.Released {
		return nil
	}
	return s.Device
}

// HalQueue returns the HAL queue, or nil once released.
func (s *Source) HalQueue() hal.Queue {
	if s.Released {
		return nil
	}
	return s.Queue
}

// Features returns the features the device was opened with.
func (s *Source) Features() gputypes.Features { return s.Enabled }

// Provider implements gpucontext.DeviceProvider over a Source.
type Provider struct {
	Source *Source
	Format gputypes.TextureFormat
}

var _ gpucontext.DeviceProvider = (*Provider)(nil)

func (p *Provider) Device() gpucontext.Device {
	if p.Source == nil {
		return nil
	}
	return p.Source
}

func (p *Provider) Queue() gpucontext.Queue {
	if p.Source == nil {
		return nil
	}
	return p.Source.Queue
}

func (p *Provider) SurfaceFormat() gputypes.TextureFormat { return p.Format }
func (p *Provider) Adapter() gpucontext.Adapter           { return nil }

func (p *Provider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "Noop Adapter", Type: gpucontext.AdapterTypeSoftware}
}

// NewNoop opens a noop device with the given features reported as enabled.
// The device is destroyed when the test ends.
func NewNoop(tb testing.TB, features gputypes.Features) *Provider {
	tb.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		tb.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		tb.Fatal("noop instance has no adapters")
	}
	open, err := adapters[0].Adapter.Open(features, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		tb.Fatalf("Open failed: %v", err)
	}
	tb.Cleanup(func() {
		open.Device.Destroy()
		instance.Destroy()
	})
	return &Provider{
		Source: &Source{Device: open.Device, Queue: open.Queue, Enabled: features},
		Format: gputypes.TextureFormatBGRA8Unorm,
	}
}

// View returns a texture view usable as a render target on the noop device.
func View() hal.TextureView { return &noop.Resource{} }
