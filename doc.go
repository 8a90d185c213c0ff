// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mandelbrot is an interactive GPU explorer of the Mandelbrot set.
//
// # Overview
//
// The explorer renders the escape-time fractal in a fragment shader over a
// full-screen quad. Dragging with the primary button pans, the scroll wheel
// zooms around the pointer, F11 toggles fullscreen and Escape leaves it.
//
// # Quick Start
//
//	cfg := config.Default()
//	ex, err := mandelbrot.Open(cfg, provider, win, surface)
//	if err != nil {
//	    return err
//	}
//	defer ex.Close()
//
//	// From the window's event loop:
//	ex.Context().OnEvent(input.Scroll(1))
//	err = ex.Context().OnRedraw()
//
// # Precision
//
// The kernel runs in double precision when the device supports shader-f64
// and falls back to single precision otherwise. The choice is made once in
// [Open]; [Explorer.Precision] reports it.
//
// # Architecture
//
// The module is organized into:
//   - viewport: camera state and its GPU uniform encoding
//   - input: window events and the gesture translator
//   - window: fullscreen state machine and window title
//   - frame: the per-frame sequencer owning all mutable state
//   - internal/gpu: precision negotiation and the HAL renderer
//   - config: defaults, YAML file and command-line flags
//
// # Logging
//
// Logging is silent by default. Call [SetLogger] to enable it.
package mandelbrot
