// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu renders the Mandelbrot set through the gogpu/wgpu HAL.
//
// The fractal kernel exists in two variants selected by
// [viewport.Precision]: a double-precision one that needs the shader-f64
// device feature and a single-precision fallback. [Negotiate] picks the best
// variant the device accepts, once, at startup.
package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/mandelbrot/viewport"
)

// Embedded WGSL kernel sources.

//go:embed shaders/mandelbrot_f64.wgsl
var mandelbrotF64Source string

//go:embed shaders/mandelbrot_f32.wgsl
var mandelbrotF32Source string

// Shader entry points shared by both kernel variants.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// ErrShaderSource is returned when an embedded kernel source is empty.
var ErrShaderSource = errors.New("gpu: empty shader source")

// ShaderSource returns the WGSL source of the kernel for p.
func ShaderSource(p viewport.Precision) string {
	if p == viewport.F32 {
		return mandelbrotF32Source
	}
	return mandelbrotF64Source
}

// CompileShader translates the kernel for p to SPIR-V words. It fails when
// naga rejects the source.
func CompileShader(p viewport.Precision) ([]uint32, error) {
	src := ShaderSource(p)
	if src == "" {
		return nil, fmt.Errorf("%w: %s", ErrShaderSource, p)
	}

	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile %s kernel: %w", p, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile %s kernel: SPIR-V length %d is not a multiple of 4", p, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
