package viewport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
	"golang.org/x/image/math/f64"
)

// Uniform buffer sizes in bytes.
//
// F64 layout (WGSL uniform rules: vec2<f64> aligns to 16):
//
//	center (vec2<f64>) = 16 bytes @0
//	zoom   (f64)       =  8 bytes @16
//	aspect (f64)       =  8 bytes @24
//
// F32 layout:
//
//	center (vec2<f32>) = 8 bytes @0
//	zoom   (f32)       = 4 bytes @8
//	aspect (f32)       = 4 bytes @12
const (
	UniformSize64 = 32
	UniformSize32 = 16
)

// ErrShortBuffer is returned by Decode when the input is smaller than the
// layout for the requested precision.
var ErrShortBuffer = errors.New("viewport: uniform buffer too short")

// Uniform is the parameter block consumed by the fractal shader.
type Uniform struct {
	Center f64.Vec2
	Zoom   float64
	Aspect float64
}

// Uniform returns the parameter block for s.
func (s State) Uniform() Uniform {
	return Uniform{Center: s.Center, Zoom: s.Zoom, Aspect: s.Aspect()}
}

// UniformSize returns the encoded size for p.
func UniformSize(p Precision) int {
	if p == F32 {
		return UniformSize32
	}
	return UniformSize64
}

// Encode serializes s into the little-endian uniform layout selected by
// s.Precision.
func Encode(s State) []byte {
	return AppendEncode(make([]byte, 0, UniformSize(s.Precision)), s)
}

// Lanes32 returns u in F32 layout order, narrowed to single precision.
func (u Uniform) Lanes32() f32.Vec4 {
	return f32.Vec4{float32(u.Center[0]), float32(u.Center[1]), float32(u.Zoom), float32(u.Aspect)}
}

// Lanes64 returns u in F64 layout order.
func (u Uniform) Lanes64() f64.Vec4 {
	return f64.Vec4{u.Center[0], u.Center[1], u.Zoom, u.Aspect}
}

// AppendEncode appends the uniform encoding of s to dst.
func AppendEncode(dst []byte, s State) []byte {
	u := s.Uniform()
	if s.Precision == F32 {
		for _, v := range u.Lanes32() {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
		}
		return dst
	}
	for _, v := range u.Lanes64() {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	}
	return dst
}

// Decode parses a uniform previously produced by Encode for precision p.
func Decode(p Precision, b []byte) (Uniform, error) {
	n := UniformSize(p)
	if len(b) < n {
		return Uniform{}, fmt.Errorf("%w: %s layout needs %d bytes, got %d", ErrShortBuffer, p, n, len(b))
	}
	if p == F32 {
		f := func(off int) float64 {
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off:])))
		}
		return Uniform{Center: f64.Vec2{f(0), f(4)}, Zoom: f(8), Aspect: f(12)}, nil
	}
	f := func(off int) float64 {
		return math.Float64frombits(binary.LittleEndian.Uint64(b[off:]))
	}
	return Uniform{Center: f64.Vec2{f(0), f(8)}, Zoom: f(16), Aspect: f(24)}, nil
}
