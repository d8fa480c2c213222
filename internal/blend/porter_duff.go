// Package blend implements the compositing operators used by the off-screen
// particle stages.
//
// Colors use straight (non-premultiplied) alpha in float32, matching the
// conventional "SrcAlpha, OneMinusSrcAlpha" blend state of particle shaders.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "github.com/gogpu/offscreen/texture"

// Mode represents a compositing operation.
type Mode uint8

const (
	// ModeAlpha is classic alpha blending: rgb = S*Sa + D*(1-Sa), a = Sa + Da*(1-Sa).
	// This is the operator used to composite the particle layer over the scene.
	ModeAlpha Mode = iota

	// ModeOver is straight-alpha source-over, which un-premultiplies the result.
	// Used while accumulating particles into a transparent target.
	ModeOver

	// ModeSource replaces the destination.
	ModeSource
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAlpha:
		return "Alpha"
	case ModeOver:
		return "Over"
	case ModeSource:
		return "Source"
	default:
		return "Unknown"
	}
}

// Func is the signature of a blend operation.
type Func func(src, dst texture.Color) texture.Color

// Get returns the blend function for mode. Unknown modes return Alpha.
func Get(mode Mode) Func {
	switch mode {
	case ModeOver:
		return Over
	case ModeSource:
		return Source
	default:
		return Alpha
	}
}

// Alpha blends src over dst weighting the color channels by source alpha only.
// A fully transparent source leaves dst bit-for-bit unchanged.
func Alpha(src, dst texture.Color) texture.Color {
	if src.A <= 0 {
		return dst
	}
	inv := 1 - src.A
	return texture.Color{
		R: src.R*src.A + dst.R*inv,
		G: src.G*src.A + dst.G*inv,
		B: src.B*src.A + dst.B*inv,
		A: src.A + dst.A*inv,
	}
}

// Over composites src over dst and returns a straight-alpha result.
//
// With a transparent destination the result is exactly src, so the clear
// color of a particle target never tints the first particle drawn into it.
func Over(src, dst texture.Color) texture.Color {
	if src.A <= 0 {
		return dst
	}
	if src.A >= 1 || dst.A <= 0 {
		return src
	}
	inv := 1 - src.A
	da := dst.A * inv
	outA := src.A + da
	return texture.Color{
		R: (src.R*src.A + dst.R*da) / outA,
		G: (src.G*src.A + dst.G*da) / outA,
		B: (src.B*src.A + dst.B*da) / outA,
		A: outA,
	}
}

// Source returns src.
func Source(src, _ texture.Color) texture.Color {
	return src
}
