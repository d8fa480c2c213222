// Package downsample reduces a full-resolution depth buffer to the resolution
// of the off-screen particle target.
//
// Each low-resolution texel takes four taps around its centre, half a
// full-resolution texel away on each axis, and keeps the nearest depth. At the
// half factor the taps cover the whole 2×2 block, so a foreground occluder one
// pixel wide still hides the particles behind it in the low-resolution pass.
// At quarter and eighth factors only the central pixels of each block are
// read and a thin occluder can be missed; the composite detects those pixels
// and leaves them untouched.
//
// The tap offset is the reciprocal of the full-resolution width and is used
// for both axes, so on non-square targets the vertical taps are scaled by the
// aspect ratio. This matches the shader the effect was tuned with and is kept
// as is.
package downsample

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/offscreen/texture"
)

// ErrInvalidInput is returned when the source or destination cannot be used.
var ErrInvalidInput = errors.New("downsample: invalid input")

// Params are the per-frame parameters of the depth downsample program.
type Params struct {
	// PixelSize is the full-resolution texel size in UV units.
	PixelSize mgl32.Vec2

	// MSAA selects the resolve-aware tap.
	MSAA bool
}

// NewParams builds the parameters for a source fullWidth pixels wide.
func NewParams(fullWidth int, msaa bool) Params {
	px := float32(1)
	if fullWidth > 0 {
		px = 1 / float32(fullWidth)
	}
	return Params{
		PixelSize: mgl32.Vec2{px, px},
		MSAA:      msaa,
	}
}

// Size returns the low-resolution dimensions for a divisor, rounded down.
// A factor below 1 is treated as 1.
func Size(width, height, factor int) (int, int) {
	if factor < 1 {
		factor = 1
	}
	return width / factor, height / factor
}

// Depth writes the downsampled depth of src into dst.
//
// src must be a depth texture (FormatDepth32F or FormatR32F) and dst a
// single-sampled FormatR32F texture no larger than src. src is not modified.
func Depth(dst, src *texture.Texture, p Params) error {
	if src == nil || dst == nil {
		return fmt.Errorf("%w: nil texture", ErrInvalidInput)
	}
	if !src.Format().IsDepth() {
		return fmt.Errorf("%w: source %s is not a depth texture", ErrInvalidInput, src)
	}
	if dst.Format() != texture.FormatR32F || dst.IsMultisampled() {
		return fmt.Errorf("%w: destination %s must be single-sampled R32F", ErrInvalidInput, dst)
	}
	if dst.Width() > src.Width() || dst.Height() > src.Height() {
		return fmt.Errorf("%w: destination %s larger than source %s", ErrInvalidInput, dst, src)
	}

	lw, lh := dst.Size()
	hx := p.PixelSize.X() * 0.5
	hy := p.PixelSize.Y() * 0.5

	for y := 0; y < lh; y++ {
		for x := 0; x < lw; x++ {
			u, v := texture.PixelCenter(lw, lh, x, y)
			d := Tap(src, u-hx, v-hy, p.MSAA)
			d = math32.Min(d, Tap(src, u+hx, v-hy, p.MSAA))
			d = math32.Min(d, Tap(src, u-hx, v+hy, p.MSAA))
			d = math32.Min(d, Tap(src, u+hx, v+hy, p.MSAA))
			dst.SetDepth(x, y, d)
		}
	}
	return nil
}

// Tap reads one representative depth for the full-resolution pixel containing (u, v).
//
// Without MSAA the pixel's first sample is used. With MSAA the nearest sample
// wins: an averaged resolve would produce a depth belonging to neither surface
// at a silhouette.
func Tap(src *texture.Texture, u, v float32, msaa bool) float32 {
	x, y := texture.TexelAt(src.Width(), src.Height(), u, v)
	d := src.DepthSample(x, y, 0)
	if !msaa {
		return d
	}
	for s := 1; s < src.Samples(); s++ {
		d = math32.Min(d, src.DepthSample(x, y, s))
	}
	return d
}
