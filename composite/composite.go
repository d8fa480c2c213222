// Package composite blends the low-resolution particle buffer over the
// full-resolution scene.
//
// For every output pixel the depths of the 2×2 low-resolution texels that a
// bilinear fetch would read are compared with the full-resolution depth. When
// they all agree the pixel lies on a surface the low-resolution pass saw
// correctly and the particle buffer is bilinearly upsampled. When any of them
// disagrees the pixel straddles an edge the low resolution could not
// represent; the texel whose depth best matches the full-resolution surface is
// point-sampled instead, so particles neither bleed across thin occluders nor
// leave a halo around them.
//
// At coarse factors the depth downsample can miss an occluder entirely, so
// every footprint texel lies behind the full-resolution surface. The particles
// there were tested against the hidden background, and the scene pixel is left
// as is.
package composite

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/offscreen/internal/blend"
	"github.com/gogpu/offscreen/texture"
)

// DepthMult scales depth disagreement before it is compared with the threshold.
// It is calibrated for normalized non-linear depth in [0, 1].
const DepthMult float32 = 32.0

// ErrInvalidInput is returned when the composite inputs do not fit together.
var ErrInvalidInput = errors.New("composite: invalid input")

// Path is the sampling strategy chosen for one output pixel.
type Path uint8

const (
	// PathCheap upsamples the particle buffer bilinearly.
	PathCheap Path = iota

	// PathEdge point-samples the nearest-depth texel of the footprint.
	PathEdge
)

// String returns a string representation of the path.
func (p Path) String() string {
	switch p {
	case PathCheap:
		return "Cheap"
	case PathEdge:
		return "Edge"
	default:
		return "Unknown"
	}
}

// Params are the per-frame parameters of the composite program.
type Params struct {
	// LowResPixelSize is the low-resolution texel size in UV units.
	LowResPixelSize mgl32.Vec2

	// LowResTextureSize is the low-resolution size in texels.
	LowResTextureSize mgl32.Vec2

	// DepthMult scales the depth disagreement.
	DepthMult float32

	// Threshold is the scaled disagreement at which the edge path is taken.
	Threshold float32
}

// NewParams builds the parameters for a lowWidth×lowHeight particle buffer.
func NewParams(lowWidth, lowHeight int, threshold float32) Params {
	return Params{
		LowResPixelSize:   mgl32.Vec2{1 / float32(lowWidth), 1 / float32(lowHeight)},
		LowResTextureSize: mgl32.Vec2{float32(lowWidth), float32(lowHeight)},
		DepthMult:         DepthMult,
		Threshold:         threshold,
	}
}

// Decision is the classification of one output pixel.
type Decision struct {
	Path Path

	// Disagreement is the scaled maximum depth difference over the footprint.
	Disagreement float32

	// Footprint is the bilinear neighbourhood in the low-resolution buffers.
	Footprint texture.Footprint

	// Nearest indexes the footprint texel whose depth is closest to the
	// full-resolution depth. Only meaningful for PathEdge.
	Nearest int

	// Unseen is set on the edge path when every footprint texel lies behind
	// the full-resolution surface by at least the threshold.
	Unseen bool
}

// Texel returns the low-resolution coordinates of the nearest-depth texel.
func (d Decision) Texel() (int, int) {
	return d.Footprint.X[d.Nearest], d.Footprint.Y[d.Nearest]
}

// Stats counts how many pixels took each path.
type Stats struct {
	Cheap int
	Edge  int

	// Unseen counts edge pixels left unchanged. They are included in Edge.
	Unseen int
}

// Total returns the number of classified pixels.
func (s Stats) Total() int { return s.Cheap + s.Edge }

// Classify decides the sampling path for full-resolution pixel (x, y).
func Classify(fullDepth, lowDepth *texture.Texture, x, y int, p Params) Decision {
	u, v := texture.PixelCenter(fullDepth.Width(), fullDepth.Height(), x, y)
	fp := texture.BilinearFootprint(lowDepth.Width(), lowDepth.Height(), u, v)
	d := fullDepth.Depth(x, y)

	dec := Decision{Footprint: fp}
	best := math32.Inf(1)
	front := math32.Inf(1)
	for i := 0; i < 4; i++ {
		low := lowDepth.Depth(fp.X[i], fp.Y[i])
		front = math32.Min(front, low)
		diff := math32.Abs(low - d)
		dec.Disagreement = math32.Max(dec.Disagreement, diff*p.DepthMult)
		if diff < best {
			best = diff
			dec.Nearest = i
		}
	}
	if dec.Disagreement < p.Threshold {
		dec.Path = PathCheap
		return dec
	}
	dec.Path = PathEdge
	dec.Unseen = (front-d)*p.DepthMult >= p.Threshold
	return dec
}

// Upsample returns the bilinear particle sample at normalized (u, v).
func Upsample(particles *texture.Texture, u, v float32) texture.Color {
	return texture.SampleBilinear(particles, u, v)
}

// ParticleSample returns the particle color the decision selects for
// full-resolution pixel (x, y) of a w×h target. Unseen pixels get no particles.
func ParticleSample(particles *texture.Texture, dec Decision, w, h, x, y int) texture.Color {
	if dec.Unseen {
		return texture.Transparent
	}
	if dec.Path == PathCheap {
		u, v := texture.PixelCenter(w, h, x, y)
		return Upsample(particles, u, v)
	}
	tx, ty := dec.Texel()
	return particles.At(tx, ty)
}

// Composite blends particles over dst, which must already hold the
// full-resolution scene color.
//
// fullDepth must match dst in size; lowDepth and particles must match each
// other. Unseen pixels, and pixels where the selected particle sample is fully
// transparent, are left bit-for-bit unchanged.
func Composite(dst, fullDepth, lowDepth, particles *texture.Texture, p Params) (Stats, error) {
	if err := validate(dst, fullDepth, lowDepth, particles); err != nil {
		return Stats{}, err
	}

	var stats Stats
	w, h := dst.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dec := Classify(fullDepth, lowDepth, x, y, p)
			if dec.Path == PathCheap {
				stats.Cheap++
			} else {
				stats.Edge++
			}
			if dec.Unseen {
				stats.Unseen++
				continue
			}
			src := ParticleSample(particles, dec, w, h, x, y)
			dst.Set(x, y, blend.Alpha(src, dst.At(x, y)))
		}
	}
	return stats, nil
}

func validate(dst, fullDepth, lowDepth, particles *texture.Texture) error {
	switch {
	case dst == nil || fullDepth == nil || lowDepth == nil || particles == nil:
		return fmt.Errorf("%w: nil texture", ErrInvalidInput)
	case dst.Format() != texture.FormatRGBA32F || particles.Format() != texture.FormatRGBA32F:
		return fmt.Errorf("%w: color buffers must be RGBA32F: %w", ErrInvalidInput, texture.ErrFormatMismatch)
	case !fullDepth.Format().IsDepth() || !lowDepth.Format().IsDepth():
		return fmt.Errorf("%w: depth buffers required: %w", ErrInvalidInput, texture.ErrFormatMismatch)
	case !dst.SameSize(fullDepth):
		return fmt.Errorf("%w: %s vs %s: %w", ErrInvalidInput, dst, fullDepth, texture.ErrSizeMismatch)
	case !lowDepth.SameSize(particles):
		return fmt.Errorf("%w: %s vs %s: %w", ErrInvalidInput, lowDepth, particles, texture.ErrSizeMismatch)
	}
	return nil
}
