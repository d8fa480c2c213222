package texture

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Common errors for texture operations.
var (
	// ErrInvalidDimensions is returned when width, height or samples is non-positive.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("texture: invalid format")

	// ErrFormatMismatch is returned when an operation receives a texture of the wrong format.
	ErrFormatMismatch = errors.New("texture: format mismatch")

	// ErrSizeMismatch is returned when two textures must share dimensions but do not.
	ErrSizeMismatch = errors.New("texture: size mismatch")

	// ErrAllocation is returned when a pool cannot provide a texture.
	ErrAllocation = errors.New("texture: allocation failed")
)

// Texture is a 2D grid of float32 pixels.
//
// Color textures hold straight-alpha RGBA. Depth textures hold one normalized
// depth value per sample, 0 at the near plane and 1 at the far plane.
//
// Thread safety: concurrent reads are safe; writes require external synchronization.
type Texture struct {
	id      uuid.UUID
	label   string
	width   int
	height  int
	samples int
	format  Format
	pix     []float32
}

// New creates a single-sampled texture.
func New(width, height int, format Format) (*Texture, error) {
	return NewMultisampled(width, height, 1, format)
}

// NewMultisampled creates a texture with the given number of samples per pixel.
func NewMultisampled(width, height, samples int, format Format) (*Texture, error) {
	if width <= 0 || height <= 0 || samples <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	return &Texture{
		id:      uuid.New(),
		width:   width,
		height:  height,
		samples: samples,
		format:  format,
		pix:     make([]float32, width*height*samples*format.Channels()),
	}, nil
}

// MustNew is like New but panics on error. Intended for tests and tools.
func MustNew(width, height int, format Format) *Texture {
	t, err := New(width, height, format)
	if err != nil {
		panic(err)
	}
	return t
}

// ID returns the unique identity assigned at creation.
func (t *Texture) ID() uuid.UUID { return t.id }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// SetLabel sets the debug label.
func (t *Texture) SetLabel(label string) { t.label = label }

// Width returns the width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the height in pixels.
func (t *Texture) Height() int { return t.height }

// Size returns (width, height).
func (t *Texture) Size() (int, int) { return t.width, t.height }

// Samples returns the number of samples per pixel.
func (t *Texture) Samples() int { return t.samples }

// IsMultisampled reports whether the texture has more than one sample per pixel.
func (t *Texture) IsMultisampled() bool { return t.samples > 1 }

// Format returns the storage format.
func (t *Texture) Format() Format { return t.format }

// Pix returns the raw channel data.
// Layout: row-major pixels, each pixel holds Samples()*Channels() values.
func (t *Texture) Pix() []float32 { return t.pix }

// String implements fmt.Stringer.
func (t *Texture) String() string {
	name := t.label
	if name == "" {
		name = t.id.String()
	}
	return fmt.Sprintf("%s %dx%d %s x%d", name, t.width, t.height, t.format, t.samples)
}

func (t *Texture) offset(x, y, sample int) int {
	ch := t.format.Channels()
	return ((y*t.width+x)*t.samples + sample) * ch
}

// InBounds reports whether (x, y) lies inside the texture.
func (t *Texture) InBounds(x, y int) bool {
	return x >= 0 && x < t.width && y >= 0 && y < t.height
}

// At returns the color of sample 0 at (x, y).
// Out-of-bounds reads return Transparent. Single-channel formats return the
// value replicated into RGB with alpha 1.
func (t *Texture) At(x, y int) Color {
	if !t.InBounds(x, y) {
		return Transparent
	}
	i := t.offset(x, y, 0)
	if t.format.Channels() == 1 {
		v := t.pix[i]
		return Color{R: v, G: v, B: v, A: 1}
	}
	return Color{R: t.pix[i], G: t.pix[i+1], B: t.pix[i+2], A: t.pix[i+3]}
}

// Set writes c to every sample at (x, y). Out-of-bounds writes are ignored.
// Single-channel formats store the red channel.
func (t *Texture) Set(x, y int, c Color) {
	if !t.InBounds(x, y) {
		return
	}
	for s := 0; s < t.samples; s++ {
		i := t.offset(x, y, s)
		if t.format.Channels() == 1 {
			t.pix[i] = c.R
			continue
		}
		t.pix[i] = c.R
		t.pix[i+1] = c.G
		t.pix[i+2] = c.B
		t.pix[i+3] = c.A
	}
}

// Depth returns sample 0 of the first channel at (x, y), clamping
// coordinates to the edge.
func (t *Texture) Depth(x, y int) float32 {
	return t.DepthSample(x, y, 0)
}

// DepthSample returns the first channel of the given sample at (x, y),
// clamping coordinates and sample index.
func (t *Texture) DepthSample(x, y, sample int) float32 {
	x = clamp(x, 0, t.width-1)
	y = clamp(y, 0, t.height-1)
	sample = clamp(sample, 0, t.samples-1)
	return t.pix[t.offset(x, y, sample)]
}

// SetDepth writes d to every sample at (x, y).
func (t *Texture) SetDepth(x, y int, d float32) {
	if !t.InBounds(x, y) {
		return
	}
	for s := 0; s < t.samples; s++ {
		t.pix[t.offset(x, y, s)] = d
	}
}

// SetDepthSample writes d to a single sample at (x, y).
func (t *Texture) SetDepthSample(x, y, sample int, d float32) {
	if !t.InBounds(x, y) || sample < 0 || sample >= t.samples {
		return
	}
	t.pix[t.offset(x, y, sample)] = d
}

// Fill sets every sample of every pixel to c.
func (t *Texture) Fill(c Color) {
	ch := t.format.Channels()
	if ch == 1 {
		for i := range t.pix {
			t.pix[i] = c.R
		}
		return
	}
	for i := 0; i < len(t.pix); i += 4 {
		t.pix[i] = c.R
		t.pix[i+1] = c.G
		t.pix[i+2] = c.B
		t.pix[i+3] = c.A
	}
}

// FillDepth sets every depth sample to d.
func (t *Texture) FillDepth(d float32) {
	t.Fill(Color{R: d})
}

// Clear zeroes all channels.
func (t *Texture) Clear() {
	clear(t.pix)
}

// SameSize reports whether t and o have identical dimensions.
func (t *Texture) SameSize(o *Texture) bool {
	return o != nil && t.width == o.width && t.height == o.height
}

// Clone creates a deep copy with a fresh identity.
func (t *Texture) Clone() *Texture {
	c := *t
	c.id = uuid.New()
	c.pix = make([]float32, len(t.pix))
	copy(c.pix, t.pix)
	return &c
}

// Blit copies src into dst. Both textures must share size, format and
// sample count; this is the "just copy" step of a post-process.
func Blit(dst, src *Texture) error {
	if dst == nil || src == nil {
		return ErrInvalidDimensions
	}
	if !dst.SameSize(src) || dst.samples != src.samples {
		return fmt.Errorf("blit %s -> %s: %w", src, dst, ErrSizeMismatch)
	}
	if dst.format != src.format {
		return fmt.Errorf("blit %s -> %s: %w", src, dst, ErrFormatMismatch)
	}
	copy(dst.pix, src.pix)
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
