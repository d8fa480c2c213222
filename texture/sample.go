package texture

import "github.com/chewxy/math32"

// InterpolationMode defines how texture sampling is performed.
type InterpolationMode uint8

const (
	// InterpNearest selects the texel containing the coordinate.
	InterpNearest InterpolationMode = iota

	// InterpBilinear interpolates between the four nearest texel centres.
	InterpBilinear
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// Sample samples sample 0 of t at normalized coordinates (u, v).
// (0,0) is the top-left corner, (1,1) the bottom-right. Coordinates are clamped to the edge.
func Sample(t *Texture, u, v float32, mode InterpolationMode) Color {
	switch mode {
	case InterpNearest:
		return SampleNearest(t, u, v)
	case InterpBilinear:
		return SampleBilinear(t, u, v)
	default:
		return Transparent
	}
}

// SampleNearest performs point sampling at normalized coordinates (u, v).
func SampleNearest(t *Texture, u, v float32) Color {
	x, y := TexelAt(t.width, t.height, u, v)
	return t.At(x, y)
}

// TexelAt maps normalized coordinates to the containing texel of a w×h grid,
// clamped to the edge.
func TexelAt(w, h int, u, v float32) (int, int) {
	x := int(math32.Floor(u * float32(w)))
	y := int(math32.Floor(v * float32(h)))
	return clamp(x, 0, w-1), clamp(y, 0, h-1)
}

// Footprint describes the 2×2 texel neighbourhood used by a bilinear sample.
type Footprint struct {
	// X and Y hold the clamped texel coordinates in the order
	// top-left, top-right, bottom-left, bottom-right.
	X, Y [4]int

	// Weights holds the bilinear weight of each texel; they sum to 1.
	Weights [4]float32
}

// BilinearFootprint returns the bilinear neighbourhood of (u, v) in a w×h grid.
func BilinearFootprint(w, h int, u, v float32) Footprint {
	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5

	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	x1 := clamp(x0+1, 0, w-1)
	y1 := clamp(y0+1, 0, h-1)
	x0 = clamp(x0, 0, w-1)
	y0 = clamp(y0, 0, h-1)

	return Footprint{
		X: [4]int{x0, x1, x0, x1},
		Y: [4]int{y0, y0, y1, y1},
		Weights: [4]float32{
			(1 - tx) * (1 - ty),
			tx * (1 - ty),
			(1 - tx) * ty,
			tx * ty,
		},
	}
}

// SampleBilinear performs bilinear interpolation of sample 0 at normalized coordinates (u, v).
func SampleBilinear(t *Texture, u, v float32) Color {
	fp := BilinearFootprint(t.width, t.height, u, v)
	var out Color
	for i := 0; i < 4; i++ {
		c := t.At(fp.X[i], fp.Y[i])
		w := fp.Weights[i]
		out.R += c.R * w
		out.G += c.G * w
		out.B += c.B * w
		out.A += c.A * w
	}
	return out
}

// PixelCenter returns the normalized coordinates of the centre of pixel (x, y)
// in a w×h grid.
func PixelCenter(w, h, x, y int) (float32, float32) {
	return (float32(x) + 0.5) / float32(w), (float32(y) + 0.5) / float32(h)
}
