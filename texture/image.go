package texture

import (
	"image"
	"image/color"
	"image/draw"
)

// imageView adapts a Texture to the image/draw interfaces.
// It reads and writes sample 0 (writes go to every sample).
type imageView struct {
	t *Texture
}

// Image returns a draw.Image view sharing t's storage.
// Color formats map to color.NRGBA64, depth formats to color.Gray16.
func (t *Texture) Image() draw.Image {
	return imageView{t: t}
}

func (v imageView) ColorModel() color.Model {
	if v.t.format.IsDepth() {
		return color.Gray16Model
	}
	return color.NRGBA64Model
}

func (v imageView) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.t.width, v.t.height)
}

func (v imageView) At(x, y int) color.Color {
	c := v.t.At(x, y)
	if v.t.format.IsDepth() {
		return color.Gray16{Y: to16(c.R)}
	}
	return color.NRGBA64{R: to16(c.R), G: to16(c.G), B: to16(c.B), A: to16(c.A)}
}

func (v imageView) Set(x, y int, c color.Color) {
	if v.t.format.IsDepth() {
		g := color.Gray16Model.Convert(c).(color.Gray16)
		v.t.SetDepth(x, y, float32(g.Y)/0xffff)
		return
	}
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	v.t.Set(x, y, Color{
		R: float32(n.R) / 0xffff,
		G: float32(n.G) / 0xffff,
		B: float32(n.B) / 0xffff,
		A: float32(n.A) / 0xffff,
	})
}

// ToNRGBA converts sample 0 to an 8-bit image, suitable for PNG encoding.
func (t *Texture) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			c := t.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)})
		}
	}
	return img
}

// FromImage creates an RGBA32F texture from img.
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	t, err := New(b.Dx(), b.Dy(), FormatRGBA32F)
	if err != nil {
		return nil, err
	}
	draw.Draw(t.Image(), t.Image().Bounds(), img, b.Min, draw.Src)
	return t, nil
}

func to16(v float32) uint16 {
	return uint16(clampUnit(v)*0xffff + 0.5)
}

func to8(v float32) uint8 {
	return uint8(clampUnit(v)*0xff + 0.5)
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
