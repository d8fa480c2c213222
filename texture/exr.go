package texture

import (
	"fmt"
	"image"

	"github.com/mrjoshuak/go-openexr/exr"
)

// EXRImage converts sample 0 of t to an OpenEXR RGBA image.
// Depth formats are written as grey with alpha 1.
func (t *Texture) EXRImage() *exr.RGBAImage {
	img := exr.NewRGBAImage(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			c := t.At(x, y)
			img.SetRGBA(x, y, c.R, c.G, c.B, c.A)
		}
	}
	return img
}

// WriteEXR writes t to path as a half-float OpenEXR file.
func (t *Texture) WriteEXR(path string) error {
	if err := exr.EncodeFile(path, t.EXRImage()); err != nil {
		return fmt.Errorf("texture: write %s: %w", path, err)
	}
	slogger().Debug("texture: wrote exr", "texture", t.String(), "path", path)
	return nil
}

// ReadEXR loads an OpenEXR file into an RGBA32F texture.
func ReadEXR(path string) (*Texture, error) {
	img, err := exr.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	b := img.Bounds()
	t, err := New(b.Dx(), b.Dy(), FormatRGBA32F)
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, a := img.RGBA(b.Min.X+x, b.Min.Y+y)
			t.Set(x, y, Color{R: r, G: g, B: bl, A: a})
		}
	}
	t.SetLabel(path)
	return t, nil
}
