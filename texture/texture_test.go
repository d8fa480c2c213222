package texture

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		w, h, s int
		format  Format
		wantErr error
	}{
		{"rgba", 4, 3, 1, FormatRGBA32F, nil},
		{"msaa depth", 4, 3, 4, FormatDepth32F, nil},
		{"zero width", 0, 3, 1, FormatRGBA32F, ErrInvalidDimensions},
		{"zero samples", 4, 3, 0, FormatR32F, ErrInvalidDimensions},
		{"bad format", 4, 3, 1, Format(42), ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := NewMultisampled(tt.w, tt.h, tt.s, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if want := tt.w * tt.h * tt.s * tt.format.Channels(); len(tex.Pix()) != want {
				t.Errorf("len(Pix) = %d, want %d", len(tex.Pix()), want)
			}
			if tex.IsMultisampled() != (tt.s > 1) {
				t.Errorf("IsMultisampled() = %v", tex.IsMultisampled())
			}
		})
	}
}

func TestFormatGPU(t *testing.T) {
	tests := []struct {
		format Format
		want   gputypes.TextureFormat
	}{
		{FormatRGBA32F, gputypes.TextureFormatRGBA32Float},
		{FormatR32F, gputypes.TextureFormatR32Float},
		{FormatDepth32F, gputypes.TextureFormatDepth32Float},
		{Format(200), gputypes.TextureFormatUndefined},
	}
	for _, tt := range tests {
		if got := tt.format.GPUFormat(); got != tt.want {
			t.Errorf("%v.GPUFormat() = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestDepthSamples(t *testing.T) {
	tex, err := NewMultisampled(2, 2, 4, FormatDepth32F)
	if err != nil {
		t.Fatal(err)
	}
	tex.FillDepth(0.9)
	tex.SetDepthSample(1, 1, 2, 0.1)

	if got := tex.Depth(1, 1); got != 0.9 {
		t.Errorf("Depth(1,1) = %v, want 0.9", got)
	}
	if got := tex.DepthSample(1, 1, 2); got != 0.1 {
		t.Errorf("DepthSample(1,1,2) = %v, want 0.1", got)
	}
	// Coordinates clamp to the edge.
	if got := tex.DepthSample(5, 5, 2); got != 0.1 {
		t.Errorf("clamped DepthSample = %v, want 0.1", got)
	}

	tex.SetDepth(0, 0, 0.3)
	for s := 0; s < 4; s++ {
		if got := tex.DepthSample(0, 0, s); got != 0.3 {
			t.Errorf("sample %d = %v, want 0.3", s, got)
		}
	}
}

func TestSetAt(t *testing.T) {
	tex := MustNew(3, 3, FormatRGBA32F)
	c := RGBA(0.1, 0.2, 0.3, 0.4)
	tex.Set(1, 2, c)
	if got := tex.At(1, 2); got != c {
		t.Errorf("At = %+v, want %+v", got, c)
	}
	tex.Set(-1, 0, c) // ignored
	if got := tex.At(-1, 0); got != Transparent {
		t.Errorf("out of bounds At = %+v", got)
	}
}

func TestBlit(t *testing.T) {
	src := MustNew(4, 4, FormatRGBA32F)
	src.Fill(RGBA(1, 0, 0, 1))
	dst := MustNew(4, 4, FormatRGBA32F)

	if err := Blit(dst, src); err != nil {
		t.Fatalf("Blit: %v", err)
	}
	if got := dst.At(3, 3); got != RGBA(1, 0, 0, 1) {
		t.Errorf("dst = %+v", got)
	}

	if err := Blit(MustNew(2, 2, FormatRGBA32F), src); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("size mismatch err = %v", err)
	}
	if err := Blit(MustNew(4, 4, FormatR32F), src); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("format mismatch err = %v", err)
	}
}

func TestClone(t *testing.T) {
	tex := MustNew(2, 2, FormatRGBA32F)
	tex.Fill(White)
	c := tex.Clone()
	c.Set(0, 0, Black)
	if tex.At(0, 0) != White {
		t.Error("Clone shares storage")
	}
	if c.ID() == tex.ID() {
		t.Error("Clone kept the same ID")
	}
}

func TestSampleBilinear(t *testing.T) {
	tex := MustNew(2, 1, FormatRGBA32F)
	tex.Set(0, 0, RGBA(0, 0, 0, 1))
	tex.Set(1, 0, RGBA(1, 1, 1, 1))

	tests := []struct {
		name string
		u    float32
		want float32
	}{
		{"left centre", 0.25, 0},
		{"right centre", 0.75, 1},
		{"midpoint", 0.5, 0.5},
		{"clamped left", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleBilinear(tex, tt.u, 0.5)
			if got.R != tt.want {
				t.Errorf("R = %v, want %v", got.R, tt.want)
			}
		})
	}
}

func TestBilinearFootprint(t *testing.T) {
	fp := BilinearFootprint(4, 4, 0.5, 0.5)
	if fp.X != [4]int{1, 2, 1, 2} || fp.Y != [4]int{1, 1, 2, 2} {
		t.Errorf("footprint = %v %v", fp.X, fp.Y)
	}
	var sum float32
	for _, w := range fp.Weights {
		sum += w
	}
	if sum != 1 {
		t.Errorf("weights sum = %v", sum)
	}
}

func TestImageView(t *testing.T) {
	tex := MustNew(2, 2, FormatRGBA32F)
	img := tex.Image()
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	if got := tex.At(1, 1); got != RGBA(1, 0, 0, 1) {
		t.Errorf("after Set: %+v", got)
	}
	if b := img.Bounds(); b != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds = %v", b)
	}

	depth := MustNew(1, 1, FormatR32F)
	depth.SetDepth(0, 0, 1)
	if g, ok := depth.Image().At(0, 0).(color.Gray16); !ok || g.Y != 0xffff {
		t.Errorf("depth view = %#v", depth.Image().At(0, 0))
	}
}

func TestEXRRoundTrip(t *testing.T) {
	tex := MustNew(8, 4, FormatRGBA32F)
	tex.Fill(RGBA(0.5, 0.25, 1, 1))

	path := filepath.Join(t.TempDir(), "buf.exr")
	if err := tex.WriteEXR(path); err != nil {
		t.Fatalf("WriteEXR: %v", err)
	}
	got, err := ReadEXR(path)
	if err != nil {
		t.Fatalf("ReadEXR: %v", err)
	}
	if got.Width() != 8 || got.Height() != 4 {
		t.Fatalf("size = %dx%d", got.Width(), got.Height())
	}
	// Half floats represent these values exactly.
	if c := got.At(7, 3); c != RGBA(0.5, 0.25, 1, 1) {
		t.Errorf("pixel = %+v", c)
	}
}
