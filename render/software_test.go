// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/offscreen/texture"
)

var (
	red  = texture.RGBA(1, 0, 0, 1)
	blue = texture.RGBA(0, 0, 1, 1)
)

func newPass(w, h int) Pass {
	cam := NewOrthoCamera(w, h)
	cam.ClearFlags = ClearColor
	return Pass{Camera: cam, Target: texture.MustNew(w, h, texture.FormatRGBA32F)}
}

func TestSoftwareRendererInvalidPass(t *testing.T) {
	r := NewSoftwareRenderer(nil)

	tests := []struct {
		name string
		pass Pass
	}{
		{"nil target", Pass{}},
		{"depth target", Pass{Target: texture.MustNew(2, 2, texture.FormatR32F)}},
		{"color depth", Pass{
			Target: texture.MustNew(2, 2, texture.FormatRGBA32F),
			Depth:  texture.MustNew(2, 2, texture.FormatRGBA32F),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.RenderLayer(tt.pass); !errors.Is(err, ErrInvalidPass) {
				t.Errorf("err = %v, want ErrInvalidPass", err)
			}
		})
	}
}

func TestSoftwareRendererClear(t *testing.T) {
	r := NewSoftwareRenderer(nil)
	pass := newPass(4, 4)
	pass.Target.Fill(red)
	pass.Camera.Background = texture.RGBA(0.5, 0.5, 0.5, 0)

	if err := r.RenderLayer(pass); err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if got := pass.Target.At(3, 3); got != pass.Camera.Background {
		t.Errorf("after clear = %+v", got)
	}

	pass.Target.Fill(red)
	pass.Camera.ClearFlags = ClearNothing
	if err := r.RenderLayer(pass); err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if got := pass.Target.At(0, 0); got != red {
		t.Errorf("ClearNothing changed target: %+v", got)
	}
}

func TestSoftwareRendererCoverage(t *testing.T) {
	scene := NewParticleScene()
	scene.Add(Particle{Position: mgl32.Vec3{8, 8, -0.5}, Size: 4, Color: red})
	r := NewSoftwareRenderer(scene)
	pass := newPass(16, 16)

	if err := r.RenderLayer(pass); err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}

	// Pixel centres in [6, 10) on both axes.
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			inside := x >= 6 && x <= 9 && y >= 6 && y <= 9
			got := pass.Target.At(x, y)
			if inside && got != red {
				t.Errorf("(%d,%d) = %+v, want covered", x, y, got)
			}
			if !inside && got != texture.Transparent {
				t.Errorf("(%d,%d) = %+v, want clear", x, y, got)
			}
		}
	}
	if s := r.Stats(); s.Drawn != 1 || s.Fragments != 16 {
		t.Errorf("stats = %+v", s)
	}
}

func TestSoftwareRendererCullingMask(t *testing.T) {
	scene := NewParticleScene()
	scene.Add(
		Particle{Position: mgl32.Vec3{4, 4, -0.5}, Size: 2, Color: red, Layer: 3},
		Particle{Position: mgl32.Vec3{12, 12, -0.5}, Size: 2, Color: blue, Layer: 8},
	)
	r := NewSoftwareRenderer(scene)
	pass := newPass(16, 16)
	pass.Camera.CullingMask = LayerMaskOf(8)

	if err := r.RenderLayer(pass); err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if got := pass.Target.At(4, 4); got != texture.Transparent {
		t.Errorf("masked layer drawn: %+v", got)
	}
	if got := pass.Target.At(12, 12); got != blue {
		t.Errorf("selected layer = %+v", got)
	}
	if s := r.Stats(); s.Drawn != 1 || s.Culled != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestSoftwareRendererDepthTest(t *testing.T) {
	depth := texture.MustNew(16, 16, texture.FormatDepth32F)
	depth.FillDepth(0.25)

	tests := []struct {
		name     string
		z        float32
		wantDraw bool
	}{
		{"in front", -0.125, true},
		{"equal depth passes", -0.25, true},
		{"behind", -0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := NewParticleScene()
			scene.Add(Particle{Position: mgl32.Vec3{8, 8, tt.z}, Size: 4, Color: red})
			r := NewSoftwareRenderer(scene)
			pass := newPass(16, 16)
			pass.Depth = depth

			if err := r.RenderLayer(pass); err != nil {
				t.Fatalf("RenderLayer: %v", err)
			}
			drawn := pass.Target.At(8, 8) == red
			if drawn != tt.wantDraw {
				t.Errorf("drawn = %v, want %v", drawn, tt.wantDraw)
			}
			if !tt.wantDraw && r.Stats().Occluded != 1 {
				t.Errorf("stats = %+v", r.Stats())
			}
			if depth.Depth(8, 8) != 0.25 {
				t.Error("depth buffer was written")
			}
		})
	}
}

func TestSoftwareRendererLowResDepth(t *testing.T) {
	// A half-resolution target tests against a full-resolution depth buffer
	// through UV mapping.
	depth := texture.MustNew(16, 16, texture.FormatDepth32F)
	depth.FillDepth(1)
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			depth.SetDepth(x, y, 0.125)
		}
	}
	scene := NewParticleScene()
	scene.Add(Particle{Position: mgl32.Vec3{4, 4, -0.5}, Size: 8, Color: red})
	r := NewSoftwareRenderer(scene)
	pass := newPass(8, 8)
	pass.Depth = depth

	if err := r.RenderLayer(pass); err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if got := pass.Target.At(1, 4); got != texture.Transparent {
		t.Errorf("occluded half drawn: %+v", got)
	}
	if got := pass.Target.At(6, 4); got != red {
		t.Errorf("visible half = %+v", got)
	}
}

func TestSoftwareRendererBackToFront(t *testing.T) {
	scene := NewParticleScene()
	// Near particle first: sorting must still draw it last.
	scene.Add(
		Particle{Position: mgl32.Vec3{8, 8, -0.25}, Size: 4, Color: red},
		Particle{Position: mgl32.Vec3{8, 8, -0.75}, Size: 4, Color: blue},
	)
	r := NewSoftwareRenderer(scene)
	pass := newPass(16, 16)

	if err := r.RenderLayer(pass); err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if got := pass.Target.At(8, 8); got != red {
		t.Errorf("overlap = %+v, want near particle on top", got)
	}
}

func TestSoftwareRendererOffscreen(t *testing.T) {
	scene := NewParticleScene()
	scene.Add(Particle{Position: mgl32.Vec3{-20, 8, -0.5}, Size: 4, Color: red})
	r := NewSoftwareRenderer(scene)

	if err := r.RenderLayer(newPass(16, 16)); err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if s := r.Stats(); s.Culled != 1 || s.Drawn != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestLayerRendererFunc(t *testing.T) {
	called := false
	var lr LayerRenderer = LayerRendererFunc(func(Pass) error {
		called = true
		return nil
	})
	if err := lr.RenderLayer(Pass{}); err != nil || !called {
		t.Errorf("called = %v, err = %v", called, err)
	}
}
