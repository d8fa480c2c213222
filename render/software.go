// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/offscreen/internal/blend"
	"github.com/gogpu/offscreen/texture"
)

// SoftwareRenderer draws particle sprites on the CPU.
//
// Each particle is a camera-facing square whose edge is Particle.Size world
// units, projected through the pass camera. A pixel is covered when its
// centre lies inside the projected square. Sprites are drawn back to front
// with straight-alpha source-over blending, and fragments behind Pass.Depth
// are discarded (less-or-equal test, no depth writes).
//
// Example:
//
//	scene := render.NewParticleScene()
//	scene.Add(render.Particle{Position: mgl32.Vec3{40, 30, -0.5}, Size: 8, Color: smoke, Layer: 8})
//
//	renderer := render.NewSoftwareRenderer(scene)
//	err := renderer.RenderLayer(render.Pass{Camera: cam, Target: target, Depth: depth})
type SoftwareRenderer struct {
	scene *ParticleScene

	// sprites is reused between passes.
	sprites []sprite

	stats RenderStats
}

// RenderStats counts what the last pass did.
type RenderStats struct {
	// Drawn is the number of particles that wrote at least one pixel.
	Drawn int

	// Culled is the number of particles skipped by the layer mask, the
	// near/far planes or the target bounds.
	Culled int

	// Occluded is the number of particles whose every fragment failed the depth test.
	Occluded int

	// Fragments is the number of pixels written.
	Fragments int
}

type sprite struct {
	x, y, r float32
	depth   float32
	color   texture.Color
}

// NewSoftwareRenderer creates a renderer drawing scene.
// A nil scene renders nothing but still honors the pass clear flags.
func NewSoftwareRenderer(scene *ParticleScene) *SoftwareRenderer {
	return &SoftwareRenderer{scene: scene}
}

// Scene returns the scene being drawn.
func (r *SoftwareRenderer) Scene() *ParticleScene {
	return r.scene
}

// SetScene replaces the scene being drawn.
func (r *SoftwareRenderer) SetScene(scene *ParticleScene) {
	r.scene = scene
}

// Stats returns the counters of the last RenderLayer call.
func (r *SoftwareRenderer) Stats() RenderStats {
	return r.stats
}

// RenderLayer draws the particles selected by the pass camera into the pass target.
func (r *SoftwareRenderer) RenderLayer(pass Pass) error {
	if err := pass.Validate(); err != nil {
		return err
	}
	r.stats = RenderStats{}

	if pass.Camera.ClearFlags == ClearColor {
		pass.Target.Fill(pass.Camera.Background)
	}
	if r.scene == nil || r.scene.IsEmpty() {
		return nil
	}

	r.collect(pass)
	for i := range r.sprites {
		r.draw(pass, &r.sprites[i])
	}
	return nil
}

// collect projects the visible particles and sorts them far to near.
func (r *SoftwareRenderer) collect(pass Pass) {
	tw, th := pass.Target.Size()
	cam := pass.Camera

	r.sprites = r.sprites[:0]
	for _, p := range r.scene.Particles() {
		if !cam.CullingMask.Contains(p.Layer) || p.Size <= 0 || p.Color.A <= 0 {
			r.stats.Culled++
			continue
		}
		eye := cam.View.Mul4x1(p.Position.Vec4(1))
		centre, ok := project(cam.Projection, eye, tw, th)
		if !ok {
			r.stats.Culled++
			continue
		}
		edge, _ := project(cam.Projection, eye.Add(mgl32.Vec4{p.Size / 2, 0, 0, 0}), tw, th)
		r.sprites = append(r.sprites, sprite{
			x:     centre.X,
			y:     centre.Y,
			r:     math32.Abs(edge.X - centre.X),
			depth: centre.Depth,
			color: p.Color,
		})
	}
	slices.SortStableFunc(r.sprites, func(a, b sprite) int {
		return cmp.Compare(b.depth, a.depth)
	})
}

// draw rasterizes one sprite.
func (r *SoftwareRenderer) draw(pass Pass, s *sprite) {
	tw, th := pass.Target.Size()
	x0, x1 := coveredRange(s.x, s.r, tw)
	y0, y1 := coveredRange(s.y, s.r, th)
	if x0 > x1 || y0 > y1 {
		r.stats.Culled++
		return
	}

	written := 0
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			if pass.Depth != nil && s.depth > sceneDepth(pass.Depth, tw, th, px, py) {
				continue
			}
			pass.Target.Set(px, py, blend.Over(s.color, pass.Target.At(px, py)))
			written++
		}
	}
	if written == 0 {
		r.stats.Occluded++
		return
	}
	r.stats.Drawn++
	r.stats.Fragments += written
}

// coveredRange returns the pixels whose centres lie in [c-r, c+r), clamped to [0, n).
func coveredRange(c, r float32, n int) (int, int) {
	lo := int(math32.Ceil(c - r - 0.5))
	hi := int(math32.Ceil(c+r-0.5)) - 1
	return max(lo, 0), min(hi, n-1)
}

// sceneDepth reads the depth buffer at the centre of target pixel (x, y).
// The depth buffer may have a different resolution than the target.
func sceneDepth(depth *texture.Texture, tw, th, x, y int) float32 {
	u, v := texture.PixelCenter(tw, th, x, y)
	dx, dy := texture.TexelAt(depth.Width(), depth.Height(), u, v)
	return depth.Depth(dx, dy)
}
