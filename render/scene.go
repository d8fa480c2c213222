// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/offscreen/texture"
)

// Particle is one camera-facing square sprite.
type Particle struct {
	// Position is the sprite centre in world space.
	Position mgl32.Vec3

	// Size is the sprite edge length in world units.
	Size float32

	// Color is the straight-alpha sprite color.
	Color texture.Color

	// Layer is the scene layer the sprite belongs to.
	Layer uint
}

// ParticleScene is a retained list of particles.
//
// A scene can be rendered many times and by several passes; each pass picks
// the particles whose layer its camera selects.
type ParticleScene struct {
	particles []Particle
	version   uint64
}

// NewParticleScene creates an empty scene.
func NewParticleScene() *ParticleScene {
	return &ParticleScene{}
}

// Add appends particles to the scene.
func (s *ParticleScene) Add(p ...Particle) {
	s.particles = append(s.particles, p...)
	s.version++
}

// Particles returns the scene particles. The slice must not be modified.
func (s *ParticleScene) Particles() []Particle {
	return s.particles
}

// Len returns the number of particles.
func (s *ParticleScene) Len() int {
	return len(s.particles)
}

// IsEmpty reports whether the scene has no particles.
func (s *ParticleScene) IsEmpty() bool {
	return len(s.particles) == 0
}

// Reset removes every particle, keeping the allocated storage.
func (s *ParticleScene) Reset() {
	s.particles = s.particles[:0]
	s.version++
}

// Version changes whenever the scene content changes.
func (s *ParticleScene) Version() uint64 {
	return s.version
}

// InMask returns how many particles belong to layers in mask.
func (s *ParticleScene) InMask(mask LayerMask) int {
	n := 0
	for i := range s.particles {
		if mask.Contains(s.particles[i].Layer) {
			n++
		}
	}
	return n
}
