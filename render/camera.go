// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/offscreen/texture"
)

// ClearFlags selects what a pass clears before drawing.
type ClearFlags uint8

const (
	// ClearNothing keeps the target contents.
	ClearNothing ClearFlags = iota

	// ClearColor fills the target with the camera background color.
	ClearColor
)

// String returns a string representation of the flags.
func (f ClearFlags) String() string {
	switch f {
	case ClearNothing:
		return "Nothing"
	case ClearColor:
		return "Color"
	default:
		return "Unknown"
	}
}

// RenderingPath is the lighting path a camera renders with.
type RenderingPath uint8

const (
	// PathForward renders each object with all its lights in one pass.
	PathForward RenderingPath = iota

	// PathDeferred renders a G-buffer first. Transparent particles cannot use it.
	PathDeferred
)

// DepthTextureMode selects extra depth output a camera produces.
type DepthTextureMode uint8

const (
	// DepthTextureNone produces no depth texture.
	DepthTextureNone DepthTextureMode = 0

	// DepthTextureDepth produces a full-resolution depth texture.
	DepthTextureDepth DepthTextureMode = 1 << 0
)

// Camera describes how a pass sees the scene.
//
// Camera is a value: building one pass from another copies it, so changing
// the off-screen pass never disturbs the primary camera.
type Camera struct {
	// View transforms world space to eye space.
	View mgl32.Mat4

	// Projection transforms eye space to clip space (OpenGL conventions).
	Projection mgl32.Mat4

	// CullingMask selects the layers this camera renders.
	CullingMask LayerMask

	// ClearFlags selects what is cleared before rendering.
	ClearFlags ClearFlags

	// Background is the clear color.
	Background texture.Color

	// RenderingPath is the lighting path.
	RenderingPath RenderingPath

	// DepthTextureMode is the extra depth output requested.
	DepthTextureMode DepthTextureMode

	// OcclusionCulling enables occlusion culling.
	OcclusionCulling bool
}

// NewOrthoCamera returns a camera mapping world x in [0,width) and y in
// [0,height) onto the target with the origin at the top-left corner.
// Eye-space z in [-1, 0] maps to depth [1, 0], so a point at z = -d has depth d.
func NewOrthoCamera(width, height int) Camera {
	return Camera{
		View:        mgl32.Ident4(),
		Projection:  mgl32.Ortho(0, float32(width), float32(height), 0, 0, 1),
		CullingMask: Everything,
	}
}

// NewPerspectiveCamera returns a camera at eye looking at center.
func NewPerspectiveCamera(fovYDegrees, aspect, near, far float32, eye, center, up mgl32.Vec3) Camera {
	return Camera{
		View:        mgl32.LookAtV(eye, center, up),
		Projection:  mgl32.Perspective(mgl32.DegToRad(fovYDegrees), aspect, near, far),
		CullingMask: Everything,
	}
}

// ViewProjection returns Projection * View.
func (c Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View)
}

// Projected is a point mapped into a target.
type Projected struct {
	// X and Y are target pixel coordinates, origin top-left.
	X, Y float32

	// Depth is the normalized depth in [0, 1], 0 at the near plane.
	Depth float32
}

// Project maps world point p into a width×height target.
// ok is false when p lies behind the eye or outside the near/far range.
func (c Camera) Project(p mgl32.Vec3, width, height int) (Projected, bool) {
	return project(c.ViewProjection(), p.Vec4(1), width, height)
}

func project(m mgl32.Mat4, p mgl32.Vec4, width, height int) (Projected, bool) {
	clip := m.Mul4x1(p)
	w := clip.W()
	if w <= 0 {
		return Projected{}, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return Projected{}, false
	}
	return Projected{
		X:     (ndc.X()*0.5 + 0.5) * float32(width),
		Y:     (0.5 - ndc.Y()*0.5) * float32(height),
		Depth: ndc.Z()*0.5 + 0.5,
	}, true
}

// ParticlePass derives the off-screen particle camera from the primary camera.
//
// The result keeps the primary view and projection, forces forward rendering,
// disables depth texture output and occlusion culling, restricts culling to
// mask and clears to clear with alpha forced to 0. It is rebuilt every frame
// so changes to the primary camera are always picked up.
func ParticlePass(primary Camera, mask LayerMask, clear texture.Color) Camera {
	c := primary
	c.RenderingPath = PathForward
	c.CullingMask = mask
	c.DepthTextureMode = DepthTextureNone
	c.OcclusionCulling = false
	c.Background = clear.WithAlpha(0)
	c.ClearFlags = ClearColor
	return c
}
