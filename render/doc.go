// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render describes the host side of the off-screen particle pass.
//
// The effect does not own a renderer. The host supplies a LayerRenderer that
// draws the layers a Camera selects into a Pass target, optionally testing
// against a scene depth buffer. This package defines those collaborators and
// ships a SoftwareRenderer that draws camera-facing particle sprites on the
// CPU, which the demo and the tests use.
//
// # Core Types
//
//   - Camera: view, projection, culling mask and clear state of a pass
//   - LayerMask: bit set of scene layers
//   - Pass: one render of a camera into a target
//   - LayerRenderer: draws a Pass
//   - DeviceHandle: GPU device access from the host application
//
// # Particle Pass
//
// ParticlePass derives the off-screen camera from the primary camera every
// frame:
//
//	pass := render.Pass{
//	    Camera: render.ParticlePass(primary, particleMask, texture.Transparent),
//	    Target: lowResColor,
//	    Depth:  lowResDepth,
//	}
//	err := renderer.RenderLayer(pass)
//
// # Thread Safety
//
// Renderers are NOT thread-safe. Each renderer should be used from a single
// goroutine, or external synchronization must be used.
package render
