// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/offscreen/texture"
)

// ErrInvalidPass is returned when a pass cannot be rendered.
var ErrInvalidPass = errors.New("render: invalid pass")

// Pass is one render of a camera into a color target.
type Pass struct {
	// Camera selects what is drawn and how.
	Camera Camera

	// Target receives color. It must be FormatRGBA32F.
	Target *texture.Texture

	// Depth is the depth buffer fragments are tested against with
	// less-or-equal. Depth is never written. Nil disables the depth test.
	Depth *texture.Texture
}

// Validate reports whether the pass can be rendered.
func (p Pass) Validate() error {
	if p.Target == nil {
		return fmt.Errorf("%w: nil target", ErrInvalidPass)
	}
	if p.Target.Format() != texture.FormatRGBA32F {
		return fmt.Errorf("%w: target %s is not RGBA32F", ErrInvalidPass, p.Target)
	}
	if p.Depth != nil && !p.Depth.Format().IsDepth() {
		return fmt.Errorf("%w: depth %s is not a depth texture", ErrInvalidPass, p.Depth)
	}
	return nil
}

// LayerRenderer draws the layers selected by a pass camera.
//
// Implementations honor Camera.ClearFlags, draw only layers in
// Camera.CullingMask, and test against Pass.Depth when it is set.
type LayerRenderer interface {
	RenderLayer(pass Pass) error
}

// LayerRendererFunc adapts a function to LayerRenderer.
type LayerRendererFunc func(pass Pass) error

// RenderLayer calls f(pass).
func (f LayerRendererFunc) RenderLayer(pass Pass) error {
	return f(pass)
}

// Ensure implementations satisfy LayerRenderer.
var (
	_ LayerRenderer = (*SoftwareRenderer)(nil)
	_ LayerRenderer = LayerRendererFunc(nil)
)
