// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math/bits"
	"strings"
)

// MaxLayers is the number of distinct scene layers a LayerMask can address.
const MaxLayers = 32

// LayerMask selects scene layers by bit. Layer n is selected when bit n is set.
//
// The off-screen particle pass renders only objects whose layer is in its
// culling mask; everything else is never rasterized by that pass.
type LayerMask uint32

const (
	// Nothing selects no layer.
	Nothing LayerMask = 0

	// Everything selects every layer.
	Everything LayerMask = ^LayerMask(0)
)

// LayerMaskOf returns a mask selecting the given layers.
// Layers outside [0, MaxLayers) are ignored.
func LayerMaskOf(layers ...uint) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l < MaxLayers {
			m |= 1 << l
		}
	}
	return m
}

// Contains reports whether layer is selected.
func (m LayerMask) Contains(layer uint) bool {
	return layer < MaxLayers && m&(1<<layer) != 0
}

// With returns m with layer added.
func (m LayerMask) With(layer uint) LayerMask {
	return m | LayerMaskOf(layer)
}

// Without returns m with layer removed.
func (m LayerMask) Without(layer uint) LayerMask {
	return m &^ LayerMaskOf(layer)
}

// Count returns the number of selected layers.
func (m LayerMask) Count() int {
	return bits.OnesCount32(uint32(m))
}

// Layers returns the selected layers in ascending order.
func (m LayerMask) Layers() []uint {
	out := make([]uint, 0, m.Count())
	for l := uint(0); l < MaxLayers; l++ {
		if m.Contains(l) {
			out = append(out, l)
		}
	}
	return out
}

// String returns the selected layers, e.g. "Layers(1,8)".
func (m LayerMask) String() string {
	switch m {
	case Nothing:
		return "Nothing"
	case Everything:
		return "Everything"
	}
	parts := make([]string, 0, m.Count())
	for _, l := range m.Layers() {
		parts = append(parts, fmt.Sprint(l))
	}
	return "Layers(" + strings.Join(parts, ",") + ")"
}
