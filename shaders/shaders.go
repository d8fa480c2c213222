// Package shaders holds the GPU programs of the off-screen particle effect.
//
// The WGSL sources are embedded in the binary. Compile translates a program
// to SPIR-V with naga; NewModule creates the matching shader module on a HAL
// device received from the host.
package shaders

import (
	_ "embed"
)

// Embedded WGSL shader sources.

//go:embed wgsl/downsample_depth.wgsl
var downsampleDepthSource string

//go:embed wgsl/downsample_depth_msaa.wgsl
var downsampleDepthMSAASource string

//go:embed wgsl/composite.wgsl
var compositeSource string

// Entry point names shared by every program.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Program is one GPU program.
type Program struct {
	// Name identifies the program in logs and module labels.
	Name string

	// Source is the WGSL source.
	Source string

	// Entry is the fragment entry point.
	Entry string
}

// DownsampleDepth returns the single-sampled depth downsample program.
func DownsampleDepth() *Program {
	return &Program{Name: "downsample_depth", Source: downsampleDepthSource, Entry: FragmentEntry}
}

// DownsampleDepthMSAA returns the resolve-aware depth downsample program.
func DownsampleDepthMSAA() *Program {
	return &Program{Name: "downsample_depth_msaa", Source: downsampleDepthMSAASource, Entry: FragmentEntry}
}

// Composite returns the depth-aware composite program.
func Composite() *Program {
	return &Program{Name: "composite", Source: compositeSource, Entry: FragmentEntry}
}

// Set is the group of programs the effect needs. A nil field marks a
// program the host did not provide.
type Set struct {
	Downsample     *Program
	DownsampleMSAA *Program
	Composite      *Program
}

// Default returns the embedded programs.
func Default() Set {
	return Set{
		Downsample:     DownsampleDepth(),
		DownsampleMSAA: DownsampleDepthMSAA(),
		Composite:      Composite(),
	}
}

// Downsampler returns the downsample program for the source sample count and
// whether it resolves multisampled depth. The single-sampled program stands in
// when no MSAA variant is provided and reads sample 0 only.
func (s Set) Downsampler(msaa bool) (*Program, bool) {
	if msaa && s.DownsampleMSAA != nil {
		return s.DownsampleMSAA, true
	}
	return s.Downsample, false
}

// Missing returns the names of required programs that are not set.
func (s Set) Missing() []string {
	var missing []string
	if s.Composite == nil {
		missing = append(missing, "composite")
	}
	if s.Downsample == nil {
		missing = append(missing, "downsample")
	}
	return missing
}

// Programs returns the non-nil programs in a fixed order.
func (s Set) Programs() []*Program {
	var out []*Program
	for _, p := range []*Program{s.Downsample, s.DownsampleMSAA, s.Composite} {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
