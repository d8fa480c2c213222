package offscreen

import (
	"fmt"

	"github.com/gogpu/offscreen/render"
	"github.com/gogpu/offscreen/texture"
)

// Frame is the set of buffers the host lends to Process for one frame.
type Frame struct {
	// Source is the full-resolution scene color. It is not modified.
	Source *texture.Texture

	// Dest receives the output. It must match Source in size.
	Dest *texture.Texture

	// Depth is the full-resolution scene depth, possibly multisampled.
	Depth *texture.Texture

	// Camera is the primary camera the scene was rendered with.
	Camera render.Camera
}

// Validate reports whether the frame buffers fit together.
func (f Frame) Validate() error {
	switch {
	case f.Source == nil || f.Dest == nil || f.Depth == nil:
		return fmt.Errorf("%w: source, dest and depth are required", ErrInvalidFrame)
	case f.Source.Format() != texture.FormatRGBA32F || f.Dest.Format() != texture.FormatRGBA32F:
		return fmt.Errorf("%w: color buffers must be RGBA32F: %w", ErrInvalidFrame, texture.ErrFormatMismatch)
	case !f.Depth.Format().IsDepth():
		return fmt.Errorf("%w: %s is not a depth buffer: %w", ErrInvalidFrame, f.Depth, texture.ErrFormatMismatch)
	case f.Source == f.Dest:
		return fmt.Errorf("%w: source and dest must differ", ErrInvalidFrame)
	case !f.Source.SameSize(f.Dest) || !f.Source.SameSize(f.Depth):
		return fmt.Errorf("%w: %s, %s, %s: %w", ErrInvalidFrame, f.Source, f.Dest, f.Depth, texture.ErrSizeMismatch)
	}
	return nil
}

// BypassReason tells why a frame skipped the off-screen pipeline.
type BypassReason string

// Bypass reasons.
const (
	BypassNone           BypassReason = ""
	BypassDisabled       BypassReason = "disabled"
	BypassMissingProgram BypassReason = "missing program"
	BypassFullResolution BypassReason = "full resolution"
)

// FrameStats describes what Process did with one frame.
type FrameStats struct {
	// Frame is the sequence number of the processed frame, starting at 1.
	Frame uint64

	// Bypassed is true when the low-resolution pipeline did not run.
	Bypassed bool
	Reason   BypassReason

	Factor Factor

	// LowResWidth and LowResHeight are the particle buffer dimensions.
	LowResWidth, LowResHeight int

	// Downsampler names the depth downsample program that ran.
	Downsampler string

	// Cheap and Edge count the composite paths taken. Unseen counts edge
	// pixels behind an occluder the low-resolution depth missed; they are
	// left unchanged.
	Cheap, Edge, Unseen int

	// Acquired and Released count temporary buffers borrowed from the pool.
	Acquired, Released int

	// Dumped is true when the buffers were written to DebugDumpDir.
	Dumped bool
}
