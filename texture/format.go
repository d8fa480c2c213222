// Package texture provides the frame buffers exchanged between the host
// render pipeline and the off-screen particle stages.
//
// Buffers store float32 channels so depth values and blended colors keep
// full precision through downsample, rasterization and composite.
package texture

import "github.com/gogpu/gputypes"

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatRGBA32F is four float32 channels with straight (non-premultiplied) alpha.
	// Used for full-resolution color and the low-resolution particle buffer.
	FormatRGBA32F Format = iota

	// FormatR32F is a single float32 channel in a color target.
	// The downsampled depth buffer is stored in this format.
	FormatR32F

	// FormatDepth32F is a single float32 depth channel.
	// Full-resolution depth may carry several samples per pixel.
	FormatDepth32F

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Channels is the number of float32 channels per sample.
	Channels int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsDepth indicates the channel holds normalized depth.
	IsDepth bool

	// GPU is the equivalent WebGPU texture format.
	GPU gputypes.TextureFormat
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGBA32F: {
		Channels: 4,
		HasAlpha: true,
		GPU:      gputypes.TextureFormatRGBA32Float,
	},
	FormatR32F: {
		Channels: 1,
		IsDepth:  true,
		GPU:      gputypes.TextureFormatR32Float,
	},
	FormatDepth32F: {
		Channels: 1,
		IsDepth:  true,
		GPU:      gputypes.TextureFormatDepth32Float,
	},
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// Info returns the metadata for f. Unknown formats return a zero FormatInfo.
func (f Format) Info() FormatInfo {
	if !f.IsValid() {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Channels returns the number of float32 channels per sample.
func (f Format) Channels() int {
	return f.Info().Channels
}

// IsDepth reports whether the format stores depth.
func (f Format) IsDepth() bool {
	return f.Info().IsDepth
}

// GPUFormat returns the WebGPU texture format used when the buffer is
// mirrored on a GPU device.
func (f Format) GPUFormat() gputypes.TextureFormat {
	if !f.IsValid() {
		return gputypes.TextureFormatUndefined
	}
	return formatInfoTable[f].GPU
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatRGBA32F:
		return "RGBA32F"
	case FormatR32F:
		return "R32F"
	case FormatDepth32F:
		return "Depth32F"
	default:
		return "Unknown"
	}
}
