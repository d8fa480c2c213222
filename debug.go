package offscreen

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/offscreen/texture"
)

// DebugThumbnailSize is the edge length of the debug overlay thumbnails.
const DebugThumbnailSize = 128

// Debug overlay thumbnail placement, top-left origin.
var (
	debugLowDepthRect  = image.Rect(0, 0, DebugThumbnailSize, DebugThumbnailSize)
	debugSourceRect    = image.Rect(0, DebugThumbnailSize, DebugThumbnailSize, 2*DebugThumbnailSize)
	debugParticlesRect = image.Rect(DebugThumbnailSize, DebugThumbnailSize, 2*DebugThumbnailSize, 2*DebugThumbnailSize)
)

// DebugRects returns the regions the debug overlay draws into:
// low-resolution depth, source color and particle buffer.
func DebugRects() [3]image.Rectangle {
	return [3]image.Rectangle{debugLowDepthRect, debugSourceRect, debugParticlesRect}
}

// drawDebugBuffers scales the intermediate buffers into thumbnails over dst.
func drawDebugBuffers(dst, lowDepth, source, particles *texture.Texture) {
	out := dst.Image()
	srcs := [3]*texture.Texture{lowDepth, source, particles}
	for i, r := range DebugRects() {
		img := srcs[i].Image()
		xdraw.ApproxBiLinear.Scale(out, r, img, img.Bounds(), xdraw.Src, nil)
	}
}

// dumpBuffers writes the low-resolution buffers of a frame as EXR files.
func dumpBuffers(dir string, frame uint64, lowDepth, particles *texture.Texture) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := lowDepth.WriteEXR(filepath.Join(dir, fmt.Sprintf("lowdepth_%06d.exr", frame))); err != nil {
		return err
	}
	return particles.WriteEXR(filepath.Join(dir, fmt.Sprintf("particles_%06d.exr", frame)))
}
