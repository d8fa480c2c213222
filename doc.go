// Package offscreen renders particle effects at reduced resolution and
// composites them over a full-resolution scene.
//
// # Overview
//
// Particle-heavy scenes are dominated by overdraw. The off-screen particle
// technique draws the particle layers into a buffer a half, a quarter or an
// eighth of the screen size and blends the result back. Naive upsampling
// smears particles across the silhouettes of foreground objects, so the
// composite compares the low-resolution depth with the full-resolution depth
// per pixel and switches from bilinear to nearest-depth sampling at edges.
//
// # Quick Start
//
//	scene := render.NewParticleScene()
//	renderer := render.NewSoftwareRenderer(scene)
//
//	fx, err := offscreen.New(offscreen.DefaultConfig(), offscreen.WithRenderer(renderer))
//	if err != nil {
//	    return err
//	}
//	defer fx.Shutdown()
//
//	stats, err := fx.Process(offscreen.Frame{
//	    Source: sceneColor,
//	    Dest:   output,
//	    Depth:  sceneDepth,
//	    Camera: camera,
//	})
//
// # Pipeline
//
// Each frame runs: depth downsample, particle pass, scene copy, composite,
// optional debug overlay, optional EXR dump. The packages are organized as:
//   - texture: frame buffers, formats, temporary pool, sampling, EXR
//   - downsample: nearest-depth reduction of the scene depth
//   - composite: per-pixel path decision and blending
//   - render: camera, layer mask, pass and the CPU particle renderer
//   - shaders: WGSL programs and HAL shader modules
//
// # Configuration
//
// Config can be built in code or loaded from YAML:
//
//	downsampleLayers: [8]
//	factor: Quarter
//	depthThreshold: 0.005
//	clearColor: [0, 0, 0, 0]
//	debugDrawBuffers: false
//
// # Logging
//
// offscreen is silent by default. See SetLogger.
package offscreen
