// Command offscreendemo renders a synthetic smoke scene through the
// off-screen particle effect and saves the result.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/offscreen"
	"github.com/gogpu/offscreen/render"
	"github.com/gogpu/offscreen/texture"
)

const smokeLayer = 8

func main() {
	var (
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 600, "image height")
		output    = flag.String("output", "offscreen.png", "output PNG file")
		exrOut    = flag.String("exr", "", "optional output EXR file")
		config    = flag.String("config", "", "optional YAML config file")
		factor    = flag.String("factor", "", "override factor (Full, Half, Quarter, Eighth)")
		threshold = flag.Float64("threshold", 0, "override depth threshold")
		debug     = flag.Bool("debug", false, "draw intermediate buffers")
		count     = flag.Int("particles", 400, "number of smoke particles")
		seed      = flag.Uint64("seed", 1, "random seed")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		offscreen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := offscreen.DefaultConfig()
	if *config != "" {
		c, err := offscreen.LoadConfig(*config)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = c
	}
	cfg.DownsampleLayers = cfg.DownsampleLayers.With(smokeLayer)
	if *factor != "" {
		f, err := offscreen.ParseFactor(*factor)
		if err != nil {
			log.Fatalf("Invalid factor: %v", err)
		}
		cfg.Factor = f
	}
	if *threshold > 0 {
		cfg.DepthThreshold = float32(*threshold)
	}
	cfg.DebugDrawBuffers = cfg.DebugDrawBuffers || *debug

	frame := buildFrame(*width, *height)
	scene := buildSmoke(*width, *height, *count, rand.New(rand.NewPCG(*seed, *seed)))

	fx, err := offscreen.New(cfg, offscreen.WithRenderer(render.NewSoftwareRenderer(scene)))
	if err != nil {
		log.Fatalf("Failed to create effect: %v", err)
	}
	defer fx.Shutdown()

	stats, err := fx.Process(frame)
	if err != nil {
		log.Fatalf("Failed to process frame: %v", err)
	}

	if err := savePNG(*output, frame.Dest); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if *exrOut != "" {
		if err := frame.Dest.WriteEXR(*exrOut); err != nil {
			log.Fatalf("Failed to save EXR: %v", err)
		}
	}

	log.Printf("Saved %s (%dx%d) factor=%v lowres=%dx%d cheap=%d edge=%d unseen=%d\n",
		*output, *width, *height, cfg.Factor, stats.LowResWidth, stats.LowResHeight, stats.Cheap, stats.Edge, stats.Unseen)
}

// buildFrame draws a gradient backdrop at depth 0.9 crossed by thin posts
// and a slab in the foreground.
func buildFrame(w, h int) offscreen.Frame {
	src := texture.MustNew(w, h, texture.FormatRGBA32F)
	depth := texture.MustNew(w, h, texture.FormatDepth32F)

	for y := 0; y < h; y++ {
		t := float32(y) / float32(h)
		c := texture.RGBA(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2, 1)
		for x := 0; x < w; x++ {
			src.Set(x, y, c)
			depth.SetDepth(x, y, 0.9)
		}
	}

	// Posts one and two pixels wide.
	post := texture.RGBA(0.15, 0.1, 0.05, 1)
	for i, x := range []int{w / 5, w / 5 * 2, w / 5 * 3} {
		for px := x; px <= x+i%2; px++ {
			for y := h / 6; y < h; y++ {
				src.Set(px, y, post)
				depth.SetDepth(px, y, 0.3)
			}
		}
	}

	slab := texture.RGBA(0.6, 0.6, 0.65, 1)
	for y := h * 3 / 4; y < h; y++ {
		for x := w * 3 / 4; x < w; x++ {
			src.Set(x, y, slab)
			depth.SetDepth(x, y, 0.2)
		}
	}

	return offscreen.Frame{
		Source: src,
		Dest:   texture.MustNew(w, h, texture.FormatRGBA32F),
		Depth:  depth,
		Camera: render.NewOrthoCamera(w, h),
	}
}

// buildSmoke scatters translucent puffs between the posts and the backdrop.
func buildSmoke(w, h, n int, rng *rand.Rand) *render.ParticleScene {
	scene := render.NewParticleScene()
	for i := 0; i < n; i++ {
		shade := 0.7 + rng.Float32()*0.3
		scene.Add(render.Particle{
			Position: mgl32.Vec3{
				rng.Float32() * float32(w),
				float32(h)/3 + rng.Float32()*float32(h)*2/3,
				-(0.35 + rng.Float32()*0.5),
			},
			Size:  8 + rng.Float32()*float32(min(w, h))/10,
			Color: texture.RGBA(shade, shade, shade, 0.05+rng.Float32()*0.15),
			Layer: smokeLayer,
		})
	}
	return scene
}

func savePNG(path string, tex *texture.Texture) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, tex.ToNRGBA()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
