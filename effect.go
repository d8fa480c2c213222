package offscreen

import (
	"errors"
	"fmt"

	"github.com/gogpu/offscreen/composite"
	"github.com/gogpu/offscreen/downsample"
	"github.com/gogpu/offscreen/render"
	"github.com/gogpu/offscreen/shaders"
	"github.com/gogpu/offscreen/texture"
)

// defaultPoolBucket is the number of idle targets kept per size and format.
const defaultPoolBucket = 4

// Effect renders particle layers at reduced resolution and composites them
// over the full-resolution scene.
//
// Per frame it downsamples the scene depth, renders the particle layers into
// a low-resolution buffer tested against that depth, copies the scene into
// the destination and blends the particles on top with depth-aware
// upsampling. Both low-resolution buffers are borrowed from a pool and
// returned before Process returns.
//
// Effect is NOT thread-safe. Use it from the goroutine that renders frames.
type Effect struct {
	cfg      Config
	enabled  bool
	renderer render.LayerRenderer
	pool     *texture.Pool
	ownPool  bool
	programs shaders.Set
	provider render.DeviceHandle

	mat     *materials
	modules []*shaders.Module
	frame   uint64
}

// materials holds the programs that compiled, created lazily.
type materials struct {
	programs shaders.Set
	words    map[string]int
}

// New creates an effect. A layer renderer must be provided with WithRenderer.
func New(cfg Config, opts ...Option) (*Effect, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		return nil, ErrNoRenderer
	}

	e := &Effect{
		cfg:      cfg,
		enabled:  true,
		renderer: o.renderer,
		pool:     o.pool,
		provider: o.provider,
		programs: shaders.Default(),
	}
	if e.pool == nil {
		e.pool = texture.NewPool(defaultPoolBucket)
		e.ownPool = true
	}
	if o.programs != nil {
		e.programs = *o.programs
	}
	return e, nil
}

// Config returns the current configuration.
func (e *Effect) Config() Config {
	return e.cfg
}

// SetConfig replaces the configuration after validating it.
func (e *Effect) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// Enabled reports whether frames go through the effect.
func (e *Effect) Enabled() bool {
	return e.enabled
}

// SetEnabled turns the effect on or off. A disabled effect copies frames through.
func (e *Effect) SetEnabled(enabled bool) {
	e.enabled = enabled
}

// Pool returns the temporary render target pool.
func (e *Effect) Pool() *texture.Pool {
	return e.pool
}

// Initialized reports whether materials have been created.
func (e *Effect) Initialized() bool {
	return e.mat != nil
}

// Initialize compiles the programs into materials and, when the device
// provider exposes a HAL device, creates the shader modules. It is idempotent
// and called by Process. A program that fails to compile is reported with
// ErrInvalidProgram.
func (e *Effect) Initialize() error {
	if e.mat != nil {
		return nil
	}

	mat := &materials{programs: e.programs, words: make(map[string]int)}
	var errs []error
	for _, p := range e.programs.Programs() {
		words, err := shaders.Compile(p)
		if err != nil {
			Logger().Warn("offscreen: program failed to compile", "program", p.Name, "err", err)
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidProgram, p.Name, err))
			continue
		}
		mat.words[p.Name] = len(words)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	Logger().Debug("offscreen: programs compiled", "words", mat.words)

	if e.provider != nil {
		device, err := render.HALDevice(e.provider)
		switch {
		case errors.Is(err, render.ErrNoHALDevice):
			Logger().Debug("offscreen: no HAL device, using CPU programs")
		case err != nil:
			return fmt.Errorf("offscreen: initialize: %w", err)
		default:
			for _, p := range e.programs.Programs() {
				m, err := shaders.NewModule(device, p)
				if err != nil {
					e.destroyModules()
					return fmt.Errorf("offscreen: initialize: %w", err)
				}
				e.modules = append(e.modules, m)
			}
			Logger().Info("offscreen: shader modules created", "count", len(e.modules))
		}
	}

	e.mat = mat
	return nil
}

// Shutdown releases the materials, shader modules and pooled targets owned
// by the effect. The next Process initializes again.
func (e *Effect) Shutdown() {
	e.destroyModules()
	e.mat = nil
	if e.ownPool {
		e.pool.Drain()
	}
	Logger().Info("offscreen: shutdown", "frames", e.frame)
}

func (e *Effect) destroyModules() {
	for _, m := range e.modules {
		m.Destroy()
	}
	e.modules = nil
}

// Process runs the effect on one frame and writes the result to f.Dest.
//
// When the effect is disabled, or a program is missing or fails to compile,
// the source is copied to the destination unchanged. When the factor is Full,
// or the frame is smaller than the factor's divisor, the particle layers are
// rendered straight into the destination at full resolution and no temporary
// buffers are used. A multisampled depth buffer is resolved to its nearest
// sample only when an MSAA downsample program is assigned. On allocation or
// render failure the source is copied through and the error is returned.
func (e *Effect) Process(f Frame) (stats FrameStats, err error) {
	if err := f.Validate(); err != nil {
		return FrameStats{}, err
	}
	e.frame++
	stats = FrameStats{Frame: e.frame, Factor: e.cfg.Factor}

	if !e.enabled {
		return e.bypass(f, stats, BypassDisabled)
	}
	if missing := e.programs.Missing(); len(missing) > 0 {
		for _, name := range missing {
			Logger().Warn("offscreen: program not assigned", "program", name)
		}
		return e.bypass(f, stats, BypassMissingProgram)
	}
	if err := e.Initialize(); err != nil {
		if errors.Is(err, ErrInvalidProgram) {
			return e.bypass(f, stats, BypassMissingProgram)
		}
		return e.passThrough(f, stats, err)
	}

	w, h := f.Source.Size()
	cam := render.ParticlePass(f.Camera, e.cfg.DownsampleLayers, e.cfg.ClearColor)
	lw, lh := downsample.Size(w, h, e.cfg.Factor.Divisor())

	if e.cfg.Factor == Full || lw == 0 || lh == 0 {
		if e.cfg.Factor != Full {
			Logger().Debug("offscreen: frame smaller than factor, rendering at full resolution",
				"size", fmt.Sprintf("%dx%d", w, h), "factor", e.cfg.Factor)
		}
		stats.Bypassed = true
		stats.Reason = BypassFullResolution
		stats.LowResWidth, stats.LowResHeight = w, h
		if err := texture.Blit(f.Dest, f.Source); err != nil {
			return stats, err
		}
		cam.ClearFlags = render.ClearNothing
		if err := e.renderer.RenderLayer(render.Pass{Camera: cam, Target: f.Dest, Depth: f.Depth}); err != nil {
			return e.passThrough(f, stats, fmt.Errorf("offscreen: render particles: %w", err))
		}
		return stats, nil
	}

	stats.LowResWidth, stats.LowResHeight = lw, lh

	lowDepth, err := e.acquire(&stats, lw, lh, texture.FormatR32F, "low-res depth")
	if err != nil {
		return e.passThrough(f, stats, err)
	}
	defer e.release(&stats, lowDepth)

	particles, err := e.acquire(&stats, lw, lh, texture.FormatRGBA32F, "particles")
	if err != nil {
		return e.passThrough(f, stats, err)
	}
	defer e.release(&stats, particles)

	program, resolve := e.mat.programs.Downsampler(f.Depth.IsMultisampled())
	stats.Downsampler = program.Name
	if err := downsample.Depth(lowDepth, f.Depth, downsample.NewParams(w, resolve)); err != nil {
		return e.passThrough(f, stats, err)
	}

	if err := e.renderer.RenderLayer(render.Pass{Camera: cam, Target: particles, Depth: lowDepth}); err != nil {
		return e.passThrough(f, stats, fmt.Errorf("offscreen: render particles: %w", err))
	}

	if err := texture.Blit(f.Dest, f.Source); err != nil {
		return stats, err
	}
	cs, err := composite.Composite(f.Dest, f.Depth, lowDepth, particles, composite.NewParams(lw, lh, e.cfg.DepthThreshold))
	if err != nil {
		return e.passThrough(f, stats, err)
	}
	stats.Cheap, stats.Edge, stats.Unseen = cs.Cheap, cs.Edge, cs.Unseen

	if e.cfg.DebugDrawBuffers {
		drawDebugBuffers(f.Dest, lowDepth, f.Source, particles)
	}
	if e.cfg.DebugDumpDir != "" {
		if err := dumpBuffers(e.cfg.DebugDumpDir, e.frame, lowDepth, particles); err != nil {
			Logger().Warn("offscreen: dump buffers", "err", err)
		} else {
			stats.Dumped = true
		}
	}

	Logger().Debug("offscreen: frame",
		"frame", e.frame,
		"factor", e.cfg.Factor,
		"lowres", fmt.Sprintf("%dx%d", lw, lh),
		"downsample", program.Name,
		"cheap", cs.Cheap,
		"edge", cs.Edge,
		"unseen", cs.Unseen)
	return stats, nil
}

// bypass copies the source through without running the pipeline.
func (e *Effect) bypass(f Frame, stats FrameStats, reason BypassReason) (FrameStats, error) {
	stats.Bypassed = true
	stats.Reason = reason
	if err := texture.Blit(f.Dest, f.Source); err != nil {
		return stats, err
	}
	return stats, nil
}

// passThrough copies the source through and reports err.
func (e *Effect) passThrough(f Frame, stats FrameStats, err error) (FrameStats, error) {
	if blitErr := texture.Blit(f.Dest, f.Source); blitErr != nil {
		return stats, errors.Join(err, blitErr)
	}
	return stats, err
}

func (e *Effect) acquire(stats *FrameStats, w, h int, format texture.Format, label string) (*texture.Texture, error) {
	tex, err := e.pool.Get(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("offscreen: acquire %s: %w", label, err)
	}
	tex.SetLabel(label)
	stats.Acquired++
	Logger().Debug("offscreen: acquire", "target", render.DescriptorFor(tex))
	return tex, nil
}

func (e *Effect) release(stats *FrameStats, tex *texture.Texture) {
	e.pool.Put(tex)
	stats.Released++
}
