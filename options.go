package offscreen

import (
	"github.com/gogpu/offscreen/render"
	"github.com/gogpu/offscreen/shaders"
	"github.com/gogpu/offscreen/texture"
)

// Option configures an Effect during creation.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer(scene)
//	fx, err := offscreen.New(offscreen.DefaultConfig(), offscreen.WithRenderer(renderer))
type Option func(*options)

// options holds optional configuration for Effect creation.
type options struct {
	renderer render.LayerRenderer
	pool     *texture.Pool
	programs *shaders.Set
	provider render.DeviceHandle
}

// WithRenderer sets the host renderer that draws the particle layers.
// It is required.
func WithRenderer(r render.LayerRenderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithPool shares a temporary render target pool with the host.
// By default the effect owns a private pool and drains it on Shutdown.
func WithPool(p *texture.Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}

// WithShaders replaces the embedded programs. A nil program in the set is
// treated as not assigned: the effect passes frames through and logs a warning.
func WithShaders(s shaders.Set) Option {
	return func(o *options) {
		o.programs = &s
	}
}

// WithDeviceProvider sets the host GPU device. When it exposes a HAL device
// the programs are compiled into shader modules during Initialize.
//
// Example:
//
//	fx, err := offscreen.New(cfg,
//	    offscreen.WithRenderer(renderer),
//	    offscreen.WithDeviceProvider(gc.DeviceHandle()))
func WithDeviceProvider(p render.DeviceHandle) Option {
	return func(o *options) {
		o.provider = p
	}
}
