package offscreen

import (
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/offscreen/render"
	"github.com/gogpu/offscreen/texture"
)

// Recommended range of the depth threshold.
const (
	MinRecommendedThreshold float32 = 0.0001
	MaxRecommendedThreshold float32 = 0.01
)

// Config holds the tunables of the effect.
type Config struct {
	// DownsampleLayers selects the scene layers drawn by the particle pass.
	DownsampleLayers render.LayerMask

	// Factor is the particle buffer resolution divisor.
	Factor Factor

	// DepthThreshold is the scaled depth disagreement above which a pixel
	// takes the edge path. Must be positive.
	DepthThreshold float32

	// ClearColor is the particle buffer clear color. Its alpha is ignored.
	ClearColor texture.Color

	// DebugDrawBuffers overlays thumbnails of the intermediate buffers.
	DebugDrawBuffers bool

	// DebugDumpDir, when set, receives EXR dumps of the intermediate buffers.
	DebugDumpDir string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DownsampleLayers: render.Everything,
		Factor:           Half,
		DepthThreshold:   0.005,
		ClearColor:       texture.Transparent,
	}
}

// Validate reports whether c can drive the effect.
func (c Config) Validate() error {
	if !c.Factor.IsValid() {
		return fmt.Errorf("%w: factor %v", ErrInvalidConfig, c.Factor)
	}
	if !(c.DepthThreshold > 0) || math32.IsInf(c.DepthThreshold, 1) {
		return fmt.Errorf("%w: depth threshold %v must be positive", ErrInvalidConfig, c.DepthThreshold)
	}
	for _, v := range c.ClearColor.Array() {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return fmt.Errorf("%w: clear color %v", ErrInvalidConfig, c.ClearColor)
		}
	}
	return nil
}

// configFile is the YAML layout of Config. Absent keys keep their defaults.
type configFile struct {
	DownsampleLayers *layerList `yaml:"downsampleLayers,omitempty"`
	Factor           *Factor    `yaml:"factor,omitempty"`
	DepthThreshold   *float32   `yaml:"depthThreshold,omitempty"`
	ClearColor       []float32  `yaml:"clearColor,flow,omitempty"`
	DebugDrawBuffers *bool      `yaml:"debugDrawBuffers,omitempty"`
	DebugDumpDir     *string    `yaml:"debugDumpDir,omitempty"`
}

// layerList decodes a layer mask written either as an integer bit mask or
// as a list of layer indices.
type layerList render.LayerMask

// UnmarshalYAML decodes a scalar mask or a sequence of layers.
func (l *layerList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var m uint32
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("%w: downsampleLayers: %w", ErrInvalidConfig, err)
		}
		*l = layerList(m)
	case yaml.SequenceNode:
		var layers []uint
		if err := value.Decode(&layers); err != nil {
			return fmt.Errorf("%w: downsampleLayers: %w", ErrInvalidConfig, err)
		}
		for _, n := range layers {
			if n >= render.MaxLayers {
				return fmt.Errorf("%w: layer %d out of range", ErrInvalidConfig, n)
			}
		}
		*l = layerList(render.LayerMaskOf(layers...))
	default:
		return fmt.Errorf("%w: downsampleLayers must be a mask or a list", ErrInvalidConfig)
	}
	return nil
}

// MarshalYAML encodes the mask as a list of layers.
func (l layerList) MarshalYAML() (any, error) {
	return render.LayerMask(l).Layers(), nil
}

// ParseConfig decodes a YAML configuration on top of DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	c := DefaultConfig()
	if f.DownsampleLayers != nil {
		c.DownsampleLayers = render.LayerMask(*f.DownsampleLayers)
	}
	if f.Factor != nil {
		c.Factor = *f.Factor
	}
	if f.DepthThreshold != nil {
		c.DepthThreshold = *f.DepthThreshold
	}
	if f.ClearColor != nil {
		if len(f.ClearColor) != 3 && len(f.ClearColor) != 4 {
			return Config{}, fmt.Errorf("%w: clearColor needs 3 or 4 components", ErrInvalidConfig)
		}
		var v [4]float32
		copy(v[:], f.ClearColor)
		c.ClearColor = texture.ColorFromArray(v)
	}
	if f.DebugDrawBuffers != nil {
		c.DebugDrawBuffers = *f.DebugDrawBuffers
	}
	if f.DebugDumpDir != nil {
		c.DebugDumpDir = *f.DebugDumpDir
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("offscreen: load config: %w", err)
	}
	return ParseConfig(data)
}

// MarshalYAML encodes c in the layout ParseConfig reads.
func (c Config) MarshalYAML() (any, error) {
	layers := layerList(c.DownsampleLayers)
	factor := c.Factor
	threshold := c.DepthThreshold
	clear := c.ClearColor.Array()
	debug := c.DebugDrawBuffers
	f := configFile{
		DownsampleLayers: &layers,
		Factor:           &factor,
		DepthThreshold:   &threshold,
		ClearColor:       clear[:],
		DebugDrawBuffers: &debug,
	}
	if c.DebugDumpDir != "" {
		dir := c.DebugDumpDir
		f.DebugDumpDir = &dir
	}
	return f, nil
}
