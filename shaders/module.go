package shaders

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoDevice is returned when a module is requested without a device.
var ErrNoDevice = errors.New("shaders: nil device")

// ErrEmptySource is returned when a program has no source.
var ErrEmptySource = errors.New("shaders: empty source")

// Compile translates the program's WGSL to SPIR-V words.
// Results are cached by source.
func Compile(p *Program) ([]uint32, error) {
	if p == nil || p.Source == "" {
		return nil, ErrEmptySource
	}
	return compiled.getOrCreate(p.Source, func() ([]uint32, error) {
		spirvBytes, err := naga.Compile(p.Source)
		if err != nil {
			return nil, fmt.Errorf("shaders: compile %s: %w", p.Name, err)
		}
		return wordsLE(spirvBytes), nil
	})
}

// wordsLE packs little-endian bytes into 32-bit SPIR-V words.
func wordsLE(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}

// Module is a program compiled into a shader module on a HAL device.
type Module struct {
	Program *Program

	device hal.Device
	module hal.ShaderModule
}

// NewModule compiles p and creates its shader module on device.
func NewModule(device hal.Device, p *Program) (*Module, error) {
	if device == nil {
		return nil, ErrNoDevice
	}
	spirv, err := Compile(p)
	if err != nil {
		return nil, err
	}
	m, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: p.Name,
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("shaders: create module %s: %w", p.Name, err)
	}
	slogger().Debug("shader module created", "program", p.Name, "words", len(spirv))
	return &Module{Program: p, device: device, module: m}, nil
}

// Handle returns the HAL shader module.
func (m *Module) Handle() hal.ShaderModule {
	return m.module
}

// Destroy releases the shader module. It is safe to call more than once.
func (m *Module) Destroy() {
	if m == nil || m.module == nil {
		return
	}
	m.device.DestroyShaderModule(m.module)
	m.module = nil
}
