package shaders

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedPrograms(t *testing.T) {
	tests := []struct {
		p       *Program
		binding string
	}{
		{DownsampleDepth(), "texture_depth_2d"},
		{DownsampleDepthMSAA(), "texture_depth_multisampled_2d"},
		{Composite(), "particle_sampler"},
	}
	for _, tt := range tests {
		t.Run(tt.p.Name, func(t *testing.T) {
			if tt.p.Source == "" {
				t.Fatal("source not embedded")
			}
			for _, want := range []string{"fn " + VertexEntry, "fn " + tt.p.Entry, tt.binding} {
				if !strings.Contains(tt.p.Source, want) {
					t.Errorf("source missing %q", want)
				}
			}
		})
	}
}

func TestSetMissing(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want []string
	}{
		{"default", Default(), nil},
		{"no composite", Set{Downsample: DownsampleDepth()}, []string{"composite"}},
		{"empty", Set{}, []string{"composite", "downsample"}},
		{"msaa variant optional", Set{Downsample: DownsampleDepth(), Composite: Composite()}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.set.Missing()
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Missing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetDownsampler(t *testing.T) {
	s := Default()
	if p, resolve := s.Downsampler(false); p != s.Downsample || resolve {
		t.Errorf("single-sampled: %v resolve=%v", p.Name, resolve)
	}
	if p, resolve := s.Downsampler(true); p != s.DownsampleMSAA || !resolve {
		t.Errorf("multisampled: %v resolve=%v", p.Name, resolve)
	}
	s.DownsampleMSAA = nil
	if p, resolve := s.Downsampler(true); p != s.Downsample || resolve {
		t.Error("MSAA should fall back to the single-sampled program without resolve")
	}
	if n := len(s.Programs()); n != 2 {
		t.Errorf("Programs() = %d, want 2", n)
	}
}

func TestCompileEmpty(t *testing.T) {
	if _, err := Compile(nil); !errors.Is(err, ErrEmptySource) {
		t.Errorf("Compile(nil) err = %v", err)
	}
	if _, err := Compile(&Program{Name: "x"}); !errors.Is(err, ErrEmptySource) {
		t.Errorf("Compile(empty) err = %v", err)
	}
}

func TestNewModuleNilDevice(t *testing.T) {
	if _, err := NewModule(nil, Composite()); !errors.Is(err, ErrNoDevice) {
		t.Errorf("err = %v, want ErrNoDevice", err)
	}
	var m *Module
	m.Destroy()
}

func TestWordsLE(t *testing.T) {
	got := wordsLE([]byte{0x03, 0x02, 0x23, 0x07, 0xff})
	if len(got) != 1 || got[0] != 0x07230203 {
		t.Errorf("wordsLE = %#x", got)
	}
}

func TestCompileEmbedded(t *testing.T) {
	for _, p := range Default().Programs() {
		t.Run(p.Name, func(t *testing.T) {
			words, err := Compile(p)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if len(words) < 5 || words[0] != 0x07230203 {
				t.Fatalf("not a SPIR-V module: %d words", len(words))
			}
		})
	}
}

func TestCompileInvalid(t *testing.T) {
	p := &Program{Name: "broken", Source: "fn fs_main( {", Entry: FragmentEntry}
	if _, err := Compile(p); err == nil || !strings.Contains(err.Error(), "broken") {
		t.Errorf("Compile(broken) err = %v", err)
	}
}
