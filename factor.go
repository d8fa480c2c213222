package offscreen

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Factor is the divisor applied to both dimensions of the particle buffers.
type Factor int

const (
	// Full renders particles at full resolution, bypassing the effect.
	Full Factor = 1

	// Half renders particles at half resolution.
	Half Factor = 2

	// Quarter renders particles at quarter resolution.
	Quarter Factor = 4

	// Eighth renders particles at one eighth resolution.
	Eighth Factor = 8
)

// IsValid reports whether f is one of the supported factors.
func (f Factor) IsValid() bool {
	switch f {
	case Full, Half, Quarter, Eighth:
		return true
	}
	return false
}

// Divisor returns the integer divisor of f.
func (f Factor) Divisor() int {
	return int(f)
}

// String returns the factor name.
func (f Factor) String() string {
	switch f {
	case Full:
		return "Full"
	case Half:
		return "Half"
	case Quarter:
		return "Quarter"
	case Eighth:
		return "Eighth"
	default:
		return fmt.Sprintf("Factor(%d)", int(f))
	}
}

// ParseFactor parses a factor name (case-insensitive) or divisor.
// Divisors 1, 2, 4 and 8 are accepted, and 0 is read as Full, the value
// older configurations stored for full resolution.
func ParseFactor(s string) (Factor, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return Full, nil
	}
	for _, f := range []Factor{Full, Half, Quarter, Eighth} {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Factor(n).IsValid() {
		return Factor(n), nil
	}
	return 0, fmt.Errorf("%w: unknown factor %q", ErrInvalidConfig, s)
}

// UnmarshalYAML decodes a factor from its name or divisor.
func (f *Factor) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseFactor(value.Value)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MarshalYAML encodes the factor by name.
func (f Factor) MarshalYAML() (any, error) {
	return f.String(), nil
}
