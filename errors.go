package offscreen

import "errors"

var (
	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = errors.New("offscreen: invalid config")

	// ErrInvalidFrame is returned when the frame buffers do not fit together.
	ErrInvalidFrame = errors.New("offscreen: invalid frame")

	// ErrNoRenderer is returned by New when no layer renderer is provided.
	ErrNoRenderer = errors.New("offscreen: no layer renderer")

	// ErrInvalidProgram is returned by Initialize when a program fails to compile.
	ErrInvalidProgram = errors.New("offscreen: invalid program")
)
