package renderer

import "errors"

var (
	ErrNoCamera            = errors.New("renderer: scene has no camera")
	ErrInvalidResolution   = errors.New("renderer: image width and height must be positive")
	ErrUnknownToneMapper   = errors.New("renderer: unknown tone mapping operator")
	ErrWorkerPoolExhausted = errors.New("renderer: worker pool closed before all tiles completed")
)
