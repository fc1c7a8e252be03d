package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by FieldError when a required key is absent
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is wrapped by FieldError when a key has an unusable value
	ErrInvalidField = errors.New("invalid field")
)

// FieldError reports a problem with one key of a scene document
type FieldError struct {
	Path   string // Dotted key path, e.g. "scene.shapes[2].material.diffusecolor"
	Reason string
	Err    error // ErrMissingField or ErrInvalidField
}

func (e *FieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Path, e.Err, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missingField(path string) error {
	return &FieldError{Path: path, Err: ErrMissingField}
}

func invalidField(path, reason string, args ...interface{}) error {
	return &FieldError{Path: path, Reason: fmt.Sprintf(reason, args...), Err: ErrInvalidField}
}
