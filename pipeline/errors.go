package pipeline

import "errors"

var (
	// ErrProviderRequired is returned when no model provider is given.
	ErrProviderRequired = errors.New("model provider required")

	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrHostUnreachable is returned when the model host does not answer
	// the startup probe.
	ErrHostUnreachable = errors.New("model host unreachable")
)
