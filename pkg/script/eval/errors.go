package eval

import "errors"

var (
	// ErrInvalidConfig indicates invalid interpreter configuration.
	ErrInvalidConfig = errors.New("invalid interpreter configuration")

	// ErrNilEnvironment indicates Run was called without an environment.
	ErrNilEnvironment = errors.New("nil environment")
)
