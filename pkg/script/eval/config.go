package eval

import "fmt"

// Config contains configuration for the interpreter.
type Config struct {
	// MaxCallDepth bounds the nesting of user function calls. A call beyond
	// it is reported as a diagnostic and skipped.
	// Default: 512.
	MaxCallDepth int

	// MaxLoadDepth bounds the nesting of load statements.
	// Default: 16.
	MaxLoadDepth int

	// Suggestions enables "did you mean" hints on undefined names.
	// Default: true.
	Suggestions bool
}

// DefaultConfig returns the default interpreter configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxCallDepth: 512,
		MaxLoadDepth: 16,
		Suggestions:  true,
	}
}

// Validate validates the interpreter configuration.
func (c *Config) Validate() error {
	if c.MaxCallDepth <= 0 {
		return fmt.Errorf("%w: max call depth must be positive", ErrInvalidConfig)
	}
	if c.MaxCallDepth > 100000 {
		return fmt.Errorf("%w: max call depth %d exceeds 100000", ErrInvalidConfig, c.MaxCallDepth)
	}
	if c.MaxLoadDepth <= 0 {
		return fmt.Errorf("%w: max load depth must be positive", ErrInvalidConfig)
	}
	return nil
}

// WithMaxCallDepth sets the maximum call depth.
func (c *Config) WithMaxCallDepth(depth int) *Config {
	c.MaxCallDepth = depth
	return c
}

// WithMaxLoadDepth sets the maximum load nesting.
func (c *Config) WithMaxLoadDepth(depth int) *Config {
	c.MaxLoadDepth = depth
	return c
}

// WithSuggestions enables or disables name suggestions.
func (c *Config) WithSuggestions(enabled bool) *Config {
	c.Suggestions = enabled
	return c
}
