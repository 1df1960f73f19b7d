package config

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotPublished is returned by ReloadConfig before any configuration was
// published.
var ErrNotPublished = errors.New("no configuration published")

// Override adjusts a loaded configuration before it is validated.
// Command-line flags reach the configuration this way.
type Override func(cfg *Config)

var (
	// global is the published configuration and how it was built.
	global struct {
		cfg       *Config
		path      string
		overrides []Override
	}

	// configMutex protects global.
	configMutex sync.RWMutex
)

// Publish loads the configuration at path with environment overrides, then
// applies overrides in order, validates the result and makes it the global
// configuration. The path and overrides are kept for ReloadConfig.
func Publish(path string, overrides ...Override) (*Config, error) {
	cfg, err := build(path, overrides)
	if err != nil {
		return nil, err
	}

	configMutex.Lock()
	defer configMutex.Unlock()
	global.cfg = cfg
	global.path = path
	global.overrides = overrides
	return cfg, nil
}

// GetConfig returns the global configuration, or nil before Publish.
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return global.cfg
}

// ReloadConfig rebuilds the global configuration from the path and
// overrides last given to Publish. If loading or validation fails the
// current configuration stays in place.
func ReloadConfig() (*Config, error) {
	configMutex.RLock()
	path, overrides, published := global.path, global.overrides, global.cfg != nil
	configMutex.RUnlock()

	if !published {
		return nil, ErrNotPublished
	}

	cfg, err := build(path, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to reload configuration: %w", err)
	}

	configMutex.Lock()
	defer configMutex.Unlock()
	global.cfg = cfg
	return cfg, nil
}

func build(path string, overrides []Override) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return cfg, nil
	}

	for _, override := range overrides {
		override(cfg)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
