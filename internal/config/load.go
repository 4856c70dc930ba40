package config

import (
	"github.com/dshills/keyjar/internal/config/loader"
)

type loadConfig struct {
	file      string
	fs        loader.FileSystem
	envPrefix string
	env       bool
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

// WithFile reads settings from path. A missing file is not an error.
func WithFile(path string) LoadOption {
	return func(c *loadConfig) { c.file = path }
}

// WithFS reads files from fsys instead of the operating system.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(c *loadConfig) { c.fs = fsys }
}

// WithEnv toggles the environment layer.
func WithEnv(on bool) LoadOption {
	return func(c *loadConfig) { c.env = on }
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) LoadOption {
	return func(c *loadConfig) { c.envPrefix = prefix }
}

// Load merges the configured sources over the defaults.
func Load(opts ...LoadOption) (Settings, error) {
	c := loadConfig{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		env:       true,
	}
	for _, opt := range opts {
		opt(&c)
	}

	var sources []loader.Loader
	if c.file != "" {
		sources = append(sources, loader.NewFileLoader(c.file, loader.WithFS(c.fs)))
	}
	if c.env {
		sources = append(sources, loader.NewEnvLoader(c.envPrefix))
	}

	m, err := loader.Merge(sources...)
	if err != nil {
		return Settings{}, err
	}
	return FromMap(m)
}
