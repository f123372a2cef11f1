// Package config loads the optional slc.yaml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the slc.yaml shape.
type Config struct {
	// ScreensDir is where screen documents live.
	ScreensDir string `yaml:"screensDir,omitempty"`

	// Dev configures the development server.
	Dev DevConfig `yaml:"dev,omitempty"`
}

// DevConfig configures the development server.
type DevConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// DefaultConfig returns the defaults used when no slc.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		ScreensDir: "screens",
		Dev: DevConfig{
			Host: "localhost",
			Port: 5173,
		},
	}
}

// Load reads slc.yaml from dir, falling back to defaults for anything
// unset. A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, "slc.yaml"))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slc.yaml: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse slc.yaml: %w", err)
	}

	if cfg.ScreensDir == "" {
		cfg.ScreensDir = "screens"
	}
	if cfg.Dev.Host == "" {
		cfg.Dev.Host = "localhost"
	}
	if cfg.Dev.Port == 0 {
		cfg.Dev.Port = 5173
	}

	return cfg, nil
}
