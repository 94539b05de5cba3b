package engine

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config carries everything the engine needs at construction time.
type Config struct {
	// BasePath roots the disk device when the engine owns its file system.
	BasePath string `yaml:"base_path"`
	// LogLevel is used only when no logger is injected.
	LogLevel string `yaml:"log_level"`
	// Workers bounds the job manager pool.
	Workers int `yaml:"workers"`
	// DefaultDevice and SaveDevice are device stack strings, e.g. "memory:disk".
	DefaultDevice string `yaml:"default_device"`
	SaveDevice    string `yaml:"save_device"`
}

// LoadConfig reads a yaml config and fills in defaults.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("engine: decode config: %w", err)
	}
	c.ApplyDefaults()
	return c, nil
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.BasePath == "" {
		c.BasePath = "."
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.DefaultDevice == "" {
		c.DefaultDevice = "memory:disk"
	}
	if c.SaveDevice == "" {
		c.SaveDevice = "memory:disk"
	}
}
