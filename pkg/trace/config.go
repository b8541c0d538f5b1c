package trace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-project trace configuration file.
const ConfigFileName = "blazr-trace.yaml"

// Config controls how a host wires tracing up.
type Config struct {
	// Enabled turns tracing on for the host.
	Enabled bool `yaml:"enabled"`
	// Capacity is the ring buffer size. Zero means the default.
	Capacity int `yaml:"capacity,omitempty"`
	// Echo mirrors events to stderr as they are recorded.
	Echo bool `yaml:"echo,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{Enabled: true, Capacity: defaultCapacity}
}

// LoadOptional reads ConfigFileName from dir. A missing file is not an
// error; it yields the defaults.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Capacity < 0 {
		return nil, fmt.Errorf("parse %s: capacity must not be negative", path)
	}
	return cfg, nil
}

// NewRecorder builds a recorder from the configuration, or nil when
// tracing is disabled.
func (c *Config) NewRecorder() *Recorder {
	if !c.Enabled {
		return nil
	}
	r := NewRecorder(c.Capacity)
	if c.Echo {
		r.SetEcho(os.Stderr)
	}
	return r
}
