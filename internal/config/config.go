package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultScenario      = "binary"
	DefaultScheme        = "leapfrog"
	DefaultTolerance     = 1e-12
	DefaultMaxIterations = 50
)

// Config is the on-disk run configuration. Zero Dt/Steps defer to the
// scenario's recommended values.
type Config struct {
	Scenario string  `yaml:"scenario"`
	Scheme   string  `yaml:"scheme"`
	Dt       float64 `yaml:"dt"`
	Steps    int     `yaml:"steps"`
	Stride   int     `yaml:"stride"`
	// G overrides the scenario's gravitational constant when positive.
	G float64 `yaml:"g"`
	// Fixed-point parameters for the implicit schemes.
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      DefaultScenario,
		Scheme:        DefaultScheme,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
