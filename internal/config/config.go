package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/reify-dev/reify/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "reify.json"

	// DefaultTicks is the default number of simulated ticks.
	DefaultTicks = 120

	// DefaultNodes is the default synthetic tree width.
	DefaultNodes = 64

	// DefaultRateHz is the default tick rate.
	DefaultRateHz = 60

	// DefaultInspectAddr is the default inspect listener address.
	DefaultInspectAddr = "localhost:7878"
)

// Config is the complete reify.json configuration.
type Config struct {
	// Name is the project name, used as the metrics subsystem.
	Name string `json:"name,omitempty"`

	// Sim configures the synthetic reconciliation workload.
	Sim SimConfig `json:"sim,omitempty"`

	// Inspect configures the debug HTTP server.
	Inspect InspectConfig `json:"inspect,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SimConfig configures the synthetic workload driven by `reify sim`.
type SimConfig struct {
	// Ticks is how many reconciliation passes to run. 0 uses the default.
	Ticks int `json:"ticks,omitempty"`

	// Nodes is the width of the synthetic tree.
	Nodes int `json:"nodes,omitempty"`

	// Churn is the fraction of nodes replaced per tick, 0..1.
	Churn float64 `json:"churn,omitempty"`

	// RateHz is the simulated tick rate in hertz.
	RateHz int `json:"rate_hz,omitempty"`

	// Seed fixes the churn RNG. 0 seeds from the clock.
	Seed int64 `json:"seed,omitempty"`
}

// InspectConfig configures the debug HTTP server.
type InspectConfig struct {
	// Enabled turns the inspect listener on.
	Enabled bool `json:"enabled,omitempty"`

	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`
}

// New returns a Config with defaults applied.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "reify"
	}
	if c.Sim.Ticks == 0 {
		c.Sim.Ticks = DefaultTicks
	}
	if c.Sim.Nodes == 0 {
		c.Sim.Nodes = DefaultNodes
	}
	if c.Sim.RateHz == 0 {
		c.Sim.RateHz = DefaultRateHz
	}
	if c.Inspect.Addr == "" {
		c.Inspect.Addr = DefaultInspectAddr
	}
}

// Load reads reify.json from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. A missing
// file is not an error: defaults are returned.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errors.New(errors.CodeConfigRead).Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigRead).
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadFromWorkingDir reads reify.json from the current directory.
func LoadFromWorkingDir() (*Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, errors.New(errors.CodeConfigRead).Wrap(err)
	}
	return Load(dir)
}

// Path returns the path where the config was loaded from, or "" for a
// default config.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Sim.Ticks < 0 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("sim.ticks must not be negative")
	}
	if c.Sim.Nodes < 1 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("sim.nodes must be at least 1")
	}
	if c.Sim.Churn < 0 || c.Sim.Churn > 1 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("sim.churn must be between 0 and 1")
	}
	if c.Sim.RateHz < 1 || c.Sim.RateHz > 1000 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("sim.rate_hz must be between 1 and 1000")
	}
	return nil
}
