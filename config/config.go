// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Population PopulationConfig `yaml:"population"`
	Energy     EnergyConfig     `yaml:"energy"`
	Flora      FloraConfig      `yaml:"flora"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Render     RenderConfig     `yaml:"render"`
}

// GridConfig holds world dimensions in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds initial entity counts.
type PopulationConfig struct {
	Herbivores int `yaml:"herbivores"`
	Carnivores int `yaml:"carnivores"`
	Plants     int `yaml:"plants"`
	Obstacles  int `yaml:"obstacles"`
}

// EnergyConfig holds the energy economics of a turn.
// All values are integers; the step engine works in whole energy units.
type EnergyConfig struct {
	InitialEnergy      int `yaml:"initial_energy"`      // Energy of animals placed at initialization
	MoveCost           int `yaml:"move_cost"`           // Energy lost in the movement phase
	PlantEnergy        int `yaml:"plant_energy"`        // Gain for a herbivore eating a plant
	PreyEnergy         int `yaml:"prey_energy"`         // Gain for a carnivore eating a herbivore
	HerbivoreThreshold int `yaml:"herbivore_threshold"` // Minimum energy for herbivore reproduction
	CarnivoreThreshold int `yaml:"carnivore_threshold"` // Minimum energy for carnivore reproduction
	ReproductionCost   int `yaml:"reproduction_cost"`   // Energy the parent pays per offspring
	OffspringEnergy    int `yaml:"offspring_energy"`    // Energy a newborn starts with
}

// FloraConfig holds plant regrowth parameters.
// Each turn spawns a count drawn uniformly from [regrow_min, regrow_max].
type FloraConfig struct {
	RegrowMin int `yaml:"regrow_min"`
	RegrowMax int `yaml:"regrow_max"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Turns per stats window
}

// RenderConfig holds terminal display settings.
type RenderConfig struct {
	AutorunDelayMs int `yaml:"autorun_delay_ms"` // Pause between turns when autorunning
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects configurations the step engine cannot run with.
func (c *Config) validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("config: grid dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Population.Herbivores < 0 || c.Population.Carnivores < 0 ||
		c.Population.Plants < 0 || c.Population.Obstacles < 0 {
		return fmt.Errorf("config: population counts must be non-negative")
	}
	if c.Flora.RegrowMin < 0 || c.Flora.RegrowMax < c.Flora.RegrowMin {
		return fmt.Errorf("config: flora regrow range [%d,%d] is invalid", c.Flora.RegrowMin, c.Flora.RegrowMax)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
