// Package config loads simulation settings from HCL files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents a complete simulation file
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Players    []PlayerConfig      `hcl:"player,block"`
	Logging    *LoggingSettings    `hcl:"logging,block"`
}

// SimulationSettings controls how many games are run and how
type SimulationSettings struct {
	Games     int    `hcl:"games,optional"`
	Players   int    `hcl:"players,optional"` // seats filled with default names when no player blocks are given
	Seed      int64  `hcl:"seed,optional"`
	MaxTurns  int    `hcl:"max_turns,optional"`
	OutOfTurn *bool  `hcl:"out_of_turn,optional"`
	Workers   int    `hcl:"workers,optional"`
	Timeout   string `hcl:"timeout,optional"`
}

// PlayerConfig names one seat at the table
type PlayerConfig struct {
	Name string `hcl:"name,label"`
}

// LoggingSettings contains logger configuration
type LoggingSettings struct {
	Level string `hcl:"level,optional"`
}

// DefaultConfig returns the settings used when no file is given
func DefaultConfig() *Config {
	oot := true
	return &Config{
		Simulation: &SimulationSettings{
			Games:     100,
			Players:   4,
			Seed:      42,
			MaxTurns:  2000,
			OutOfTurn: &oot,
			Workers:   0,
			Timeout:   "30s",
		},
		Logging: &LoggingSettings{
			Level: "warn",
		},
	}
}

// Load reads a simulation file. A missing file yields DefaultConfig.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Simulation == nil {
		c.Simulation = defaults.Simulation
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = defaults.Simulation.Games
	}
	if c.Simulation.Players == 0 {
		c.Simulation.Players = defaults.Simulation.Players
	}
	if c.Simulation.MaxTurns == 0 {
		c.Simulation.MaxTurns = defaults.Simulation.MaxTurns
	}
	if c.Simulation.OutOfTurn == nil {
		c.Simulation.OutOfTurn = defaults.Simulation.OutOfTurn
	}
	if c.Simulation.Timeout == "" {
		c.Simulation.Timeout = defaults.Simulation.Timeout
	}

	if c.Logging == nil {
		c.Logging = defaults.Logging
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

// Validate validates the simulation configuration
func (c *Config) Validate() error {
	if c.Simulation == nil || c.Logging == nil {
		return fmt.Errorf("configuration is incomplete")
	}

	sim := c.Simulation
	if sim.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", sim.Games)
	}
	if len(c.Players) == 0 && sim.Players < 1 {
		return fmt.Errorf("at least one player must be configured")
	}
	if sim.MaxTurns < 0 {
		return fmt.Errorf("max turns cannot be negative")
	}
	if sim.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name is required")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player %q", p.Name)
		}
		seen[p.Name] = true
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// PlayerNames returns the configured seats in order. Without player blocks
// the table is filled with "Player 0", "Player 1", and so on.
func (c *Config) PlayerNames() []string {
	if len(c.Players) > 0 {
		names := make([]string, len(c.Players))
		for i, p := range c.Players {
			names[i] = p.Name
		}
		return names
	}
	names := make([]string, c.Simulation.Players)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i)
	}
	return names
}

// Timeout returns the per-game timeout. An empty string or "0" disables it.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Simulation.Timeout == "" || c.Simulation.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Simulation.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Simulation.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout cannot be negative")
	}
	return d, nil
}

// OutOfTurn reports whether out-of-turn melds are enabled
func (c *Config) OutOfTurn() bool {
	return c.Simulation.OutOfTurn == nil || *c.Simulation.OutOfTurn
}

// LogLevel returns the parsed logging level, falling back to warn
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.WarnLevel
	}
	return level
}
