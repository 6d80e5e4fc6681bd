package main

import (
	"fmt"
	"time"

	"github.com/lox/sisepai/internal/config"
	"github.com/lox/sisepai/internal/display"
	"github.com/lox/sisepai/internal/simulator"
	"github.com/lox/sisepai/internal/statistics"
)

type SimulateCmd struct {
	Games       int            `short:"n" env:"SISEPAI_GAMES" help:"Number of games (0 uses the config file)"`
	Players     []string       `sep:"," help:"Comma separated player names (defaults to the config file)"`
	Seed        *int64         `help:"Seed of the first game; game i uses seed+i"`
	MaxTurns    int            `help:"Stop each game after N steps (0 uses the config file)"`
	Workers     int            `env:"SISEPAI_WORKERS" help:"Games run in parallel (0 uses the config file, then GOMAXPROCS)"`
	Timeout     *time.Duration `help:"Per-game timeout (0 disables)"`
	NoOutOfTurn bool           `help:"Disable out-of-turn melds"`
	Output      string         `short:"o" type:"path" help:"Write a JSON report to this file"`
	PerGame     bool           `help:"Include every game in the JSON report"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}
	if c.Timeout != nil {
		timeout = *c.Timeout
	}

	names := cfg.PlayerNames()
	sim := simulator.New(simulator.Config{
		Games:     cfg.Simulation.Games,
		Players:   names,
		Seed:      cfg.Simulation.Seed,
		MaxTurns:  cfg.Simulation.MaxTurns,
		OutOfTurn: cfg.OutOfTurn() && !c.NoOutOfTurn,
		Workers:   cfg.Simulation.Workers,
		Timeout:   timeout,
		Logger:    g.logger(cfg.LogLevel()),
	})

	ctx, stop := signalContext()
	defer stop()
	stats, results, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	display.Summary(g.out(), stats, names)

	if c.Output != "" {
		if !c.PerGame {
			results = nil
		}
		if err := statistics.NewReport(stats, names, results).WriteFile(c.Output); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// apply overrides file settings with the flags that were given.
func (c *SimulateCmd) apply(cfg *config.Config) {
	sim := cfg.Simulation
	if c.Games > 0 {
		sim.Games = c.Games
	}
	if c.Seed != nil {
		sim.Seed = *c.Seed
	}
	if c.MaxTurns > 0 {
		sim.MaxTurns = c.MaxTurns
	}
	if c.Workers > 0 {
		sim.Workers = c.Workers
	}
	if len(c.Players) > 0 {
		cfg.Players = make([]config.PlayerConfig, len(c.Players))
		for i, name := range c.Players {
			cfg.Players[i] = config.PlayerConfig{Name: name}
		}
	}
}
