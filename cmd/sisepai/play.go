package main

import (
	"fmt"

	"github.com/lox/sisepai/internal/display"
	"github.com/lox/sisepai/internal/game"
	"github.com/lox/sisepai/internal/randutil"
)

type PlayCmd struct {
	Players     []string `arg:"" optional:"" help:"Player names (defaults to the config file)"`
	Seed        *int64   `help:"Random seed (defaults to the config file)"`
	MaxTurns    int      `help:"Stop after N steps (0 uses the config file)"`
	Starter     int      `default:"-1" help:"Index of the starting player (-1 for random)"`
	NoOutOfTurn bool     `help:"Disable out-of-turn melds"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := g.logger(cfg.LogLevel())

	names := c.Players
	if len(names) == 0 {
		names = cfg.PlayerNames()
	}
	seed := cfg.Simulation.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	maxTurns := cfg.Simulation.MaxTurns
	if c.MaxTurns > 0 {
		maxTurns = c.MaxTurns
	}

	rng := randutil.New(seed)
	agents := make([]game.Agent, len(names))
	players := make([]*game.Player, len(names))
	for i, name := range names {
		players[i] = game.NewPlayer(name, rng, logger)
		agents[i] = players[i]
	}

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithMaxTurns(maxTurns),
		game.WithOutOfTurn(cfg.OutOfTurn() && !c.NoOutOfTurn),
	}
	if c.Starter >= 0 {
		opts = append(opts, game.WithStartingPlayer(c.Starter))
	}

	sg, err := game.NewGame(agents, rng, opts...)
	if err != nil {
		return fmt.Errorf("setting up game: %w", err)
	}

	ctx, stop := signalContext()
	defer stop()
	res, err := sg.Play(ctx)
	if err != nil {
		return err
	}

	w := g.out()
	display.Result(w, res, names)
	fmt.Fprintln(w)
	for _, p := range players {
		display.Player(w, p)
	}
	return nil
}
