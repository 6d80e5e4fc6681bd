package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/sisepai/internal/game"
	"github.com/lox/sisepai/internal/randutil"
	"github.com/lox/sisepai/internal/statistics"
)

// ErrTimeout is returned when a single game runs past Config.Timeout.
var ErrTimeout = errors.New("game timed out")

// AgentFactory builds the agent seated under name for one game.
type AgentFactory func(name string, rng randutil.Source, logger *log.Logger) game.Agent

// DefaultAgent seats the rules-based player.
func DefaultAgent(name string, rng randutil.Source, logger *log.Logger) game.Agent {
	return game.NewPlayer(name, rng, logger)
}

// Config holds configuration for running simulations
type Config struct {
	Games     int
	Players   []string
	Seed      int64
	MaxTurns  int
	OutOfTurn bool
	Workers   int           // concurrent games; 0 uses GOMAXPROCS
	Timeout   time.Duration // per game; 0 disables
	Logger    *log.Logger
	Clock     quartz.Clock
	NewAgent  AgentFactory
}

// Simulator runs batches of independent, seeded Sisepai games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.NewAgent == nil {
		config.NewAgent = DefaultAgent
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	return &Simulator{config: config}
}

// Run plays every game and returns the aggregate statistics together with
// the per-game results in game order. Game i is seeded with Seed+i, so the
// results do not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, []statistics.GameResult, error) {
	if len(s.config.Players) == 0 {
		return nil, nil, game.ErrNoPlayers
	}
	if s.config.Games <= 0 {
		return nil, nil, fmt.Errorf("invalid games count: %d", s.config.Games)
	}

	start := s.config.Clock.Now()
	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		g.Go(func() error {
			res, err := s.playGame(ctx, i)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.config.Logger.Error("Simulation failed", "error", err)
		return nil, nil, err
	}

	stats := &statistics.Statistics{}
	for _, res := range results {
		stats.Add(res)
	}
	if err := stats.Validate(); err != nil {
		return nil, nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"games", stats.Games,
		"wins", stats.Wins,
		"mean_turns", fmt.Sprintf("%.1f", stats.Mean()),
		"elapsed", s.config.Clock.Since(start))
	return stats, results, nil
}

// playGame runs game i with timeout protection
func (s *Simulator) playGame(ctx context.Context, i int) (statistics.GameResult, error) {
	seed := s.config.Seed + int64(i)
	id, err := GameID(seed)
	if err != nil {
		return statistics.GameResult{}, err
	}
	logger := s.config.Logger.With("game", id.String()[:8])

	gameCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if s.config.Timeout > 0 {
		timer := s.config.Clock.AfterFunc(s.config.Timeout, cancel)
		defer timer.Stop()
	}

	rng := randutil.New(seed)
	agents := make([]game.Agent, len(s.config.Players))
	for j, name := range s.config.Players {
		agents[j] = s.config.NewAgent(name, rng, logger)
	}

	g, err := game.NewGame(agents, rng,
		game.WithLogger(logger),
		game.WithMaxTurns(s.config.MaxTurns),
		game.WithOutOfTurn(s.config.OutOfTurn),
	)
	if err != nil {
		return statistics.GameResult{}, fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
	}

	start := s.config.Clock.Now()
	res, err := g.Play(gameCtx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.Canceled) {
			return statistics.GameResult{}, fmt.Errorf("game %d (seed %d): %w after %v", i+1, seed, ErrTimeout, s.config.Timeout)
		}
		return statistics.GameResult{}, fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
	}

	logger.Debug("Game finished", "seed", seed, "reason", res.Reason, "winner", res.WinnerName, "turns", res.Turns)
	return statistics.GameResult{
		ID:        id.String(),
		Seed:      seed,
		Winner:    res.Winner,
		Starter:   res.Starter,
		Turns:     res.Turns,
		Score:     res.FinalScore,
		TurnLimit: res.Reason == game.ReasonTurnLimit,
		Duration:  s.config.Clock.Since(start),
	}, nil
}

// GameID derives a stable identifier for the game played with seed.
func GameID(seed int64) (uuid.UUID, error) {
	return uuid.NewRandomFromReader(randutil.NewReader(seed))
}
