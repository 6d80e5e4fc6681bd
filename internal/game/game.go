package game

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/sisepai/internal/cards"
	"github.com/lox/sisepai/internal/randutil"
)

// DealSize is how many cards every player is dealt.
const DealSize = 20

// ErrNoPlayers is returned when a game is created without agents.
var ErrNoPlayers = errors.New("game needs at least one player")

// Reason says why a game ended
type Reason int

const (
	ReasonWin Reason = iota
	ReasonExhausted
	ReasonTurnLimit
	ReasonNoOpeningDiscard
)

// String returns the string representation of a reason
func (r Reason) String() string {
	switch r {
	case ReasonWin:
		return "win"
	case ReasonExhausted:
		return "exhausted"
	case ReasonTurnLimit:
		return "turn limit"
	case ReasonNoOpeningDiscard:
		return "no opening discard"
	default:
		return "unknown"
	}
}

// Result is the outcome of a complete game.
type Result struct {
	Winner     int // index of the winning player, -1 if nobody won
	WinnerName string
	FinalScore int // the winner's total score
	Turns      int // completed discards
	Steps      int // engine steps taken
	Starter    int // index of the player who started
	Reason     Reason
	Scores     []int // every player's total score at the end
}

// Won reports whether the game ended in a kaeu.
func (r Result) Won() bool {
	return r.Reason == ReasonWin
}

// Option configures a Game
type Option func(*Game)

// WithLogger sets the logger used by the game and its engine.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithMaxTurns caps the number of engine steps. Zero plays until the game ends.
func WithMaxTurns(n int) Option {
	return func(g *Game) { g.maxTurns = n }
}

// WithOutOfTurn toggles out-of-turn melds. They are always off with two or
// fewer players.
func WithOutOfTurn(enabled bool) Option {
	return func(g *Game) { g.outOfTurn = enabled }
}

// WithStartingPlayer fixes who starts instead of choosing at random.
func WithStartingPlayer(i int) Option {
	return func(g *Game) { g.starter = i }
}

// WithDeck plays with the given deck instead of a freshly shuffled one.
func WithDeck(d *cards.Deck) Option {
	return func(g *Game) { g.deck = d }
}

// Game is one round of Sisepai from the deal to a win or exit.
type Game struct {
	logger    *log.Logger
	rng       randutil.Source
	maxTurns  int
	outOfTurn bool
	starter   int
	deck      *cards.Deck

	engine *Engine
	state  *State
	steps  int
}

// NewGame seats agents, builds the deck and deals: DealSize cards to every
// player and one more to the starting player.
func NewGame(agents []Agent, rng randutil.Source, opts ...Option) (*Game, error) {
	if len(agents) == 0 {
		return nil, ErrNoPlayers
	}

	g := &Game{
		rng:       rng,
		outOfTurn: true,
		starter:   -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if len(agents) <= 2 {
		g.outOfTurn = false
	}
	if g.deck == nil {
		g.deck = cards.NewDeck(cards.DecksForPlayers(len(agents)), rng)
	}
	if g.starter < 0 {
		g.starter = rng.IntN(len(agents))
	}
	if g.starter >= len(agents) {
		return nil, fmt.Errorf("starting player %d out of range for %d players", g.starter, len(agents))
	}

	g.engine = NewEngine(g.logger, g.outOfTurn)
	g.state = &State{
		Players: append([]Agent(nil), agents...),
		Deck:    g.deck,
		Current: g.starter,
		Active:  cards.NoCard,
	}

	for _, p := range g.state.Players {
		hand, err := g.deck.Deal(DealSize)
		if err != nil {
			return nil, fmt.Errorf("dealing to %s: %w", p.Name(), err)
		}
		p.GiveCards(hand)
	}
	extra, err := g.deck.Deal(1)
	if err != nil {
		return nil, fmt.Errorf("dealing to starting player: %w", err)
	}
	g.state.Players[g.starter].GiveCards(extra)

	g.logger.Info("Game set up", "players", len(agents), "starter", agents[g.starter].Name(), "deck", g.deck.Len(), "oot", g.outOfTurn)
	return g, nil
}

// State returns the live game state.
func (g *Game) State() *State {
	return g.state
}

// Play runs engine steps until a player wins, the game cannot continue, or
// the turn limit is reached. ctx is checked between steps.
func (g *Game) Play(ctx context.Context) (Result, error) {
	oot := false
	for g.maxTurns <= 0 || g.steps < g.maxTurns {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		outcome, err := g.engine.Step(g.state, oot)
		g.steps++

		switch outcome {
		case Win:
			res := g.result(ReasonWin)
			g.logger.Info("Kaeu", "player", res.WinnerName, "score", res.FinalScore, "turns", res.Turns)
			return res, nil
		case Exit:
			reason := ReasonExhausted
			if errors.Is(err, ErrNoOpeningDiscard) {
				reason = ReasonNoOpeningDiscard
			}
			g.logger.Info("Game ended without a winner", "reason", err, "turns", g.state.TurnCount)
			return g.result(reason), nil
		}
		oot = outcome == OutOfTurn
	}

	g.logger.Info("Turn limit reached", "steps", g.steps)
	return g.result(ReasonTurnLimit), nil
}

func (g *Game) result(reason Reason) Result {
	res := Result{
		Winner:  -1,
		Turns:   g.state.TurnCount,
		Steps:   g.steps,
		Starter: g.starter,
		Reason:  reason,
		Scores:  make([]int, len(g.state.Players)),
	}
	for i, p := range g.state.Players {
		res.Scores[i] = p.TotalScore()
	}
	if reason == ReasonWin {
		res.Winner = g.state.Current
		res.WinnerName = g.state.CurrentPlayer().Name()
		res.FinalScore = res.Scores[res.Winner]
	}
	return res
}
