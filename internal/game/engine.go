package game

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/sisepai/internal/cards"
	"github.com/lox/sisepai/internal/evaluator"
)

var (
	// ErrDeckExhausted ends a game when both the deck and the discards are empty.
	ErrDeckExhausted = errors.New("out of cards")
	// ErrNoOpeningDiscard ends a game when the starting player cannot discard.
	ErrNoOpeningDiscard = errors.New("starting player cannot discard")
)

// OpeningHandSize is how many cards the starting player holds before the
// first discard.
const OpeningHandSize = 21

// Outcome is the result of a single engine step or out-of-turn check
type Outcome int

const (
	// Next passes the turn to the following player.
	Next Outcome = iota
	// Meld means nobody interrupts and play continues normally.
	Meld
	// OutOfTurn means another player claimed the active card; State.Current
	// has been moved to them.
	OutOfTurn
	// Win ends the game; State.Current is the winner.
	Win
	// Exit ends the game without a winner.
	Exit
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Next:
		return "next"
	case Meld:
		return "meld"
	case OutOfTurn:
		return "oot"
	case Win:
		return "win"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Engine drives the turn state machine. It holds no game state of its own;
// every step is a transition of the State passed in.
type Engine struct {
	logger    *log.Logger
	outOfTurn bool
}

// NewEngine creates an engine. outOfTurn enables out-of-turn melds.
func NewEngine(logger *log.Logger, outOfTurn bool) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{logger: logger, outOfTurn: outOfTurn}
}

// Step plays one turn for the current player. ootTurn is set when the
// previous step handed the turn over out of order; such a player may not
// draw and cannot be interrupted. A non-nil error is only returned with Exit
// and names why the game could not continue.
func (e *Engine) Step(s *State, ootTurn bool) (Outcome, error) {
	s.broadcast()
	cur := s.CurrentPlayer()

	if !s.Active.IsValid() && len(cur.Collection()) == OpeningHandSize {
		c, ok := cur.DiscardCard()
		if !ok {
			e.logger.Warn("Starting player cannot discard", "player", cur.Name())
			return Exit, ErrNoOpeningDiscard
		}
		s.Active = c
		e.logger.Debug("Opening discard", "player", cur.Name(), "card", c)
		s.Current = s.NextIndex()
		return Next, nil
	}

	if s.Deck.IsEmpty() {
		if err := s.reclaimDiscards(); err != nil {
			e.logger.Info("Out of cards, game ends")
			return Exit, err
		}
		e.logger.Debug("Deck empty, reshuffling discards", "cards", s.Deck.Len())
	}

	if !s.Active.IsValid() {
		s.Recoveries++
		e.logger.Warn("Active card missing, drawing a replacement")
		c, err := s.draw()
		if err != nil {
			return Exit, err
		}
		s.Active = c
	}

	e.logger.Debug("Active card", "player", cur.Name(), "card", s.Active, "oot", ootTurn)
	play := cur.PlayTurn(s.Active, ootTurn)

	if play.Kind == Draw {
		s.Discards = append(s.Discards, s.Active)
		s.Active = cards.NoCard
		c, err := s.draw()
		if err != nil {
			return Exit, err
		}
		s.Active = c
		e.logger.Debug("Draw", "player", cur.Name(), "card", c)

		if !ootTurn && e.outOfTurn && e.CheckOutOfTurn(s) == OutOfTurn {
			e.logger.Debug("Out-of-turn meld called", "player", s.CurrentPlayer().Name())
			return OutOfTurn, nil
		}
		play = cur.PlayTurn(s.Active, true)
	}

	if play.Kind == Kaeu {
		e.win(s, cur, play.Meld)
		return Win, nil
	}

	if play.Kind != Discard || !play.Card.IsValid() {
		e.logger.Warn("Illegal play, forcing discard of the active card", "player", cur.Name(), "play", play.Kind)
		play = Play{Kind: Discard, Card: s.Active}
	}

	if play.Meld != nil {
		s.Faceup = append(s.Faceup, *play.Meld)
		e.logger.Debug("Meld", "player", cur.Name(), "set", play.Meld)
	}
	e.logger.Debug("Discard", "player", cur.Name(), "card", play.Card)
	s.Active = play.Card
	s.TurnCount++

	if !ootTurn && e.outOfTurn && e.CheckOutOfTurn(s) == OutOfTurn {
		e.logger.Debug("Out-of-turn meld called", "player", s.CurrentPlayer().Name())
		return OutOfTurn, nil
	}

	s.Current = s.NextIndex()
	return Next, nil
}

func (e *Engine) win(s *State, winner Agent, meld *evaluator.Set) {
	if meld != nil {
		s.Faceup = append(s.Faceup, *meld)
	}
	// The winning meld took the active card into the winner's collection.
	s.Active = cards.NoCard
	e.logger.Debug("Kaeu", "player", winner.Name(), "set", meld, "score", winner.TotalScore())
}

// CheckOutOfTurn decides whether a player other than the natural next one
// may claim the active card. Four of a kind outranks four-colour chut, which
// outranks three of a kind; within a tier the first player found scanning
// from the current player wins. On OutOfTurn, s.Current is moved to the
// claiming player.
func (e *Engine) CheckOutOfTurn(s *State) Outcome {
	n := len(s.Players)
	natural := s.NextIndex()

	melds := make([]*evaluator.Set, n)
	for i, p := range s.Players {
		if m, ok := p.CheckMeld(s.Active); ok {
			melds[i] = &m
		}
	}

	// A claim must be an identical set of the active card's kind.
	claimIdentical := func(size int) (int, bool) {
		for k := range n {
			i := (s.Current + k) % n
			if melds[i] != nil && evaluator.ExistsIdentical([]evaluator.Set{*melds[i]}, size, s.Active.Suit(), s.Active.Colour()) {
				return i, true
			}
		}
		return 0, false
	}

	reassign := func(i int) Outcome {
		if i == natural {
			return Meld
		}
		s.Current = i
		return OutOfTurn
	}

	if i, ok := claimIdentical(4); ok {
		return reassign(i)
	}
	// Only the current player may take a four-colour chut.
	if m := melds[s.Current]; m != nil && evaluator.IsFourColour(*m) {
		return Meld
	}
	if i, ok := claimIdentical(3); ok {
		return reassign(i)
	}
	return Meld
}
