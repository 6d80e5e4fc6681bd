package game

import (
	"slices"

	"github.com/lox/sisepai/internal/cards"
	"github.com/lox/sisepai/internal/evaluator"
)

// State is everything the table owns during a game. A card is held by
// exactly one of: the deck, the discard pile, the active slot, or a player.
type State struct {
	Players  []Agent
	Deck     *cards.Deck
	Current  int
	Active   cards.Card // cards.NoCard when the table holds no active card
	Discards []cards.Card
	Faceup   []evaluator.Set

	// TurnCount counts completed discards.
	TurnCount int
	// Recoveries counts repaired invariant violations (a missing active card).
	Recoveries int
}

// NextIndex returns the player who acts after the current one.
func (s *State) NextIndex() int {
	return (s.Current + 1) % len(s.Players)
}

// CurrentPlayer returns the agent whose turn it is.
func (s *State) CurrentPlayer() Agent {
	return s.Players[s.Current]
}

// AllCards returns every card in the game, wherever it is held. Face-up sets
// are not included since their cards are still held by the melding player.
func (s *State) AllCards() []cards.Card {
	out := s.Deck.Cards()
	out = append(out, s.Discards...)
	if s.Active.IsValid() {
		out = append(out, s.Active)
	}
	for _, p := range s.Players {
		out = append(out, p.Collection()...)
	}
	return out
}

func (s *State) broadcast() {
	for _, p := range s.Players {
		p.UpdateFieldInfo(slices.Clone(s.Discards), slices.Clone(s.Faceup))
	}
}

// reclaimDiscards turns the discard pile into the new deck.
func (s *State) reclaimDiscards() error {
	if len(s.Discards) == 0 {
		return ErrDeckExhausted
	}
	s.Deck.Refill(s.Discards)
	s.Discards = nil
	return nil
}

// draw takes the top card of the deck, reclaiming the discards first if the
// deck has run out.
func (s *State) draw() (cards.Card, error) {
	if s.Deck.IsEmpty() {
		if err := s.reclaimDiscards(); err != nil {
			return cards.NoCard, err
		}
	}
	c, ok := s.Deck.Draw()
	if !ok {
		return cards.NoCard, ErrDeckExhausted
	}
	return c, nil
}
