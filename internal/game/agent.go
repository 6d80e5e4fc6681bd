package game

import (
	"github.com/lox/sisepai/internal/cards"
	"github.com/lox/sisepai/internal/evaluator"
)

// PlayKind is what a player did with the active card
type PlayKind int

const (
	// Discard gives a card back to the table; it becomes the new active card.
	Discard PlayKind = iota
	// Draw asks the table for a fresh card from the deck.
	Draw
	// Kaeu is the winning call.
	Kaeu
)

// String returns the string representation of a play kind
func (k PlayKind) String() string {
	switch k {
	case Discard:
		return "discard"
	case Draw:
		return "draw"
	case Kaeu:
		return "kaeu"
	default:
		return "unknown"
	}
}

// Play is a player's response to the active card.
type Play struct {
	Kind PlayKind
	Card cards.Card     // the discarded card when Kind is Discard
	Meld *evaluator.Set // the set melded this turn, nil if none
}

// Agent is anything that can hold a Sisepai hand and make decisions for it.
// The engine is the only caller; every call is synchronous.
type Agent interface {
	Name() string

	// GiveCards deals cards into the agent's hand.
	GiveCards(cs []cards.Card)

	// UpdateFieldInfo shares the public discard pile and face-up sets. The
	// slices are copies owned by the agent.
	UpdateFieldInfo(discards []cards.Card, faceup []evaluator.Set)

	// CheckMeld reports the set the agent would meld with active, without
	// changing any state.
	CheckMeld(active cards.Card) (evaluator.Set, bool)

	// PlayTurn lets the agent act on active. drawn is true when the agent may
	// not ask for another card.
	PlayTurn(active cards.Card, drawn bool) Play

	// DiscardCard gives up a card from the hand, if any can be given up.
	DiscardCard() (cards.Card, bool)

	// Collection returns every card the agent holds: hand, facedown and melded.
	Collection() []cards.Card

	TotalScore() int
}
