package cards

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/sisepai/internal/randutil"
)

// CopiesPerDeck is how many of each colour/suit combination one deck holds.
const CopiesPerDeck = 4

// ErrInsufficientCards is returned when more cards are requested than remain.
var ErrInsufficientCards = errors.New("insufficient cards in deck")

// DecksForPlayers returns how many decks a game with n players is played with.
func DecksForPlayers(n int) int {
	switch {
	case n < 2:
		return 1
	case n <= 4:
		return 2
	default:
		return (n + 2) / 2 // ceil((n+1)/2)
	}
}

// Deck is an ordered pile of cards. Cards are dealt from the top (index 0).
type Deck struct {
	cards []Card
	rng   randutil.Source
}

// NewDeck creates ndecks full decks, numbers every card and shuffles them
// with rng. A nil rng leaves the deck in rank order.
func NewDeck(ndecks int, rng randutil.Source) *Deck {
	d := &Deck{
		cards: make([]Card, 0, CopiesPerDeck*len(Suits)*len(Colours)*ndecks),
		rng:   rng,
	}

	id := 1
	for _, suit := range Suits {
		for _, colour := range Colours {
			for range CopiesPerDeck * ndecks {
				d.cards = append(d.cards, Card{id: uint32(id), colour: colour, suit: suit})
				id++
			}
		}
	}

	d.Shuffle()
	return d
}

// NewStackedDeck creates a deck that deals cs in the given order. rng is only
// used when the deck is later refilled.
func NewStackedDeck(cs []Card, rng randutil.Source) *Deck {
	return &Deck{cards: slices.Clone(cs), rng: rng}
}

// Shuffle shuffles the deck using the deck's random source
func (d *Deck) Shuffle() {
	if d.rng == nil {
		return
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return NoCard, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Deal removes and returns the top n cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrInsufficientCards, n, len(d.cards))
	}
	out := slices.Clone(d.cards[:n])
	d.cards = d.cards[n:]
	return out, nil
}

// Refill adds cs to the deck and reshuffles. The caller gives up ownership
// of the cards.
func (d *Deck) Refill(cs []Card) {
	d.cards = append(d.cards, cs...)
	d.Shuffle()
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, top first.
func (d *Deck) Cards() []Card {
	return slices.Clone(d.cards)
}
