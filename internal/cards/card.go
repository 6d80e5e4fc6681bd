package cards

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidCard is returned when a card is built outside the valid domains.
var ErrInvalidCard = errors.New("invalid card")

// Colour represents a card colour
type Colour uint8

const (
	Red Colour = iota + 1
	Yellow
	White
	Green
)

// Colours lists every colour in rank order.
var Colours = [...]Colour{Red, Yellow, White, Green}

// String returns the string representation of a colour
func (c Colour) String() string {
	switch c {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case White:
		return "white"
	case Green:
		return "green"
	default:
		return "invalid"
	}
}

// Valid reports whether c is one of the four colours.
func (c Colour) Valid() bool {
	return c >= Red && c <= Green
}

// Suit represents a card suit
type Suit uint8

const (
	Kuin Suit = iota + 1
	Tse
	Xiong
	Kee
	Mah
	Pau
	Chut
)

// Suits lists every suit in rank order.
var Suits = [...]Suit{Kuin, Tse, Xiong, Kee, Mah, Pau, Chut}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Kuin:
		return "kuin"
	case Tse:
		return "tse"
	case Xiong:
		return "xiong"
	case Kee:
		return "kee"
	case Mah:
		return "mah"
	case Pau:
		return "pau"
	case Chut:
		return "chut"
	default:
		return "invalid"
	}
}

// Valid reports whether s is one of the seven suits.
func (s Suit) Valid() bool {
	return s >= Kuin && s <= Chut
}

// Card is an immutable Sisepai card. Every physical card in a game carries a
// distinct id, so two cards with the same colour and suit are still
// distinguishable when tracking ownership.
//
// The zero Card is NoCard, which never enters play.
type Card struct {
	id     uint32
	colour Colour
	suit   Suit
}

// NoCard is the only invalid card value.
var NoCard Card

// New creates a card with the given serial id. Ids must be positive.
func New(id int, colour Colour, suit Suit) (Card, error) {
	if id <= 0 {
		return NoCard, fmt.Errorf("%w: id %d must be positive", ErrInvalidCard, id)
	}
	if !colour.Valid() {
		return NoCard, fmt.Errorf("%w: colour %d", ErrInvalidCard, colour)
	}
	if !suit.Valid() {
		return NoCard, fmt.Errorf("%w: suit %d", ErrInvalidCard, suit)
	}
	return Card{id: uint32(id), colour: colour, suit: suit}, nil
}

// MustNew is like New but panics on an invalid card.
func MustNew(id int, colour Colour, suit Suit) Card {
	c, err := New(id, colour, suit)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) ID() int        { return int(c.id) }
func (c Card) Colour() Colour { return c.colour }
func (c Card) Suit() Suit     { return c.suit }

// IsValid returns false only for NoCard.
func (c Card) IsValid() bool {
	return c.id != 0
}

// Rank orders cards by suit, then colour, from 0 (red kuin) to 27 (green chut).
func (c Card) Rank() int {
	return 4*int(c.suit-1) + int(c.colour-1)
}

// Matches reports whether two cards share colour and suit.
func (c Card) Matches(o Card) bool {
	return c.colour == o.colour && c.suit == o.suit
}

// String returns the card in colour-suit notation, e.g. "red-kuin"
func (c Card) String() string {
	return c.colour.String() + "-" + c.suit.String()
}

// SortByRank sorts cards in place by rank, preserving the relative order of
// equal-ranked cards.
func SortByRank(cs []Card) {
	slices.SortStableFunc(cs, func(a, b Card) int {
		return a.Rank() - b.Rank()
	})
}

// Sorted returns a rank-sorted copy of cs.
func Sorted(cs []Card) []Card {
	out := slices.Clone(cs)
	SortByRank(out)
	return out
}

// SortByColour returns a copy of cs grouped by colour, rank order within each
// colour.
func SortByColour(cs []Card) []Card {
	ranked := Sorted(cs)
	out := make([]Card, 0, len(cs))
	for _, colour := range Colours {
		for _, c := range ranked {
			if c.colour == colour {
				out = append(out, c)
			}
		}
	}
	return out
}

// Remove returns cs without the card whose id matches c, and whether it was found.
func Remove(cs []Card, c Card) ([]Card, bool) {
	i := slices.IndexFunc(cs, func(x Card) bool { return x.id == c.id })
	if i < 0 {
		return cs, false
	}
	return slices.Delete(cs, i, i+1), true
}

// ContainsSuit reports whether any card in cs has the given suit.
func ContainsSuit(cs []Card, s Suit) bool {
	return slices.ContainsFunc(cs, func(c Card) bool { return c.suit == s })
}
