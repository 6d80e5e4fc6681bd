package evaluator

import (
	"slices"

	"github.com/lox/sisepai/internal/cards"
)

// Kind names the scoring pattern a Set matched
type Kind int

const (
	Invalid Kind = iota
	Pair
	Kuin
	KeeMahPau
	KuinTseXiong
	ThreeColourChut
	ThreeOfAKind
	FourColourChut
	FourOfAKind
)

// String returns the string representation of a set kind
func (k Kind) String() string {
	switch k {
	case Pair:
		return "Pair"
	case Kuin:
		return "Kuin"
	case KeeMahPau:
		return "Kee-Mah-Pau"
	case KuinTseXiong:
		return "Kuin-Tse-Xiong"
	case ThreeColourChut:
		return "Three-Colour Chut"
	case ThreeOfAKind:
		return "Three of a Kind"
	case FourColourChut:
		return "Four-Colour Chut"
	case FourOfAKind:
		return "Four of a Kind"
	default:
		return "Invalid"
	}
}

// Set is a scored grouping of one to four cards. Sets are values: the
// composition and score never change after NewSet.
type Set struct {
	cards         []cards.Card
	kind          Kind
	score         int
	melded        bool
	sameColour    bool
	sameSuit      bool
	uniqueColours bool
}

// NewSet scores cs. active is the card currently on the table; a set
// containing it is melded and scores lower for identical sets. Pass
// cards.NoCard when there is no active card.
func NewSet(cs []cards.Card, active cards.Card) Set {
	s := Set{
		cards:         slices.Clone(cs),
		sameColour:    sameColour(cs),
		sameSuit:      sameSuit(cs),
		uniqueColours: uniqueColours(cs),
	}
	if active.IsValid() {
		s.melded = slices.ContainsFunc(cs, func(c cards.Card) bool { return c.ID() == active.ID() })
	}
	s.kind, s.score = s.evaluate()
	return s
}

func (s Set) evaluate() (Kind, int) {
	n := len(s.cards)
	if n == 0 {
		return Invalid, -1
	}
	suit := s.cards[0].Suit()

	if s.sameSuit && suit != cards.Kuin {
		if s.sameColour {
			switch n {
			case 4:
				if s.melded {
					return FourOfAKind, 6
				}
				return FourOfAKind, 8
			case 3:
				if s.melded {
					return ThreeOfAKind, 1
				}
				return ThreeOfAKind, 3
			case 2:
				return Pair, 0
			}
		}
		if s.uniqueColours && suit == cards.Chut {
			switch n {
			case 4:
				return FourColourChut, 4
			case 3:
				return ThreeColourChut, 1
			}
		}
	}

	if s.sameColour && n == 3 {
		switch {
		case hasSuits(s.cards, cards.Kuin, cards.Tse, cards.Xiong):
			return KuinTseXiong, 2
		case hasSuits(s.cards, cards.Kee, cards.Mah, cards.Pau):
			return KeeMahPau, 1
		}
	}

	if n == 1 && suit == cards.Kuin {
		return Kuin, 1
	}
	return Invalid, -1
}

// Cards returns a copy of the set's cards
func (s Set) Cards() []cards.Card { return slices.Clone(s.cards) }

// Len returns the number of cards in the set
func (s Set) Len() int { return len(s.cards) }

func (s Set) Kind() Kind          { return s.kind }
func (s Set) Score() int          { return s.score }
func (s Set) Melded() bool        { return s.melded }
func (s Set) SameColour() bool    { return s.sameColour }
func (s Set) SameSuit() bool      { return s.sameSuit }
func (s Set) UniqueColours() bool { return s.uniqueColours }

// Invalid reports whether the cards form no scoring pattern.
func (s Set) Invalid() bool { return s.score < 0 }

// Breakable reports whether a card can be discarded from the set. A
// standalone kuin cannot be given up.
func (s Set) Breakable() bool { return len(s.cards) > 1 }

// Contains reports whether the card with c's id is part of the set.
func (s Set) Contains(c cards.Card) bool {
	return slices.ContainsFunc(s.cards, func(x cards.Card) bool { return x.ID() == c.ID() })
}

func (s Set) String() string {
	return cards.Format(s.cards)
}

// IsIdentical reports whether every card in the set has the same colour and suit.
func IsIdentical(s Set) bool {
	return len(s.cards) > 0 && s.sameSuit && s.sameColour
}

// IsFourColour reports whether the set is a four-colour chut.
func IsFourColour(s Set) bool {
	return len(s.cards) == 4 && s.sameSuit && s.uniqueColours && s.cards[0].Suit() == cards.Chut
}

// ExistsIdentical reports whether sets holds an identical set of the given
// size and suit. A zero colour matches any colour.
func ExistsIdentical(sets []Set, size int, suit cards.Suit, colour cards.Colour) bool {
	for _, s := range sets {
		if len(s.cards) != size || !IsIdentical(s) {
			continue
		}
		first := s.cards[0]
		if first.Suit() != suit {
			continue
		}
		if colour == 0 || first.Colour() == colour {
			return true
		}
	}
	return false
}

// HasBreakable reports whether any set can be broken up to free a discard.
func HasBreakable(sets []Set) bool {
	return slices.ContainsFunc(sets, Set.Breakable)
}

func sameColour(cs []cards.Card) bool {
	for _, c := range cs {
		if c.Colour() != cs[0].Colour() {
			return false
		}
	}
	return true
}

func sameSuit(cs []cards.Card) bool {
	for _, c := range cs {
		if c.Suit() != cs[0].Suit() {
			return false
		}
	}
	return true
}

func uniqueColours(cs []cards.Card) bool {
	var seen [len(cards.Colours) + 1]bool
	for _, c := range cs {
		if seen[c.Colour()] {
			return false
		}
		seen[c.Colour()] = true
	}
	return true
}

// hasSuits reports whether cs holds exactly the given suits, one card each.
func hasSuits(cs []cards.Card, suits ...cards.Suit) bool {
	if len(cs) != len(suits) {
		return false
	}
	for _, suit := range suits {
		n := 0
		for _, c := range cs {
			if c.Suit() == suit {
				n++
			}
		}
		if n != 1 {
			return false
		}
	}
	return true
}
