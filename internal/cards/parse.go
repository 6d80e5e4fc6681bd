package cards

import (
	"fmt"
	"strings"
)

// ParseCard parses a single "colour-suit" token such as "green-chut".
func ParseCard(s string) (Colour, Suit, error) {
	colourName, suitName, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q is not colour-suit", ErrInvalidCard, s)
	}

	var colour Colour
	for _, c := range Colours {
		if c.String() == colourName {
			colour = c
		}
	}
	if colour == 0 {
		return 0, 0, fmt.Errorf("%w: unknown colour %q", ErrInvalidCard, colourName)
	}

	var suit Suit
	for _, st := range Suits {
		if st.String() == suitName {
			suit = st
		}
	}
	if suit == 0 {
		return 0, 0, fmt.Errorf("%w: unknown suit %q", ErrInvalidCard, suitName)
	}
	return colour, suit, nil
}

// ParseCards parses whitespace or comma separated card tokens. Cards are
// numbered consecutively starting at firstID.
func ParseCards(s string, firstID int) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]Card, 0, len(fields))
	for i, f := range fields {
		colour, suit, err := ParseCard(f)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		c, err := New(firstID+i, colour, suit)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixtures.
func MustParseCards(s string, firstID int) []Card {
	cs, err := ParseCards(s, firstID)
	if err != nil {
		panic(err)
	}
	return cs
}

// Format renders cards as a bracketed, space separated list.
func Format(cs []Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
