package game

import (
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/sisepai/internal/cards"
	"github.com/lox/sisepai/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newTestPlayer deals hand (colour-suit notation) to a fresh player. Card ids
// start at firstID so hands built for the same test do not collide.
func newTestPlayer(t *testing.T, name, hand string, firstID int) *Player {
	t.Helper()
	p := NewPlayer(name, randutil.New(1), quietLogger())
	cs, err := cards.ParseCards(hand, firstID)
	if err != nil {
		t.Fatalf("bad hand %q: %v", hand, err)
	}
	p.GiveCards(cs)
	return p
}

func card(t *testing.T, id int, notation string) cards.Card {
	t.Helper()
	colour, suit, err := cards.ParseCard(notation)
	if err != nil {
		t.Fatalf("bad card %q: %v", notation, err)
	}
	return cards.MustNew(id, colour, suit)
}

func cardIDs(cs []cards.Card) []int {
	ids := make([]int, len(cs))
	for i, c := range cs {
		ids[i] = c.ID()
	}
	slices.Sort(ids)
	return ids
}

func newTestState(players []*Player, deck []cards.Card, active cards.Card) *State {
	agents := make([]Agent, len(players))
	for i, p := range players {
		agents[i] = p
	}
	return &State{
		Players: agents,
		Deck:    cards.NewStackedDeck(deck, randutil.New(2)),
		Active:  active,
	}
}
