package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sisepai/internal/cards"
	"github.com/lox/sisepai/internal/evaluator"
)

// claimer holds three red mah and a spare card, so it can claim a red mah
// as four of a kind.
const claimer = "red-mah red-mah red-mah white-kee"

func ootPlayers(t *testing.T, hands ...string) []*Player {
	t.Helper()
	players := make([]*Player, len(hands))
	for i, h := range hands {
		players[i] = newTestPlayer(t, "p"+string(rune('0'+i)), h, 1000*(i+1))
	}
	return players
}

func TestCheckOutOfTurn(t *testing.T) {
	const idle = "green-chut yellow-tse"

	tests := []struct {
		name        string
		hands       []string
		active      string
		wantOutcome Outcome
		wantCurrent int
	}{
		{
			name:        "nobody can claim",
			hands:       []string{idle, idle, idle, idle},
			active:      "red-mah",
			wantOutcome: Meld,
			wantCurrent: 0,
		},
		{
			name:        "natural next player wins the tie",
			hands:       []string{idle, claimer, idle, claimer},
			active:      "red-mah",
			wantOutcome: Meld,
			wantCurrent: 0,
		},
		{
			name:        "first player from the current one claims",
			hands:       []string{idle, idle, claimer, claimer},
			active:      "red-mah",
			wantOutcome: OutOfTurn,
			wantCurrent: 2,
		},
		{
			name:        "four of a kind beats three of a kind",
			hands:       []string{idle, "red-mah red-mah white-kee", idle, claimer},
			active:      "red-mah",
			wantOutcome: OutOfTurn,
			wantCurrent: 3,
		},
		{
			name:        "three of a kind claim",
			hands:       []string{idle, idle, idle, "red-mah red-mah white-kee"},
			active:      "red-mah",
			wantOutcome: OutOfTurn,
			wantCurrent: 3,
		},
		{
			name: "four-colour chut keeps the current player",
			hands: []string{
				"red-chut yellow-chut white-chut white-kee",
				idle,
				"green-chut green-chut red-kee",
				idle,
			},
			active:      "green-chut",
			wantOutcome: Meld,
			wantCurrent: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(ootPlayers(t, tt.hands...), nil, card(t, 500, tt.active))
			e := NewEngine(quietLogger(), true)

			assert.Equal(t, tt.wantOutcome, e.CheckOutOfTurn(s))
			assert.Equal(t, tt.wantCurrent, s.Current)
		})
	}
}

func TestStepOpeningDiscard(t *testing.T) {
	g := newSeededGame(t, 3, 1, WithStartingPlayer(1))
	s := g.State()
	require.Len(t, s.Players[1].Collection(), OpeningHandSize)

	outcome, err := g.engine.Step(s, false)
	require.NoError(t, err)
	assert.Equal(t, Next, outcome)
	assert.True(t, s.Active.IsValid())
	assert.Equal(t, 2, s.Current)
	assert.Len(t, s.Players[1].Collection(), DealSize)
	assert.Equal(t, 0, s.TurnCount)
}

func TestStepNoOpeningDiscard(t *testing.T) {
	hand := strings.TrimSpace(strings.Repeat("red-kuin ", OpeningHandSize))
	s := newTestState(ootPlayers(t, hand, "white-kee"), cards.MustParseCards("green-pau", 900), cards.NoCard)

	outcome, err := NewEngine(quietLogger(), false).Step(s, false)
	assert.Equal(t, Exit, outcome)
	assert.ErrorIs(t, err, ErrNoOpeningDiscard)
}

func TestStepDrawAndDiscard(t *testing.T) {
	players := ootPlayers(t, "red-mah white-kee", "yellow-tse green-pau")
	drawn := card(t, 200, "red-xiong")
	s := newTestState(players, []cards.Card{drawn}, card(t, 100, "green-chut"))

	outcome, err := NewEngine(quietLogger(), false).Step(s, false)
	require.NoError(t, err)
	assert.Equal(t, Next, outcome)
	assert.Equal(t, drawn, s.Active)
	assert.Equal(t, []int{100}, cardIDs(s.Discards))
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 1, s.TurnCount)
	assert.True(t, s.Deck.IsEmpty())
	assert.Len(t, players[0].Hand(), 2)
}

func TestStepMeldAndDiscard(t *testing.T) {
	players := ootPlayers(t, "red-mah red-mah white-kee", "yellow-tse green-pau")
	s := newTestState(players, cards.MustParseCards("green-pau", 900), card(t, 100, "red-mah"))

	outcome, err := NewEngine(quietLogger(), false).Step(s, false)
	require.NoError(t, err)
	assert.Equal(t, Next, outcome)
	require.Len(t, s.Faceup, 1)
	assert.Equal(t, evaluator.ThreeOfAKind, s.Faceup[0].Kind())
	assert.Equal(t, "white-kee", s.Active.String())
	assert.Empty(t, s.Discards)
	assert.Equal(t, 1, s.Deck.Len())
}

func TestStepDrawnCardClaimedOutOfTurn(t *testing.T) {
	players := ootPlayers(t, "yellow-tse white-kee", "green-pau green-kee", claimer)
	deck := []cards.Card{card(t, 200, "red-mah"), card(t, 201, "red-kee")}
	s := newTestState(players, deck, card(t, 100, "green-chut"))
	e := NewEngine(quietLogger(), true)

	outcome, err := e.Step(s, false)
	require.NoError(t, err)
	require.Equal(t, OutOfTurn, outcome)
	assert.Equal(t, 2, s.Current)
	assert.Equal(t, 200, s.Active.ID())
	assert.Len(t, players[0].Hand(), 2, "the drawing player keeps their hand")

	outcome, err = e.Step(s, true)
	require.NoError(t, err)
	assert.Equal(t, Next, outcome)
	require.Len(t, s.Faceup, 1)
	assert.Equal(t, evaluator.FourOfAKind, s.Faceup[0].Kind())
	assert.Equal(t, "white-kee", s.Active.String())
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 6, players[2].MeldedScore())
}

func TestStepReshufflesDiscards(t *testing.T) {
	players := ootPlayers(t, "red-mah white-kee", "green-pau green-kee")
	s := newTestState(players, nil, card(t, 100, "green-chut"))
	s.Discards = []cards.Card{card(t, 300, "yellow-tse"), card(t, 301, "green-xiong")}
	before := cardIDs(s.AllCards())

	outcome, err := NewEngine(quietLogger(), false).Step(s, false)
	require.NoError(t, err)
	assert.Equal(t, Next, outcome)
	assert.Equal(t, 1, s.Deck.Len())
	assert.Equal(t, []int{100}, cardIDs(s.Discards))
	assert.Contains(t, []int{300, 301}, s.Active.ID())
	assert.Equal(t, before, cardIDs(s.AllCards()))
}

func TestStepExhausted(t *testing.T) {
	players := ootPlayers(t, "red-mah white-kee", "green-pau green-kee")
	s := newTestState(players, nil, card(t, 100, "green-chut"))

	outcome, err := NewEngine(quietLogger(), false).Step(s, false)
	assert.Equal(t, Exit, outcome)
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

func TestStepRecoversMissingActiveCard(t *testing.T) {
	players := ootPlayers(t, "red-mah white-kee", "green-pau green-kee")
	deck := []cards.Card{card(t, 200, "yellow-tse"), card(t, 201, "green-xiong")}
	s := newTestState(players, deck, cards.NoCard)

	outcome, err := NewEngine(quietLogger(), false).Step(s, false)
	require.NoError(t, err)
	assert.Equal(t, Next, outcome)
	assert.Equal(t, 1, s.Recoveries)
	assert.Equal(t, []int{200}, cardIDs(s.Discards))
	assert.Equal(t, 201, s.Active.ID())
}

func TestStepWin(t *testing.T) {
	players := ootPlayers(t,
		"red-mah red-mah red-mah white-pau white-pau white-pau yellow-kuin yellow-tse yellow-xiong",
		"green-pau green-kee",
	)
	s := newTestState(players, cards.MustParseCards("green-chut", 900), card(t, 100, "red-mah"))
	before := cardIDs(s.AllCards())

	outcome, err := NewEngine(quietLogger(), false).Step(s, false)
	require.NoError(t, err)
	assert.Equal(t, Win, outcome)
	assert.Equal(t, 0, s.Current)
	assert.False(t, s.Active.IsValid())
	require.Len(t, s.Faceup, 1)
	assert.Equal(t, evaluator.FourOfAKind, s.Faceup[0].Kind())
	assert.Equal(t, before, cardIDs(s.AllCards()))
}

// stubbornAgent only ever asks to draw, even when it must discard.
type stubbornAgent struct {
	*Player
}

func (a stubbornAgent) PlayTurn(cards.Card, bool) Play {
	return Play{Kind: Draw}
}

func TestStepForcesDiscardOnIllegalPlay(t *testing.T) {
	players := ootPlayers(t, "red-mah white-kee", "green-pau green-kee")
	s := newTestState(players, []cards.Card{card(t, 200, "yellow-tse")}, card(t, 100, "green-chut"))
	s.Players[0] = stubbornAgent{players[0]}

	outcome, err := NewEngine(quietLogger(), false).Step(s, false)
	require.NoError(t, err)
	assert.Equal(t, Next, outcome)
	assert.Equal(t, 200, s.Active.ID())
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 1, s.TurnCount)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "next", Next.String())
	assert.Equal(t, "meld", Meld.String())
	assert.Equal(t, "oot", OutOfTurn.String())
	assert.Equal(t, "win", Win.String())
	assert.Equal(t, "exit", Exit.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
