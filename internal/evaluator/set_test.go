package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/sisepai/internal/cards"
)

func TestSetScoringTable(t *testing.T) {
	tests := []struct {
		name       string
		cards      string
		activeIdx  int // -1 for no active card
		wantScore  int
		wantKind   Kind
		wantMelded bool
	}{
		{"four of a kind", "red-mah red-mah red-mah red-mah", -1, 8, FourOfAKind, false},
		{"four of a kind melded", "red-mah red-mah red-mah red-mah", 2, 6, FourOfAKind, true},
		{"three of a kind", "white-pau white-pau white-pau", -1, 3, ThreeOfAKind, false},
		{"three of a kind melded", "white-pau white-pau white-pau", 0, 1, ThreeOfAKind, true},
		{"pair", "green-tse green-tse", -1, 0, Pair, false},
		{"pair melded", "green-tse green-tse", 1, 0, Pair, true},
		{"four-colour chut", "red-chut yellow-chut white-chut green-chut", -1, 4, FourColourChut, false},
		{"four-colour chut melded", "red-chut yellow-chut white-chut green-chut", 3, 4, FourColourChut, true},
		{"three-colour chut", "red-chut white-chut green-chut", -1, 1, ThreeColourChut, false},
		{"kuin-tse-xiong", "yellow-kuin yellow-tse yellow-xiong", -1, 2, KuinTseXiong, false},
		{"kuin-tse-xiong unordered", "yellow-xiong yellow-kuin yellow-tse", 0, 2, KuinTseXiong, true},
		{"kee-mah-pau", "green-kee green-mah green-pau", -1, 1, KeeMahPau, false},
		{"standalone kuin", "white-kuin", -1, 1, Kuin, false},
		{"four identical kuin", "red-kuin red-kuin red-kuin red-kuin", -1, -1, Invalid, false},
		{"three identical kuin", "red-kuin red-kuin red-kuin", -1, -1, Invalid, false},
		{"kuin pair", "red-kuin red-kuin", -1, -1, Invalid, false},
		{"mixed colour sequence", "red-kuin yellow-tse red-xiong", -1, -1, Invalid, false},
		{"two-colour chut", "red-chut green-chut", -1, -1, Invalid, false},
		{"three chut repeated colour", "red-chut red-chut green-chut", -1, -1, Invalid, false},
		{"single non-kuin", "red-mah", -1, -1, Invalid, false},
		{"four non-chut unique colours", "red-mah yellow-mah white-mah green-mah", -1, -1, Invalid, false},
		{"kee-mah-tse", "red-kee red-mah red-tse", -1, -1, Invalid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := cards.MustParseCards(tt.cards, 1)
			active := cards.NoCard
			if tt.activeIdx >= 0 {
				active = cs[tt.activeIdx]
			}
			s := NewSet(cs, active)
			assert.Equal(t, tt.wantScore, s.Score())
			assert.Equal(t, tt.wantKind, s.Kind())
			assert.Equal(t, tt.wantMelded, s.Melded())
			assert.Equal(t, tt.wantScore < 0, s.Invalid())
		})
	}
}

func TestSetActiveMatchesByIdentity(t *testing.T) {
	cs := cards.MustParseCards("red-mah red-mah red-mah", 1)
	lookalike := cards.MustNew(50, cards.Red, cards.Mah)

	s := NewSet(cs, lookalike)
	assert.False(t, s.Melded())
	assert.Equal(t, 3, s.Score())
}

func TestSetFlags(t *testing.T) {
	s := NewSet(cards.MustParseCards("red-chut yellow-chut white-chut", 1), cards.NoCard)
	assert.True(t, s.SameSuit())
	assert.False(t, s.SameColour())
	assert.True(t, s.UniqueColours())
	assert.True(t, s.Breakable())
	assert.Equal(t, 3, s.Len())
}

func TestSetPredicates(t *testing.T) {
	four := NewSet(cards.MustParseCards("red-mah red-mah red-mah red-mah", 1), cards.NoCard)
	three := NewSet(cards.MustParseCards("green-tse green-tse green-tse", 10), cards.NoCard)
	chut := NewSet(cards.MustParseCards("red-chut yellow-chut white-chut green-chut", 20), cards.NoCard)
	kuin := NewSet(cards.MustParseCards("red-kuin", 30), cards.NoCard)

	assert.True(t, IsIdentical(four))
	assert.True(t, IsIdentical(three))
	assert.False(t, IsIdentical(chut))
	assert.True(t, IsFourColour(chut))
	assert.False(t, IsFourColour(four))

	sets := []Set{four, three, kuin}
	assert.True(t, ExistsIdentical(sets, 4, cards.Mah, 0))
	assert.True(t, ExistsIdentical(sets, 4, cards.Mah, cards.Red))
	assert.False(t, ExistsIdentical(sets, 4, cards.Mah, cards.Green))
	assert.True(t, ExistsIdentical(sets, 3, cards.Tse, cards.Green))
	assert.False(t, ExistsIdentical(sets, 3, cards.Mah, 0))

	assert.True(t, HasBreakable(sets))
	assert.False(t, HasBreakable([]Set{kuin}))
	assert.False(t, HasBreakable(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Four of a Kind", FourOfAKind.String())
	assert.Equal(t, "Three-Colour Chut", ThreeColourChut.String())
	assert.Equal(t, "Invalid", Kind(99).String())
}
