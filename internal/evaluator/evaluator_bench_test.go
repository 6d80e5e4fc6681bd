package evaluator

import (
	"fmt"
	"testing"

	"github.com/lox/sisepai/internal/cards"
	"github.com/lox/sisepai/internal/randutil"
)

// generateHands deals n random hands of size cards from a fixed seed.
func generateHands(seed int64, n, size int) [][]cards.Card {
	rng := randutil.New(seed)
	hands := make([][]cards.Card, n)
	for i := range hands {
		deck := cards.NewDeck(1, rng)
		hand, err := deck.Deal(size)
		if err != nil {
			panic(err)
		}
		hands[i] = hand
	}
	return hands
}

func tortureCases() []struct {
	name string
	hand []cards.Card
} {
	return []struct {
		name string
		hand []cards.Card
	}{
		{"AllKuin", cards.MustParseCards("red-kuin red-kuin yellow-kuin yellow-kuin white-kuin white-kuin green-kuin green-kuin", 1)},
		{"FourOfAKinds", cards.MustParseCards("red-mah red-mah red-mah red-mah white-pau white-pau white-pau white-pau", 1)},
		{"ChutSpread", cards.MustParseCards("red-chut yellow-chut white-chut green-chut red-chut yellow-chut white-chut", 1)},
		{"Triples", cards.MustParseCards("red-kuin red-tse red-xiong green-kee green-mah green-pau yellow-kuin yellow-tse yellow-xiong", 1)},
		{"Pairs", cards.MustParseCards("red-tse red-tse green-xiong green-xiong white-kee white-kee yellow-pau yellow-pau", 1)},
	}
}

func BenchmarkEvaluate_RandomHands(b *testing.B) {
	hands := generateHands(42, 10000, 21)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = Evaluate(hands[i%len(hands)], cards.NoCard)
	}
}

func BenchmarkEvaluate_TortureCases(b *testing.B) {
	for _, tc := range tortureCases() {
		b.Run(tc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = Evaluate(tc.hand, cards.NoCard)
			}
		})
	}
}

func BenchmarkEvaluate_HandSizes(b *testing.B) {
	for _, size := range []int{7, 14, 21, 22} {
		hands := generateHands(int64(size), 1000, size)
		b.Run(fmt.Sprintf("cards_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Evaluate(hands[i%len(hands)], cards.NoCard)
			}
		})
	}
}

func BenchmarkEvaluate_ActiveCard(b *testing.B) {
	hands := generateHands(7, 1000, 22)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		hand := hands[i%len(hands)]
		_ = Evaluate(hand, hand[len(hand)-1])
	}
}
