// Package evaluator classifies a hand of Sisepai cards into scoring sets.
//
// Evaluate is a pure function: it works on a sorted copy of its input and
// tracks consumed cards in a local index set, so the same hand always yields
// the same sets, score and loose cards.
package evaluator

import (
	"github.com/lox/sisepai/internal/cards"
)

// Result is the outcome of evaluating a hand.
type Result struct {
	Sets  []Set        // scoring sets in the order they were found
	Score int          // sum of all set scores
	Loose []cards.Card // lang pai: cards in no set, rank order
}

// MeldedSet returns the set containing the active card, if any.
func (r Result) MeldedSet() (Set, bool) {
	for _, s := range r.Sets {
		if s.Melded() {
			return s, true
		}
	}
	return Set{}, false
}

// WithoutSet returns the result's sets minus the first set equal in
// membership to target.
func (r Result) WithoutSet(target Set) []Set {
	out := make([]Set, 0, len(r.Sets))
	removed := false
	for _, s := range r.Sets {
		if !removed && sameMembers(s, target) {
			removed = true
			continue
		}
		out = append(out, s)
	}
	return out
}

// Evaluate partitions hand into the highest-priority non-overlapping sets.
// active marks the card on the table (cards.NoCard if none); sets that use
// it count as melded.
//
// Sets are committed greedily over the rank-sorted hand in priority tiers:
// four of a kind, four-colour chut, three of a kind, three-card sequences and
// three-colour chut, standalone kuin, then pairs. A card consumed by one tier
// is unavailable to every later tier.
func Evaluate(hand []cards.Card, active cards.Card) Result {
	e := newEvaluation(hand, active)

	e.identicalWindows(4, FourOfAKind)
	e.fourColourChut()
	e.identicalWindows(3, ThreeOfAKind)
	e.threeCardCombinations()
	e.standaloneKuin()
	e.pairs()

	res := Result{Sets: e.sets}
	for _, s := range e.sets {
		res.Score += s.Score()
	}
	for i, c := range e.cards {
		if !e.used[i] {
			res.Loose = append(res.Loose, c)
		}
	}
	return res
}

type evaluation struct {
	cards  []cards.Card
	used   []bool
	active cards.Card
	sets   []Set
}

func newEvaluation(hand []cards.Card, active cards.Card) *evaluation {
	return &evaluation{
		cards:  cards.Sorted(hand),
		used:   make([]bool, len(hand)),
		active: active,
	}
}

func (e *evaluation) free(idx ...int) bool {
	for _, i := range idx {
		if e.used[i] {
			return false
		}
	}
	return true
}

func (e *evaluation) pick(idx ...int) []cards.Card {
	out := make([]cards.Card, len(idx))
	for k, i := range idx {
		out[k] = e.cards[i]
	}
	return out
}

func (e *evaluation) commit(s Set, idx ...int) {
	e.sets = append(e.sets, s)
	for _, i := range idx {
		e.used[i] = true
	}
}

func window(start, size int) []int {
	idx := make([]int, size)
	for k := range idx {
		idx[k] = start + k
	}
	return idx
}

// identicalWindows slides a window of the given size over the sorted hand
// and commits identical sets, skipping past the consumed cards.
func (e *evaluation) identicalWindows(size int, kind Kind) {
	for i := 0; i <= len(e.cards)-size; i++ {
		idx := window(i, size)
		if !e.free(idx...) {
			continue
		}
		s := NewSet(e.pick(idx...), e.active)
		if s.Kind() != kind || !IsIdentical(s) {
			continue
		}
		e.commit(s, idx...)
		i += size - 1
	}
}

// fourColourChut tries every combination of four chut cards, since the four
// colours are never rank-adjacent once identical chut sit between them.
func (e *evaluation) fourColourChut() {
	n := len(e.cards)
	for i := 0; i < n; i++ {
		if e.cards[i].Suit() != cards.Chut {
			continue
		}
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				for l := k + 1; l < n; l++ {
					if !e.free(i, j, k, l) {
						continue
					}
					s := NewSet(e.pick(i, j, k, l), e.active)
					if s.Kind() == FourColourChut {
						e.commit(s, i, j, k, l)
					}
				}
			}
		}
	}
}

// threeCardCombinations commits kuin-tse-xiong, kee-mah-pau and three-colour
// chut sets from every combination of three remaining cards.
func (e *evaluation) threeCardCombinations() {
	n := len(e.cards)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if !e.free(i, j, k) {
					continue
				}
				s := NewSet(e.pick(i, j, k), e.active)
				switch s.Kind() {
				case KuinTseXiong, KeeMahPau, ThreeColourChut:
					e.commit(s, i, j, k)
				}
			}
		}
	}
}

func (e *evaluation) standaloneKuin() {
	for i, c := range e.cards {
		if c.Suit() == cards.Kuin && !e.used[i] {
			e.commit(NewSet(e.pick(i), e.active), i)
		}
	}
}

// pairs commits identical pairs; adjacent pairs are independent.
func (e *evaluation) pairs() {
	for i := 0; i <= len(e.cards)-2; i++ {
		if !e.free(i, i+1) {
			continue
		}
		s := NewSet(e.pick(i, i+1), e.active)
		if s.Kind() == Pair {
			e.commit(s, i, i+1)
		}
	}
}

func sameMembers(a, b Set) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, c := range b.cards {
		if !a.Contains(c) {
			return false
		}
	}
	return true
}
