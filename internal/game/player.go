package game

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/sisepai/internal/cards"
	"github.com/lox/sisepai/internal/evaluator"
	"github.com/lox/sisepai/internal/randutil"
)

// WinningScore is the minimum total score for a kaeu.
const WinningScore = 9

// Player is the default rules-based agent. It melds only when doing so
// raises its hand score (or allows a tok) and discards loose cards at random.
type Player struct {
	name   string
	rng    randutil.Source
	logger *log.Logger

	fieldDiscards []cards.Card
	fieldFaceup   []evaluator.Set

	hand          []cards.Card // rank order
	handSets      []evaluator.Set
	handScore     int
	langPai       []cards.Card
	facedownSets  []evaluator.Set
	facedownScore int
	meldedSets    []evaluator.Set
	meldedScore   int
	totalScore    int
}

var _ Agent = (*Player)(nil)

// NewPlayer creates a player whose random choices come from rng.
func NewPlayer(name string, rng randutil.Source, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{name: name, rng: rng, logger: logger}
}

func (p *Player) Name() string { return p.name }

// GiveCards adds cs to the hand, lays down any terminal dealt sets face down
// and re-evaluates what remains.
func (p *Player) GiveCards(cs []cards.Card) {
	p.hand = append(p.hand, cs...)
	cards.SortByRank(p.hand)
	p.separateFacedownSets()
	p.UpdateScores()
}

// separateFacedownSets moves dealt sets that cannot be improved out of the
// hand. A four of a kind always goes face down; a four-colour chut only when
// no other chut is left in the hand.
func (p *Player) separateFacedownSets() {
	res := evaluator.Evaluate(p.hand, cards.NoCard)
	for _, s := range res.Sets {
		if s.Len() != 4 || !s.SameSuit() {
			continue
		}
		switch {
		case s.UniqueColours():
			rest := withoutCards(p.hand, s.Cards())
			if cards.ContainsSuit(rest, cards.Chut) {
				continue
			}
			p.layFacedown(s)
		case s.SameColour():
			p.layFacedown(s)
		}
	}
}

func (p *Player) layFacedown(s evaluator.Set) {
	p.facedownSets = append(p.facedownSets, s)
	p.facedownScore += s.Score()
	p.hand = withoutCards(p.hand, s.Cards())
	p.logger.Debug("Facedown set", "player", p.name, "set", s, "score", s.Score())
}

// evaluateHand recomputes the hand sets, loose cards and scores. Call after
// any change to the hand.
func (p *Player) evaluateHand() {
	res := evaluator.Evaluate(p.hand, cards.NoCard)
	p.handSets = res.Sets
	p.handScore = res.Score
	p.langPai = res.Loose
	p.totalScore = p.handScore + p.facedownScore + p.meldedScore
}

// UpdateScores recomputes every score from the current sets.
func (p *Player) UpdateScores() {
	p.facedownScore = 0
	for _, s := range p.facedownSets {
		p.facedownScore += s.Score()
	}
	p.meldedScore = 0
	for _, s := range p.meldedSets {
		p.meldedScore += s.Score()
	}
	p.evaluateHand()
}

// CanWin reports whether the player can call kaeu: no loose cards and a
// total score of at least WinningScore.
func (p *Player) CanWin() bool {
	return len(p.langPai) == 0 && p.totalScore >= WinningScore
}

// canTok reports whether a meld that leaves the hand score unchanged is still
// allowed because it reduces the loose cards of a hand already worth a win.
func (p *Player) canTok(score int, loose []cards.Card) bool {
	return score == p.handScore &&
		len(loose) < len(p.langPai) &&
		len(p.langPai) > 0 &&
		p.totalScore >= WinningScore
}

// CheckMeld returns the set the player would meld with active. The meld must
// raise the hand score and leave something to discard afterwards.
func (p *Player) CheckMeld(active cards.Card) (evaluator.Set, bool) {
	res := evaluator.Evaluate(append(slices.Clone(p.hand), active), active)
	meld, ok := res.MeldedSet()
	if !ok {
		return evaluator.Set{}, false
	}
	canDiscard := len(res.Loose) > 0 || evaluator.HasBreakable(res.WithoutSet(meld))
	if canDiscard && res.Score > p.handScore {
		return meld, true
	}
	return evaluator.Set{}, false
}

// PlayTurn melds active if it improves the hand, then calls kaeu or
// discards. A meld that leaves nothing to discard is rolled back.
func (p *Player) PlayTurn(active cards.Card, drawn bool) Play {
	combined := append(slices.Clone(p.hand), active)
	res := evaluator.Evaluate(combined, active)
	meld, ok := res.MeldedSet()

	if ok && (res.Score > p.handScore || p.canTok(res.Score, res.Loose)) {
		saved := p.save()

		p.meldedSets = append(p.meldedSets, meld)
		p.meldedScore += meld.Score()
		p.hand = withoutCards(combined, meld.Cards())
		p.evaluateHand()
		p.logger.Debug("Meld", "player", p.name, "set", meld, "total", p.totalScore)

		if p.CanWin() {
			return Play{Kind: Kaeu, Meld: &meld}
		}
		if dc, ok := p.DiscardCard(); ok {
			return Play{Kind: Discard, Card: dc, Meld: &meld}
		}

		p.logger.Debug("Meld rolled back, nothing to discard", "player", p.name, "set", meld)
		p.restore(saved)
	}

	if drawn {
		return Play{Kind: Discard, Card: active}
	}
	return Play{Kind: Draw}
}

// DiscardCard removes a card from the hand: a random loose card if there is
// one, otherwise a card broken out of a pair, a three-colour chut, or the
// lowest-scoring breakable set.
func (p *Player) DiscardCard() (cards.Card, bool) {
	if len(p.langPai) > 0 {
		return p.discard(randutil.Pick(p.rng, p.langPai)), true
	}
	if p.CanWin() || !evaluator.HasBreakable(p.handSets) {
		return cards.NoCard, false
	}

	for _, s := range p.handSets {
		if s.Len() == 2 {
			return p.discard(randutil.Pick(p.rng, s.Cards())), true
		}
	}
	for _, s := range p.handSets {
		if s.Kind() == evaluator.ThreeColourChut {
			return p.discard(randutil.Pick(p.rng, s.Cards())), true
		}
	}

	lowest := 0
	var candidates []evaluator.Set
	for _, s := range p.handSets {
		if !s.Breakable() {
			continue
		}
		switch {
		case len(candidates) == 0 || s.Score() < lowest:
			lowest = s.Score()
			candidates = []evaluator.Set{s}
		case s.Score() == lowest:
			candidates = append(candidates, s)
		}
	}
	broken := randutil.Pick(p.rng, candidates)
	return p.discard(randutil.Pick(p.rng, broken.Cards())), true
}

func (p *Player) discard(c cards.Card) cards.Card {
	p.hand, _ = cards.Remove(p.hand, c)
	p.evaluateHand()
	return c
}

// UpdateFieldInfo records the public state of the table.
func (p *Player) UpdateFieldInfo(discards []cards.Card, faceup []evaluator.Set) {
	p.fieldDiscards = discards
	p.fieldFaceup = faceup
}

// Collection returns hand, facedown and melded cards in rank order.
func (p *Player) Collection() []cards.Card {
	out := slices.Clone(p.hand)
	for _, s := range p.facedownSets {
		out = append(out, s.Cards()...)
	}
	for _, s := range p.meldedSets {
		out = append(out, s.Cards()...)
	}
	cards.SortByRank(out)
	return out
}

func (p *Player) Hand() []cards.Card               { return slices.Clone(p.hand) }
func (p *Player) HandSets() []evaluator.Set        { return slices.Clone(p.handSets) }
func (p *Player) FacedownSets() []evaluator.Set    { return slices.Clone(p.facedownSets) }
func (p *Player) MeldedSets() []evaluator.Set      { return slices.Clone(p.meldedSets) }
func (p *Player) LangPai() []cards.Card            { return slices.Clone(p.langPai) }
func (p *Player) FieldDiscards() []cards.Card      { return slices.Clone(p.fieldDiscards) }
func (p *Player) FieldFaceupSets() []evaluator.Set { return slices.Clone(p.fieldFaceup) }
func (p *Player) HandScore() int                   { return p.handScore }
func (p *Player) FacedownScore() int               { return p.facedownScore }
func (p *Player) MeldedScore() int                 { return p.meldedScore }
func (p *Player) TotalScore() int                  { return p.totalScore }

// Info returns a one-line summary of the player.
func (p *Player) Info() string {
	return fmt.Sprintf("Player %s with score %d", p.name, p.totalScore)
}

func (p *Player) String() string { return p.name }

type playerSnapshot struct {
	hand        []cards.Card
	meldedCount int
	meldedScore int
}

func (p *Player) save() playerSnapshot {
	return playerSnapshot{
		hand:        slices.Clone(p.hand),
		meldedCount: len(p.meldedSets),
		meldedScore: p.meldedScore,
	}
}

func (p *Player) restore(s playerSnapshot) {
	p.hand = s.hand
	p.meldedSets = p.meldedSets[:s.meldedCount]
	p.meldedScore = s.meldedScore
	p.evaluateHand()
}

// withoutCards returns a copy of hand minus every card in remove, by id.
func withoutCards(hand, remove []cards.Card) []cards.Card {
	out := slices.Clone(hand)
	for _, c := range remove {
		out, _ = cards.Remove(out, c)
	}
	return out
}
