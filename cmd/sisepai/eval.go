package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/sisepai/internal/cards"
	"github.com/lox/sisepai/internal/display"
	"github.com/lox/sisepai/internal/evaluator"
	"github.com/lox/sisepai/internal/randutil"
)

// handSize is how many cards the random hand holds when none is given.
const handSize = 21

type EvalCmd struct {
	Hand   []string `arg:"" optional:"" help:"Cards such as red-kuin green-chut (a random hand is dealt when omitted)"`
	Active string   `help:"Card on the table; sets using it count as melded"`
	Seed   *int64   `help:"Seed for the random hand"`
}

func (c *EvalCmd) Run(g *Globals) error {
	hand, err := c.hand()
	if err != nil {
		return err
	}

	active := cards.NoCard
	if c.Active != "" {
		cs, err := cards.ParseCards(c.Active, len(hand)+1)
		if err != nil {
			return fmt.Errorf("active card: %w", err)
		}
		if len(cs) != 1 {
			return fmt.Errorf("active card: expected one card, got %d", len(cs))
		}
		active = cs[0]
		hand = append(hand, active)
	}

	w := g.out()
	fmt.Fprintf(w, "%s %s\n", display.SectionStyle.Render("Hand:"), display.Cards(cards.SortByColour(hand)))
	display.Evaluation(w, evaluator.Evaluate(hand, active))
	return nil
}

func (c *EvalCmd) hand() ([]cards.Card, error) {
	if len(c.Hand) > 0 {
		hand, err := cards.ParseCards(strings.Join(c.Hand, " "), 1)
		if err != nil {
			return nil, fmt.Errorf("hand: %w", err)
		}
		return hand, nil
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	return cards.NewDeck(1, randutil.New(seed)).Deal(handSize)
}
