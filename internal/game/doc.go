// Package game implements a complete round of Sisepai.
//
// The main types are Game, which deals and runs the round, and Engine, which
// drives the per-turn state machine over an explicit State.
//
// # Basic Usage
//
// Seat some players and play until someone wins:
//
//	rng := randutil.New(42)
//	agents := []game.Agent{
//	    game.NewPlayer("Alice", rng, logger),
//	    game.NewPlayer("Bob", rng, logger),
//	    game.NewPlayer("Charlie", rng, logger),
//	}
//	g, err := game.NewGame(agents, rng, game.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	res, err := g.Play(ctx)
//
// # Deterministic Testing
//
// Every random choice (shuffling, the starting player, which loose card to
// discard) is drawn from the randutil.Source handed in, so a fixed seed
// replays the same game. A stacked deck and a fixed starting player give
// complete control:
//
//	deck := cards.NewStackedDeck(cs, rng)
//	g, err := game.NewGame(agents, rng, game.WithDeck(deck), game.WithStartingPlayer(0))
//
// # Turn Flow
//
// Each Engine.Step returns an Outcome:
//   - Next: the current player discarded and the turn passed on
//   - OutOfTurn: another player claimed the active card and now holds the turn
//   - Win: the current player called kaeu
//   - Exit: the game cannot continue (no cards left)
//
// A player who cannot use the active card asks to draw; the old active card
// goes to the discards and the drawn card is offered first to out-of-turn
// claims, then back to the drawing player, who must use or discard it.
package game
