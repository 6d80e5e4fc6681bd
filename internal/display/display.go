// Package display renders cards, sets and results for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/sisepai/internal/cards"
	"github.com/lox/sisepai/internal/evaluator"
	"github.com/lox/sisepai/internal/game"
	"github.com/lox/sisepai/internal/statistics"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	MeldedStyle = lipgloss.NewStyle().
			Underline(true)

	WinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	colourStyles = map[cards.Colour]lipgloss.Style{
		cards.Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		cards.Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		cards.White:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
		cards.Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")).Bold(true),
	}
)

// Card renders a single card in its own colour.
func Card(c cards.Card) string {
	if !c.IsValid() {
		return MutedStyle.Render("none")
	}
	style, ok := colourStyles[c.Colour()]
	if !ok {
		return c.String()
	}
	return style.Render(c.String())
}

// Cards renders cs as a bracketed, space separated list.
func Cards(cs []cards.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = Card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Set renders a set with its kind and score.
func Set(s evaluator.Set) string {
	out := fmt.Sprintf("%s %s %s", Cards(s.Cards()), s.Kind(), ScoreStyle.Render(fmt.Sprintf("(%d)", s.Score())))
	if s.Melded() {
		out = MeldedStyle.Render(out)
	}
	return out
}

// Evaluation renders the sets, loose cards and score of an evaluated hand.
func Evaluation(w io.Writer, res evaluator.Result) {
	fmt.Fprintln(w, SectionStyle.Render("Sets"))
	if len(res.Sets) == 0 {
		fmt.Fprintln(w, "  "+MutedStyle.Render("none"))
	}
	for _, s := range res.Sets {
		fmt.Fprintln(w, "  "+Set(s))
	}
	fmt.Fprintf(w, "%s %s\n", SectionStyle.Render("Loose:"), Cards(res.Loose))
	fmt.Fprintf(w, "%s %s\n", SectionStyle.Render("Score:"), ScoreStyle.Render(fmt.Sprint(res.Score)))
}

// Player renders a player's collection, grouped the way it is scored.
func Player(w io.Writer, p *game.Player) {
	fmt.Fprintln(w, HeaderStyle.Render(p.Info()))
	for _, s := range p.FacedownSets() {
		fmt.Fprintln(w, "  facedown "+Set(s))
	}
	for _, s := range p.MeldedSets() {
		fmt.Fprintln(w, "  melded   "+Set(s))
	}
	for _, s := range p.HandSets() {
		fmt.Fprintln(w, "  hand     "+Set(s))
	}
	fmt.Fprintf(w, "  loose    %s\n", Cards(cards.SortByColour(p.LangPai())))
}

// Result renders the end of a single game.
func Result(w io.Writer, res game.Result, names []string) {
	if res.Won() {
		fmt.Fprintln(w, WinStyle.Render(fmt.Sprintf("%s calls kaeu with %d points after %d turns", res.WinnerName, res.FinalScore, res.Turns)))
	} else {
		fmt.Fprintln(w, MutedStyle.Render(fmt.Sprintf("No winner (%s) after %d turns", res.Reason, res.Turns)))
	}
	for i, score := range res.Scores {
		name := fmt.Sprintf("seat %d", i)
		if i < len(names) {
			name = names[i]
		}
		fmt.Fprintf(w, "  %-12s %s\n", name, ScoreStyle.Render(fmt.Sprint(score)))
	}
}

// Summary prints a comprehensive summary of simulation results.
func Summary(w io.Writer, stats *statistics.Statistics, names []string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintln(w, HeaderStyle.Render(fmt.Sprintf("Sisepai simulation: %d games, %d players", stats.Games, len(names))))

	fmt.Fprintln(w, SectionStyle.Render("\nOutcomes"))
	fmt.Fprintf(w, "Wins: %d (%.1f%%)\n", stats.Wins, stats.WinRate()*100)
	fmt.Fprintf(w, "Out of cards: %d\n", stats.Exhausted)
	fmt.Fprintf(w, "Turn limit: %d\n", stats.TurnLimits)
	fmt.Fprintf(w, "Starter won: %d (%.1f%% of wins)\n", stats.StarterWins, stats.StarterWinRate()*100)
	fmt.Fprintf(w, "Winning score: mean %.2f, max %d\n", stats.MeanWinningScore(), stats.MaxScore)

	fmt.Fprintln(w, SectionStyle.Render("\nGame length (turns)"))
	fmt.Fprintf(w, "Mean: %.2f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.2f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Longest: %d\n", stats.MaxTurns)

	fmt.Fprintln(w, SectionStyle.Render("\nSeats"))
	for i, seat := range stats.Seats {
		name := fmt.Sprintf("seat %d", i)
		if i < len(names) {
			name = names[i]
		}
		fmt.Fprintf(w, "%-12s %d wins (%.1f%%), started %d\n", name, seat.Wins, stats.SeatWinRate(i)*100, seat.Starts)
	}
}
