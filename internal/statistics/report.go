package statistics

import (
	"fmt"

	"github.com/lox/sisepai/internal/fileutil"
)

// Report is the JSON form of a finished simulation.
type Report struct {
	Players []string     `json:"players"`
	Summary Summary      `json:"summary"`
	Seats   []SeatReport `json:"seats"`
	Games   []GameReport `json:"games,omitempty"`
}

// Summary holds the aggregate figures of a Report.
type Summary struct {
	Games            int        `json:"games"`
	Wins             int        `json:"wins"`
	Exhausted        int        `json:"exhausted"`
	TurnLimits       int        `json:"turn_limits"`
	StarterWins      int        `json:"starter_wins"`
	WinRate          float64    `json:"win_rate"`
	MeanWinningScore float64    `json:"mean_winning_score"`
	MaxScore         int        `json:"max_score"`
	MeanTurns        float64    `json:"mean_turns"`
	MedianTurns      float64    `json:"median_turns"`
	StdDevTurns      float64    `json:"stddev_turns"`
	CI95             [2]float64 `json:"ci95_turns"`
	MaxTurns         int        `json:"max_turns"`
	DurationMs       int64      `json:"duration_ms"`
}

type SeatReport struct {
	Name    string  `json:"name"`
	Starts  int     `json:"starts"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

type GameReport struct {
	ID         string `json:"id"`
	Seed       int64  `json:"seed"`
	Winner     int    `json:"winner"`
	Starter    int    `json:"starter"`
	Turns      int    `json:"turns"`
	Score      int    `json:"score,omitempty"`
	TurnLimit  bool   `json:"turn_limit,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// NewReport builds a Report from aggregate statistics and, optionally, the
// per-game results in game order.
func NewReport(s *Statistics, players []string, results []GameResult) Report {
	low, high := s.ConfidenceInterval95()
	r := Report{
		Players: players,
		Summary: Summary{
			Games:            s.Games,
			Wins:             s.Wins,
			Exhausted:        s.Exhausted,
			TurnLimits:       s.TurnLimits,
			StarterWins:      s.StarterWins,
			WinRate:          s.WinRate(),
			MeanWinningScore: s.MeanWinningScore(),
			MaxScore:         s.MaxScore,
			MeanTurns:        s.Mean(),
			MedianTurns:      s.Median(),
			StdDevTurns:      s.StdDev(),
			CI95:             [2]float64{low, high},
			MaxTurns:         s.MaxTurns,
			DurationMs:       s.Duration.Milliseconds(),
		},
		Seats: make([]SeatReport, len(s.Seats)),
	}

	for i, seat := range s.Seats {
		name := fmt.Sprintf("seat %d", i)
		if i < len(players) {
			name = players[i]
		}
		r.Seats[i] = SeatReport{Name: name, Starts: seat.Starts, Wins: seat.Wins, WinRate: s.SeatWinRate(i)}
	}

	for _, g := range results {
		r.Games = append(r.Games, GameReport{
			ID:         g.ID,
			Seed:       g.Seed,
			Winner:     g.Winner,
			Starter:    g.Starter,
			Turns:      g.Turns,
			Score:      g.Score,
			TurnLimit:  g.TurnLimit,
			DurationMs: g.Duration.Milliseconds(),
		})
	}
	return r
}

// WriteFile writes the report as indented JSON, replacing filename
// atomically.
func (r Report) WriteFile(filename string) error {
	return fileutil.WriteJSON(filename, r, 0o644)
}
