package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	ID        string        // Unique game identifier, derived from the seed
	Seed      int64         // RNG seed for this game (for replay)
	Winner    int           // Seat of the winner, -1 if nobody won
	Starter   int           // Seat of the starting player
	Turns     int           // Completed discards
	Score     int           // Winner's final total score
	TurnLimit bool          // Stopped by the turn limit rather than running out of cards
	Duration  time.Duration // Wall time spent playing
}

// Won reports whether somebody called kaeu.
func (r GameResult) Won() bool {
	return r.Winner >= 0
}

// SeatStats tracks statistics for a specific seat
type SeatStats struct {
	Starts int
	Wins   int
}

// Statistics tracks aggregate statistics over many games
type Statistics struct {
	Games  int
	Sum    float64   // Sum of turn counts
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Turn counts for median/percentile calculation

	Wins        int // Games ending in kaeu
	Exhausted   int // Games that ran out of cards
	TurnLimits  int // Games stopped by the turn limit
	StarterWins int // Games won by the starting player

	SumScore int // Sum of winning scores
	MaxScore int // Highest winning score observed
	MaxTurns int // Longest game observed

	Seats    []SeatStats
	Duration time.Duration
}

// Mean returns the arithmetic mean number of turns per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Sum / float64(s.Games)
}

// Variance returns the sample variance of the turn counts
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the turn counts
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	turns := float64(result.Turns)
	s.Games++
	s.Sum += turns
	s.Sum2 += turns * turns
	s.Values = append(s.Values, turns)
	s.Duration += result.Duration

	if result.Turns > s.MaxTurns {
		s.MaxTurns = result.Turns
	}

	switch {
	case result.Won():
		s.Wins++
		s.SumScore += result.Score
		if result.Score > s.MaxScore {
			s.MaxScore = result.Score
		}
		if result.Winner == result.Starter {
			s.StarterWins++
		}
		s.seat(result.Winner).Wins++
	case result.TurnLimit:
		s.TurnLimits++
	default:
		s.Exhausted++
	}

	if result.Starter >= 0 {
		s.seat(result.Starter).Starts++
	}
}

func (s *Statistics) seat(i int) *SeatStats {
	for len(s.Seats) <= i {
		s.Seats = append(s.Seats, SeatStats{})
	}
	return &s.Seats[i]
}

// Median returns the median number of turns
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the turn count at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// WinRate returns the fraction of games that ended in kaeu
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// StarterWinRate returns the fraction of won games taken by the starting player
func (s *Statistics) StarterWinRate() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.StarterWins) / float64(s.Wins)
}

// SeatWinRate returns the fraction of all games won from the given seat
func (s *Statistics) SeatWinRate(seat int) float64 {
	if seat < 0 || seat >= len(s.Seats) || s.Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Games)
}

// MeanWinningScore returns the average final score of winners
func (s *Statistics) MeanWinningScore() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.SumScore) / float64(s.Wins)
}

// IsLedgerBalanced checks that every game ended exactly one way
func (s *Statistics) IsLedgerBalanced() bool {
	return s.Wins+s.Exhausted+s.TurnLimits == s.Games
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: games=%d, wins=%d, exhausted=%d, turn limits=%d",
			s.Games, s.Wins, s.Exhausted, s.TurnLimits)
	}

	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	seatWins, seatStarts := 0, 0
	for _, seat := range s.Seats {
		seatWins += seat.Wins
		seatStarts += seat.Starts
	}
	if seatWins != s.Wins {
		return fmt.Errorf("seat wins total (%d) does not match wins (%d)", seatWins, s.Wins)
	}
	if seatStarts != s.Games {
		return fmt.Errorf("seat starts total (%d) does not match games (%d)", seatStarts, s.Games)
	}
	if s.StarterWins > s.Wins {
		return fmt.Errorf("starter wins (%d) exceeds wins (%d)", s.StarterWins, s.Wins)
	}

	return nil
}
