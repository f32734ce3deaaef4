package points

import "time"

// UserPoints is a user's full scoring record. Every field is overwritten
// by its owning engine on recompute; nothing here is incremented in place.
type UserPoints struct {
	UserID string

	Round1Correct int
	Round1Points  int
	Round2Correct int
	Round2Points  int
	Round3Correct int
	Round3Points  int
	FinalCorrect  int
	FinalPoints   int
	BracketTotal  int

	LineupTotal      int
	PredictionsTotal int
	Total            int

	UpdatedAt time.Time
}

// BracketScore is the bracket engine's slice of a UserPoints record:
// per-round correct winner counts and point subtotals.
type BracketScore struct {
	Round1Correct int
	Round1Points  int
	Round2Correct int
	Round2Points  int
	Round3Correct int
	Round3Points  int
	FinalCorrect  int
	FinalPoints   int
}

// Total sums the per-round subtotals.
func (b BracketScore) Total() int {
	return b.Round1Points + b.Round2Points + b.Round3Points + b.FinalPoints
}

// ApplyBracketScore overwrites the bracket-owned fields and rebuilds the
// derived totals.
func (p *UserPoints) ApplyBracketScore(score BracketScore) {
	p.Round1Correct = score.Round1Correct
	p.Round1Points = score.Round1Points
	p.Round2Correct = score.Round2Correct
	p.Round2Points = score.Round2Points
	p.Round3Correct = score.Round3Correct
	p.Round3Points = score.Round3Points
	p.FinalCorrect = score.FinalCorrect
	p.FinalPoints = score.FinalPoints
	p.RecalculateTotals()
}

// CorrectSeriesCount sums per-round correct winner counts; it is the
// leaderboard tiebreaker.
func (p UserPoints) CorrectSeriesCount() int {
	return p.Round1Correct + p.Round2Correct + p.Round3Correct + p.FinalCorrect
}

// RecalculateTotals rebuilds the derived totals from the per-round and
// per-engine subtotals.
func (p *UserPoints) RecalculateTotals() {
	p.BracketTotal = p.Round1Points + p.Round2Points + p.Round3Points + p.FinalPoints
	p.Total = p.BracketTotal + p.LineupTotal + p.PredictionsTotal
}
