package postgres

import (
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/points"
)

type userPointsTableModel struct {
	UserID           string    `db:"user_id"`
	Round1Correct    int       `db:"round1_correct"`
	Round2Correct    int       `db:"round2_correct"`
	Round3Correct    int       `db:"round3_correct"`
	Round4Correct    int       `db:"round4_correct"`
	Round1Subtotal   int       `db:"round1_subtotal"`
	Round2Subtotal   int       `db:"round2_subtotal"`
	Round3Subtotal   int       `db:"round3_subtotal"`
	Round4Subtotal   int       `db:"round4_subtotal"`
	BracketTotal     int       `db:"bracket_total"`
	LineupTotal      int       `db:"lineup_total"`
	PredictionsTotal int       `db:"predictions_total"`
	Total            int       `db:"total"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func userPointsFromRow(row userPointsTableModel) points.UserPoints {
	return points.UserPoints{
		UserID:           row.UserID,
		Round1Correct:    row.Round1Correct,
		Round1Points:     row.Round1Subtotal,
		Round2Correct:    row.Round2Correct,
		Round2Points:     row.Round2Subtotal,
		Round3Correct:    row.Round3Correct,
		Round3Points:     row.Round3Subtotal,
		FinalCorrect:     row.Round4Correct,
		FinalPoints:      row.Round4Subtotal,
		BracketTotal:     row.BracketTotal,
		LineupTotal:      row.LineupTotal,
		PredictionsTotal: row.PredictionsTotal,
		Total:            row.Total,
		UpdatedAt:        row.UpdatedAt,
	}
}
