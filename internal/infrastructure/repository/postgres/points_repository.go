package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mtkallio/playoff-pool/internal/domain/points"
	qb "github.com/mtkallio/playoff-pool/internal/platform/querybuilder"
)

const userPointsTable = "user_points"

var userPointsColumns = []string{
	"user_id",
	"round1_correct", "round2_correct", "round3_correct", "round4_correct",
	"round1_subtotal", "round2_subtotal", "round3_subtotal", "round4_subtotal",
	"bracket_total", "lineup_total", "predictions_total", "total",
	"updated_at",
}

// Each engine's upsert touches only the columns it owns and recomputes
// `total` from the row's other columns inside the same statement, so two
// engines writing the same user concurrently cannot erase each other's
// subtotals.
var bracketScoreUpsertSuffix = "ON CONFLICT (user_id) DO UPDATE SET " +
	"round1_correct = EXCLUDED.round1_correct, round2_correct = EXCLUDED.round2_correct, " +
	"round3_correct = EXCLUDED.round3_correct, round4_correct = EXCLUDED.round4_correct, " +
	"round1_subtotal = EXCLUDED.round1_subtotal, round2_subtotal = EXCLUDED.round2_subtotal, " +
	"round3_subtotal = EXCLUDED.round3_subtotal, round4_subtotal = EXCLUDED.round4_subtotal, " +
	"bracket_total = EXCLUDED.bracket_total, " +
	"total = EXCLUDED.bracket_total + user_points.lineup_total + user_points.predictions_total, " +
	"updated_at = EXCLUDED.updated_at " +
	"RETURNING " + strings.Join(userPointsColumns, ", ")

var lineupTotalUpsertSuffix = "ON CONFLICT (user_id) DO UPDATE SET " +
	"lineup_total = EXCLUDED.lineup_total, " +
	"total = user_points.bracket_total + EXCLUDED.lineup_total + user_points.predictions_total, " +
	"updated_at = EXCLUDED.updated_at " +
	"RETURNING " + strings.Join(userPointsColumns, ", ")

var predictionsTotalUpsertSuffix = "ON CONFLICT (user_id) DO UPDATE SET " +
	"predictions_total = EXCLUDED.predictions_total, " +
	"total = user_points.bracket_total + user_points.lineup_total + EXCLUDED.predictions_total, " +
	"updated_at = EXCLUDED.updated_at " +
	"RETURNING " + strings.Join(userPointsColumns, ", ")

type PointsRepository struct {
	db *sqlx.DB
}

func NewPointsRepository(db *sqlx.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

func (r *PointsRepository) GetUserPoints(ctx context.Context, userID string) (points.UserPoints, bool, error) {
	query, args, err := qb.Select(userPointsColumns...).
		From(userPointsTable).
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return points.UserPoints{}, false, fmt.Errorf("build get user points query: %w", err)
	}

	var row userPointsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return points.UserPoints{}, false, nil
		}
		return points.UserPoints{}, false, fmt.Errorf("get user points: %w", err)
	}
	return userPointsFromRow(row), true, nil
}

func (r *PointsRepository) UpsertBracketScore(ctx context.Context, userID string, score points.BracketScore, updatedAt time.Time) (points.UserPoints, error) {
	model := userPointsTableModel{
		UserID:         userID,
		Round1Correct:  score.Round1Correct,
		Round2Correct:  score.Round2Correct,
		Round3Correct:  score.Round3Correct,
		Round4Correct:  score.FinalCorrect,
		Round1Subtotal: score.Round1Points,
		Round2Subtotal: score.Round2Points,
		Round3Subtotal: score.Round3Points,
		Round4Subtotal: score.FinalPoints,
		BracketTotal:   score.Total(),
		Total:          score.Total(),
		UpdatedAt:      updatedAt,
	}
	return r.upsertScoped(ctx, model, bracketScoreUpsertSuffix, "bracket score")
}

func (r *PointsRepository) UpsertLineupTotal(ctx context.Context, userID string, total int, updatedAt time.Time) (points.UserPoints, error) {
	model := userPointsTableModel{
		UserID:      userID,
		LineupTotal: total,
		Total:       total,
		UpdatedAt:   updatedAt,
	}
	return r.upsertScoped(ctx, model, lineupTotalUpsertSuffix, "lineup total")
}

func (r *PointsRepository) UpsertPredictionsTotal(ctx context.Context, userID string, total int, updatedAt time.Time) (points.UserPoints, error) {
	model := userPointsTableModel{
		UserID:           userID,
		PredictionsTotal: total,
		Total:            total,
		UpdatedAt:        updatedAt,
	}
	return r.upsertScoped(ctx, model, predictionsTotalUpsertSuffix, "predictions total")
}

func (r *PointsRepository) upsertScoped(ctx context.Context, model userPointsTableModel, suffix, what string) (points.UserPoints, error) {
	query, args, err := qb.InsertModel(userPointsTable, model, suffix)
	if err != nil {
		return points.UserPoints{}, fmt.Errorf("build upsert %s query: %w", what, err)
	}

	var row userPointsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return points.UserPoints{}, fmt.Errorf("upsert %s: %w", what, err)
	}
	return userPointsFromRow(row), nil
}

func (r *PointsRepository) ListUserPoints(ctx context.Context) ([]points.UserPoints, error) {
	query, args, err := qb.Select(userPointsColumns...).
		From(userPointsTable).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user points query: %w", err)
	}

	var rows []userPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list user points: %w", err)
	}

	out := make([]points.UserPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, userPointsFromRow(row))
	}
	return out, nil
}
