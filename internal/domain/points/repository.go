package points

import (
	"context"
	"time"
)

// Repository stores per-user point records. Each scoring engine owns a
// slice of the record and writes only that slice; the store merges the
// write and recomputes the derived totals in the same operation, so
// engines running concurrently on one user never erase each other's
// subtotals. Every upsert returns the merged record.
type Repository interface {
	GetUserPoints(ctx context.Context, userID string) (UserPoints, bool, error)
	UpsertBracketScore(ctx context.Context, userID string, score BracketScore, updatedAt time.Time) (UserPoints, error)
	UpsertLineupTotal(ctx context.Context, userID string, total int, updatedAt time.Time) (UserPoints, error)
	UpsertPredictionsTotal(ctx context.Context, userID string, total int, updatedAt time.Time) (UserPoints, error)
	ListUserPoints(ctx context.Context) ([]UserPoints, error)
}
