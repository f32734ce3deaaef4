package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/points"
)

type PointsRepository struct {
	mu      sync.RWMutex
	records map[string]points.UserPoints
}

func NewPointsRepository() *PointsRepository {
	return &PointsRepository{records: make(map[string]points.UserPoints)}
}

func (r *PointsRepository) GetUserPoints(_ context.Context, userID string) (points.UserPoints, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[userID]
	return record, ok, nil
}

func (r *PointsRepository) UpsertBracketScore(_ context.Context, userID string, score points.BracketScore, updatedAt time.Time) (points.UserPoints, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.records[userID]
	record.UserID = userID
	record.ApplyBracketScore(score)
	record.UpdatedAt = updatedAt
	r.records[userID] = record
	return record, nil
}

func (r *PointsRepository) UpsertLineupTotal(_ context.Context, userID string, total int, updatedAt time.Time) (points.UserPoints, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.records[userID]
	record.UserID = userID
	record.LineupTotal = total
	record.RecalculateTotals()
	record.UpdatedAt = updatedAt
	r.records[userID] = record
	return record, nil
}

func (r *PointsRepository) UpsertPredictionsTotal(_ context.Context, userID string, total int, updatedAt time.Time) (points.UserPoints, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.records[userID]
	record.UserID = userID
	record.PredictionsTotal = total
	record.RecalculateTotals()
	record.UpdatedAt = updatedAt
	r.records[userID] = record
	return record, nil
}

func (r *PointsRepository) ListUserPoints(_ context.Context) ([]points.UserPoints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]points.UserPoints, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, record)
	}
	return out, nil
}
