package memory

import (
	"context"
	"sync"

	"github.com/mtkallio/playoff-pool/internal/domain/prediction"
)

type PredictionRepository struct {
	mu     sync.RWMutex
	sheets map[string]prediction.Sheet
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{sheets: make(map[string]prediction.Sheet)}
}

func (r *PredictionRepository) GetSheet(_ context.Context, userID string) (prediction.Sheet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheet, ok := r.sheets[userID]
	if !ok {
		return prediction.Sheet{}, false, nil
	}
	return sheet.Clone(), true, nil
}

func (r *PredictionRepository) UpsertSheet(_ context.Context, sheet prediction.Sheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sheets[sheet.UserID] = sheet.Clone()
	return nil
}

func (r *PredictionRepository) ListSheets(_ context.Context) ([]prediction.Sheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Sheet, 0, len(r.sheets))
	for _, sheet := range r.sheets {
		out = append(out, sheet.Clone())
	}
	return out, nil
}
