package memory

import (
	"context"
	"sync"

	"github.com/mtkallio/playoff-pool/internal/domain/pick"
)

type PickRepository struct {
	mu     sync.RWMutex
	sheets map[string]pick.Sheet
}

func NewPickRepository() *PickRepository {
	return &PickRepository{sheets: make(map[string]pick.Sheet)}
}

func (r *PickRepository) GetSheet(_ context.Context, userID string) (pick.Sheet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheet, ok := r.sheets[userID]
	if !ok {
		return pick.Sheet{}, false, nil
	}
	return sheet.Clone(), true, nil
}

func (r *PickRepository) UpsertSheet(_ context.Context, sheet pick.Sheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sheets[sheet.UserID] = sheet.Clone()
	return nil
}

func (r *PickRepository) ListSheets(_ context.Context) ([]pick.Sheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Sheet, 0, len(r.sheets))
	for _, sheet := range r.sheets {
		out = append(out, sheet.Clone())
	}
	return out, nil
}
