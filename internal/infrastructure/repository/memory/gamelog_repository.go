package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mtkallio/playoff-pool/internal/domain/gamelog"
)

type gamelogKey struct {
	gameID   int64
	playerID string
}

type GameLogRepository struct {
	mu      sync.RWMutex
	entries map[gamelogKey]gamelog.Entry
}

func NewGameLogRepository() *GameLogRepository {
	return &GameLogRepository{entries: make(map[gamelogKey]gamelog.Entry)}
}

func (r *GameLogRepository) UpsertEntries(_ context.Context, entries []gamelog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range entries {
		r.entries[gamelogKey{gameID: entry.GameID, playerID: entry.PlayerID}] = entry
	}
	return nil
}

func (r *GameLogRepository) ListAll(_ context.Context) ([]gamelog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamelog.Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	sortEntries(out)
	return out, nil
}

func (r *GameLogRepository) ListByPlayer(_ context.Context, playerID string) ([]gamelog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamelog.Entry, 0, 8)
	for _, entry := range r.entries {
		if entry.PlayerID == playerID {
			out = append(out, entry)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *GameLogRepository) ListByPlayerAfterGame(_ context.Context, playerID string, afterGameID int64) ([]gamelog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamelog.Entry, 0, 8)
	for _, entry := range r.entries {
		if entry.PlayerID == playerID && entry.GameID > afterGameID {
			out = append(out, entry)
		}
	}
	sortEntries(out)
	return out, nil
}

func sortEntries(entries []gamelog.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].GameID != entries[j].GameID {
			return entries[i].GameID < entries[j].GameID
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
}
