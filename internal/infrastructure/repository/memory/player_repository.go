package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mtkallio/playoff-pool/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{players: make(map[string]player.Player)}
}

func (r *PlayerRepository) GetPlayer(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) ListPlayers(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) ListPlayersByPosition(_ context.Context, position player.Position) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if p.Position == position {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) UpsertPlayers(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range players {
		// Preserve valuation fields the feed does not know about.
		if existing, ok := r.players[p.ID]; ok {
			if p.Price == 0 {
				p.Price = existing.Price
			}
			if p.LastPricedGameID == 0 {
				p.LastPricedGameID = existing.LastPricedGameID
			}
		}
		r.players[p.ID] = p
	}
	return nil
}

func (r *PlayerRepository) UpdatePrice(_ context.Context, playerID string, price int, lastPricedGameID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return fmt.Errorf("player %s not found", playerID)
	}
	p.Price = price
	p.LastPricedGameID = lastPricedGameID
	r.players[playerID] = p
	return nil
}
