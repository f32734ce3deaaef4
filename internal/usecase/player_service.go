package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/mtkallio/playoff-pool/internal/domain/player"
)

// PlayerService is the read side of the player pool for price and stat
// views.
type PlayerService struct {
	players player.Repository
}

func NewPlayerService(players player.Repository) *PlayerService {
	return &PlayerService{players: players}
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if s.players == nil {
		return nil, fmt.Errorf("%w: player repository is not configured", ErrDependencyUnavailable)
	}

	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	if s.players == nil {
		return player.Player{}, fmt.Errorf("%w: player repository is not configured", ErrDependencyUnavailable)
	}

	p, found, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player %s: %w", playerID, err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return p, nil
}
