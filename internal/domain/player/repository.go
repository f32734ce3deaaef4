package player

import "context"

type Repository interface {
	GetPlayer(ctx context.Context, playerID string) (Player, bool, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	ListPlayersByPosition(ctx context.Context, position Position) ([]Player, error)
	UpsertPlayers(ctx context.Context, players []Player) error
	// UpdatePrice moves the valuation and its watermark in one write.
	UpdatePrice(ctx context.Context, playerID string, price int, lastPricedGameID int64) error
}
