package gamelog

import "context"

type Repository interface {
	// UpsertEntries ingests feed rows keyed by (game, player); replays
	// overwrite rather than duplicate.
	UpsertEntries(ctx context.Context, entries []Entry) error
	ListAll(ctx context.Context) ([]Entry, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Entry, error)
	// ListByPlayerAfterGame returns the player's entries with a game id
	// strictly greater than afterGameID, in game-id order.
	ListByPlayerAfterGame(ctx context.Context, playerID string, afterGameID int64) ([]Entry, error)
}
