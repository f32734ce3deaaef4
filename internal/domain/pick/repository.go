package pick

import "context"

type Repository interface {
	GetSheet(ctx context.Context, userID string) (Sheet, bool, error)
	UpsertSheet(ctx context.Context, sheet Sheet) error
	ListSheets(ctx context.Context) ([]Sheet, error)
}
