package roster

import (
	"context"
	"time"
)

type Repository interface {
	ListAssignmentsByUser(ctx context.Context, userID string) ([]Assignment, error)
	ListOpenAssignmentsByUser(ctx context.Context, userID string) ([]Assignment, error)
	GetOpenAssignment(ctx context.Context, userID string, slot Slot) (Assignment, bool, error)
	InsertAssignment(ctx context.Context, assignment Assignment) error
	CloseAssignment(ctx context.Context, assignmentID string, removedAt time.Time) error
}
