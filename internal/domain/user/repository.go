package user

import (
	"context"
	"time"
)

type Repository interface {
	GetUser(ctx context.Context, userID string) (User, bool, error)
	ListUsers(ctx context.Context) ([]User, error)
	InsertUser(ctx context.Context, u User) error

	InsertRegistrationCode(ctx context.Context, code RegistrationCode) error
	GetRegistrationCode(ctx context.Context, code string) (RegistrationCode, bool, error)
	MarkRegistrationCodeUsed(ctx context.Context, code, usedBy string, usedAt time.Time) error
}
