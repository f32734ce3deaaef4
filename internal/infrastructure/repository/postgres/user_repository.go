package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mtkallio/playoff-pool/internal/domain/user"
	qb "github.com/mtkallio/playoff-pool/internal/platform/querybuilder"
)

const (
	usersTable             = "users"
	registrationCodesTable = "registration_codes"
)

var (
	userColumns             = []string{"id", "team_name", "email", "registered_at"}
	registrationCodeColumns = []string{"code", "issued_at", "used_by", "used_at"}
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetUser(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTable).
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTable).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out, nil
}

func (r *UserRepository) InsertUser(ctx context.Context, u user.User) error {
	query, args, err := qb.InsertModel(usersTable, userToRow(u), "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) InsertRegistrationCode(ctx context.Context, code user.RegistrationCode) error {
	query, args, err := qb.InsertModel(registrationCodesTable, registrationCodeToRow(code), "")
	if err != nil {
		return fmt.Errorf("build insert registration code query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert registration code: %w", err)
	}
	return nil
}

func (r *UserRepository) GetRegistrationCode(ctx context.Context, code string) (user.RegistrationCode, bool, error) {
	query, args, err := qb.Select(registrationCodeColumns...).
		From(registrationCodesTable).
		Where(qb.Eq("code", code)).
		ToSQL()
	if err != nil {
		return user.RegistrationCode{}, false, fmt.Errorf("build get registration code query: %w", err)
	}

	var row registrationCodeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.RegistrationCode{}, false, nil
		}
		return user.RegistrationCode{}, false, fmt.Errorf("get registration code: %w", err)
	}
	return registrationCodeFromRow(row), true, nil
}

func (r *UserRepository) MarkRegistrationCodeUsed(ctx context.Context, code, usedBy string, usedAt time.Time) error {
	query, args, err := qb.Update(registrationCodesTable).
		Set("used_by", usedBy).
		Set("used_at", usedAt).
		Where(
			qb.Eq("code", code),
			qb.IsNull("used_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark registration code used query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark registration code used: %w", err)
	}
	return nil
}
