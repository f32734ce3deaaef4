package postgres

import (
	"database/sql"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/user"
)

type userTableModel struct {
	ID           string    `db:"id"`
	TeamName     string    `db:"team_name"`
	Email        string    `db:"email"`
	RegisteredAt time.Time `db:"registered_at"`
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:           row.ID,
		TeamName:     row.TeamName,
		Email:        row.Email,
		RegisteredAt: row.RegisteredAt,
	}
}

func userToRow(u user.User) userTableModel {
	return userTableModel{
		ID:           u.ID,
		TeamName:     u.TeamName,
		Email:        u.Email,
		RegisteredAt: u.RegisteredAt,
	}
}

type registrationCodeTableModel struct {
	Code     string         `db:"code"`
	IssuedAt time.Time      `db:"issued_at"`
	UsedBy   sql.NullString `db:"used_by"`
	UsedAt   sql.NullTime   `db:"used_at"`
}

func registrationCodeFromRow(row registrationCodeTableModel) user.RegistrationCode {
	code := user.RegistrationCode{
		Code:     row.Code,
		IssuedAt: row.IssuedAt,
		UsedBy:   row.UsedBy.String,
	}
	if row.UsedAt.Valid {
		usedAt := row.UsedAt.Time
		code.UsedAt = &usedAt
	}
	return code
}

func registrationCodeToRow(code user.RegistrationCode) registrationCodeTableModel {
	row := registrationCodeTableModel{
		Code:     code.Code,
		IssuedAt: code.IssuedAt,
	}
	if code.UsedBy != "" {
		row.UsedBy = sql.NullString{String: code.UsedBy, Valid: true}
	}
	if code.UsedAt != nil {
		row.UsedAt = sql.NullTime{Time: *code.UsedAt, Valid: true}
	}
	return row
}
