package postgres

import (
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/roster"
)

type rosterAssignmentTableModel struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Slot      string     `db:"slot"`
	PlayerID  string     `db:"player_id"`
	AddedAt   time.Time  `db:"added_at"`
	RemovedAt *time.Time `db:"removed_at"`
}

func rosterAssignmentFromRow(row rosterAssignmentTableModel) roster.Assignment {
	a := roster.Assignment{
		ID:       row.ID,
		UserID:   row.UserID,
		Slot:     roster.Slot(row.Slot),
		PlayerID: row.PlayerID,
		AddedAt:  row.AddedAt,
	}
	if row.RemovedAt != nil {
		removed := *row.RemovedAt
		a.RemovedAt = &removed
	}
	return a
}

func rosterAssignmentToRow(a roster.Assignment) rosterAssignmentTableModel {
	row := rosterAssignmentTableModel{
		ID:       a.ID,
		UserID:   a.UserID,
		Slot:     string(a.Slot),
		PlayerID: a.PlayerID,
		AddedAt:  a.AddedAt,
	}
	if a.RemovedAt != nil {
		removed := *a.RemovedAt
		row.RemovedAt = &removed
	}
	return row
}
