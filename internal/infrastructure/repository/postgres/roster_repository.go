package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mtkallio/playoff-pool/internal/domain/roster"
	qb "github.com/mtkallio/playoff-pool/internal/platform/querybuilder"
)

const rosterAssignmentsTable = "roster_assignments"

var rosterAssignmentColumns = []string{"id", "user_id", "slot", "player_id", "added_at", "removed_at"}

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListAssignmentsByUser(ctx context.Context, userID string) ([]roster.Assignment, error) {
	query, args, err := qb.Select(rosterAssignmentColumns...).
		From(rosterAssignmentsTable).
		Where(qb.Eq("user_id", userID)).
		OrderBy("added_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list assignments query: %w", err)
	}

	var rows []rosterAssignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	out := make([]roster.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterAssignmentFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) ListOpenAssignmentsByUser(ctx context.Context, userID string) ([]roster.Assignment, error) {
	query, args, err := qb.Select(rosterAssignmentColumns...).
		From(rosterAssignmentsTable).
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("removed_at"),
		).
		OrderBy("slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list open assignments query: %w", err)
	}

	var rows []rosterAssignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list open assignments: %w", err)
	}

	out := make([]roster.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterAssignmentFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) GetOpenAssignment(ctx context.Context, userID string, slot roster.Slot) (roster.Assignment, bool, error) {
	query, args, err := qb.Select(rosterAssignmentColumns...).
		From(rosterAssignmentsTable).
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("slot", string(slot)),
			qb.IsNull("removed_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return roster.Assignment{}, false, fmt.Errorf("build get open assignment query: %w", err)
	}

	var row rosterAssignmentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Assignment{}, false, nil
		}
		return roster.Assignment{}, false, fmt.Errorf("get open assignment: %w", err)
	}
	return rosterAssignmentFromRow(row), true, nil
}

func (r *RosterRepository) InsertAssignment(ctx context.Context, assignment roster.Assignment) error {
	query, args, err := qb.InsertModel(rosterAssignmentsTable, rosterAssignmentToRow(assignment), "")
	if err != nil {
		return fmt.Errorf("build insert assignment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (r *RosterRepository) CloseAssignment(ctx context.Context, assignmentID string, removedAt time.Time) error {
	query, args, err := qb.Update(rosterAssignmentsTable).
		Set("removed_at", removedAt).
		Where(
			qb.Eq("id", assignmentID),
			qb.IsNull("removed_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build close assignment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("close assignment: %w", err)
	}
	return nil
}
