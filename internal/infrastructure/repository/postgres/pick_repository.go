package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mtkallio/playoff-pool/internal/domain/pick"
	qb "github.com/mtkallio/playoff-pool/internal/platform/querybuilder"
)

const pickSheetsTable = "pick_sheets"

var pickSheetColumns = []string{"user_id", "predictions", "submitted_at"}

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) GetSheet(ctx context.Context, userID string) (pick.Sheet, bool, error) {
	query, args, err := qb.Select(pickSheetColumns...).
		From(pickSheetsTable).
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return pick.Sheet{}, false, fmt.Errorf("build get pick sheet query: %w", err)
	}

	var row pickSheetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Sheet{}, false, nil
		}
		return pick.Sheet{}, false, fmt.Errorf("get pick sheet: %w", err)
	}

	sheet, err := pickSheetFromRow(row)
	if err != nil {
		return pick.Sheet{}, false, err
	}
	return sheet, true, nil
}

func (r *PickRepository) UpsertSheet(ctx context.Context, sheet pick.Sheet) error {
	row, err := pickSheetToRow(sheet)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel(
		pickSheetsTable,
		row,
		"ON CONFLICT (user_id) DO UPDATE SET predictions = EXCLUDED.predictions, submitted_at = EXCLUDED.submitted_at",
	)
	if err != nil {
		return fmt.Errorf("build upsert pick sheet query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert pick sheet: %w", err)
	}
	return nil
}

func (r *PickRepository) ListSheets(ctx context.Context) ([]pick.Sheet, error) {
	query, args, err := qb.Select(pickSheetColumns...).
		From(pickSheetsTable).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pick sheets query: %w", err)
	}

	var rows []pickSheetTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pick sheets: %w", err)
	}

	out := make([]pick.Sheet, 0, len(rows))
	for _, row := range rows {
		sheet, err := pickSheetFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, sheet)
	}
	return out, nil
}
