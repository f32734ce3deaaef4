package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mtkallio/playoff-pool/internal/domain/prediction"
	qb "github.com/mtkallio/playoff-pool/internal/platform/querybuilder"
)

const predictionSheetsTable = "prediction_sheets"

var predictionSheetColumns = []string{"user_id", "picks", "submitted_at"}

const predictionSheetUpsertSuffix = "ON CONFLICT (user_id) DO UPDATE SET " +
	"picks = EXCLUDED.picks, submitted_at = EXCLUDED.submitted_at"

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) GetSheet(ctx context.Context, userID string) (prediction.Sheet, bool, error) {
	query, args, err := qb.Select(predictionSheetColumns...).
		From(predictionSheetsTable).
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return prediction.Sheet{}, false, fmt.Errorf("build get prediction sheet query: %w", err)
	}

	var row predictionSheetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Sheet{}, false, nil
		}
		return prediction.Sheet{}, false, fmt.Errorf("get prediction sheet: %w", err)
	}

	sheet, err := predictionSheetFromRow(row)
	if err != nil {
		return prediction.Sheet{}, false, err
	}
	return sheet, true, nil
}

func (r *PredictionRepository) UpsertSheet(ctx context.Context, sheet prediction.Sheet) error {
	row, err := predictionSheetToRow(sheet)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel(predictionSheetsTable, row, predictionSheetUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert prediction sheet query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction sheet: %w", err)
	}
	return nil
}

func (r *PredictionRepository) ListSheets(ctx context.Context) ([]prediction.Sheet, error) {
	query, args, err := qb.Select(predictionSheetColumns...).
		From(predictionSheetsTable).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list prediction sheets query: %w", err)
	}

	var rows []predictionSheetTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list prediction sheets: %w", err)
	}

	out := make([]prediction.Sheet, 0, len(rows))
	for _, row := range rows {
		sheet, err := predictionSheetFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, sheet)
	}
	return out, nil
}
