package postgres

import (
	"fmt"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/prediction"
)

type predictionSheetTableModel struct {
	UserID      string    `db:"user_id"`
	Picks       []byte    `db:"picks"`
	SubmittedAt time.Time `db:"submitted_at"`
}

func predictionSheetFromRow(row predictionSheetTableModel) (prediction.Sheet, error) {
	picks := map[string][]string{}
	if len(row.Picks) > 0 {
		if err := pickJSON.Unmarshal(row.Picks, &picks); err != nil {
			return prediction.Sheet{}, fmt.Errorf("decode prediction picks: %w", err)
		}
	}
	return prediction.Sheet{
		UserID:      row.UserID,
		Picks:       picks,
		SubmittedAt: row.SubmittedAt,
	}, nil
}

func predictionSheetToRow(sheet prediction.Sheet) (predictionSheetTableModel, error) {
	raw, err := pickJSON.Marshal(sheet.Picks)
	if err != nil {
		return predictionSheetTableModel{}, fmt.Errorf("encode prediction picks: %w", err)
	}
	return predictionSheetTableModel{
		UserID:      sheet.UserID,
		Picks:       raw,
		SubmittedAt: sheet.SubmittedAt,
	}, nil
}
