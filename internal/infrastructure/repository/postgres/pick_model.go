package postgres

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mtkallio/playoff-pool/internal/domain/pick"
)

var pickJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type pickSheetTableModel struct {
	UserID      string    `db:"user_id"`
	Predictions []byte    `db:"predictions"`
	SubmittedAt time.Time `db:"submitted_at"`
}

func pickSheetFromRow(row pickSheetTableModel) (pick.Sheet, error) {
	predictions := make(map[string]pick.Prediction)
	if len(row.Predictions) > 0 {
		if err := pickJSON.Unmarshal(row.Predictions, &predictions); err != nil {
			return pick.Sheet{}, fmt.Errorf("decode pick sheet user=%s: %w", row.UserID, err)
		}
	}
	return pick.Sheet{
		UserID:      row.UserID,
		Predictions: predictions,
		SubmittedAt: row.SubmittedAt,
	}, nil
}

func pickSheetToRow(sheet pick.Sheet) (pickSheetTableModel, error) {
	payload, err := pickJSON.Marshal(sheet.Predictions)
	if err != nil {
		return pickSheetTableModel{}, fmt.Errorf("encode pick sheet user=%s: %w", sheet.UserID, err)
	}
	return pickSheetTableModel{
		UserID:      sheet.UserID,
		Predictions: payload,
		SubmittedAt: sheet.SubmittedAt,
	}, nil
}
