package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/pick"
	"github.com/mtkallio/playoff-pool/internal/infrastructure/repository/memory"
)

func TestPickService_SubmitSheet_Roundtrip(t *testing.T) {
	picks := memory.NewPickRepository()
	service := NewPickService(picks)
	now := time.Date(2026, 4, 5, 18, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	predictions := map[string]pick.Prediction{
		"W1":  {Winner: "COL", Games: 5},
		"cup": {Winner: "COL", Games: 7},
	}
	if err := service.SubmitSheet(t.Context(), "user-1", predictions); err != nil {
		t.Fatalf("submit sheet failed: %v", err)
	}

	sheet, err := service.Sheet(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get sheet failed: %v", err)
	}
	if !sheet.SubmittedAt.Equal(now) {
		t.Fatalf("expected submitted at %v, got %v", now, sheet.SubmittedAt)
	}
	if len(sheet.Predictions) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(sheet.Predictions))
	}
	if got := sheet.Predictions["W1"]; got.Winner != "COL" || got.Games != 5 {
		t.Fatalf("unexpected W1 prediction: %+v", got)
	}

	// Resubmission replaces the whole sheet.
	if err := service.SubmitSheet(t.Context(), "user-1", map[string]pick.Prediction{
		"E1": {Winner: "FLA", Games: 4},
	}); err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	sheet, err = service.Sheet(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get sheet failed: %v", err)
	}
	if len(sheet.Predictions) != 1 {
		t.Fatalf("expected resubmission to replace the sheet, got %+v", sheet.Predictions)
	}
	if _, stale := sheet.Predictions["W1"]; stale {
		t.Fatalf("stale W1 prediction survived resubmission")
	}
}

func TestPickService_SubmitSheet_Validation(t *testing.T) {
	service := NewPickService(memory.NewPickRepository())

	cases := []struct {
		name        string
		userID      string
		predictions map[string]pick.Prediction
	}{
		{name: "missing user", userID: "", predictions: map[string]pick.Prediction{"W1": {Winner: "COL", Games: 5}}},
		{name: "empty sheet", userID: "user-1", predictions: nil},
		{name: "unknown code", userID: "user-1", predictions: map[string]pick.Prediction{"X9": {Winner: "COL", Games: 5}}},
		{name: "missing winner", userID: "user-1", predictions: map[string]pick.Prediction{"W1": {Games: 5}}},
		{name: "games too low", userID: "user-1", predictions: map[string]pick.Prediction{"W1": {Winner: "COL", Games: 3}}},
		{name: "games too high", userID: "user-1", predictions: map[string]pick.Prediction{"W1": {Winner: "COL", Games: 8}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := service.SubmitSheet(t.Context(), tc.userID, tc.predictions); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPickService_Sheet_NotFound(t *testing.T) {
	service := NewPickService(memory.NewPickRepository())

	_, err := service.Sheet(t.Context(), "user-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
