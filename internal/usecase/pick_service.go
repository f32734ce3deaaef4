package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/bracket"
	"github.com/mtkallio/playoff-pool/internal/domain/pick"
)

// PickService stores users' bracket pick sheets. A sheet is replaced
// wholesale on every submission.
type PickService struct {
	picks pick.Repository
	now   func() time.Time
}

func NewPickService(picks pick.Repository) *PickService {
	return &PickService{
		picks: picks,
		now:   time.Now,
	}
}

// SubmitSheet validates and replaces a user's series predictions.
func (s *PickService) SubmitSheet(ctx context.Context, userID string, predictions map[string]pick.Prediction) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SubmitSheet")
	defer span.End()

	if s.picks == nil {
		return fmt.Errorf("%w: pick repository is not configured", ErrDependencyUnavailable)
	}
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(predictions) == 0 {
		return fmt.Errorf("%w: predictions are required", ErrInvalidInput)
	}

	cleaned := make(map[string]pick.Prediction, len(predictions))
	for code, p := range predictions {
		code = strings.TrimSpace(code)
		if _, ok := bracket.RoundOfCode(code); !ok {
			return fmt.Errorf("%w: unknown matchup code %q", ErrInvalidInput, code)
		}
		winner := strings.TrimSpace(p.Winner)
		if winner == "" {
			return fmt.Errorf("%w: prediction for %q needs a winner", ErrInvalidInput, code)
		}
		if !bracket.ValidGames(p.Games) {
			return fmt.Errorf("%w: prediction for %q needs games between %d and %d", ErrInvalidInput, code, bracket.GamesMin, bracket.GamesMax)
		}
		cleaned[code] = pick.Prediction{Winner: winner, Games: p.Games}
	}

	sheet := pick.Sheet{
		UserID:      userID,
		Predictions: cleaned,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.picks.UpsertSheet(ctx, sheet); err != nil {
		return fmt.Errorf("upsert pick sheet user=%s: %w", userID, err)
	}
	return nil
}

// Sheet returns a user's current pick sheet.
func (s *PickService) Sheet(ctx context.Context, userID string) (pick.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Sheet")
	defer span.End()

	if s.picks == nil {
		return pick.Sheet{}, fmt.Errorf("%w: pick repository is not configured", ErrDependencyUnavailable)
	}
	if userID == "" {
		return pick.Sheet{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	sheet, found, err := s.picks.GetSheet(ctx, userID)
	if err != nil {
		return pick.Sheet{}, fmt.Errorf("get pick sheet user=%s: %w", userID, err)
	}
	if !found {
		return pick.Sheet{}, fmt.Errorf("%w: pick sheet for user %s", ErrNotFound, userID)
	}
	return sheet, nil
}
