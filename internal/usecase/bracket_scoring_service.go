package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mtkallio/playoff-pool/internal/domain/bracket"
	"github.com/mtkallio/playoff-pool/internal/domain/pick"
	"github.com/mtkallio/playoff-pool/internal/domain/points"
	"github.com/mtkallio/playoff-pool/internal/domain/user"
)

// BracketScoringService turns series picks into round-weighted bracket
// points. A correct winner earns the round weight, a correct game count
// on top doubles it.
type BracketScoringService struct {
	brackets bracket.Repository
	picks    pick.Repository
	points   points.Repository
	users    user.Repository
	now      func() time.Time
}

func NewBracketScoringService(
	brackets bracket.Repository,
	picks pick.Repository,
	pointsRepo points.Repository,
	users user.Repository,
) *BracketScoringService {
	return &BracketScoringService{
		brackets: brackets,
		picks:    picks,
		points:   pointsRepo,
		users:    users,
		now:      time.Now,
	}
}

// ScoreUser recomputes one user's bracket fields from scratch and
// overwrites them. Rerunning with unchanged picks and results writes the
// same values again.
func (s *BracketScoringService) ScoreUser(ctx context.Context, userID string) (points.UserPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketScoringService.ScoreUser")
	defer span.End()

	if s.brackets == nil || s.picks == nil || s.points == nil {
		return points.UserPoints{}, fmt.Errorf("%w: bracket scoring is not fully configured", ErrDependencyUnavailable)
	}
	if userID == "" {
		return points.UserPoints{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	results, err := s.brackets.ListResults(ctx)
	if err != nil {
		return points.UserPoints{}, fmt.Errorf("list results: %w", err)
	}
	resultByCode := make(map[string]bracket.Result, len(results))
	for _, r := range results {
		resultByCode[r.Code] = r
	}

	sheet, _, err := s.picks.GetSheet(ctx, userID)
	if err != nil {
		return points.UserPoints{}, fmt.Errorf("get pick sheet user=%s: %w", userID, err)
	}

	correct := make(map[int]int, len(bracket.Rounds))
	subtotal := make(map[int]int, len(bracket.Rounds))
	for code, prediction := range sheet.Predictions {
		round, ok := bracket.RoundOfCode(code)
		if !ok {
			continue
		}
		result, ok := resultByCode[code]
		if !ok {
			continue
		}
		if result.Winner != prediction.Winner {
			continue
		}

		weight, _ := bracket.WeightOfCode(code)
		correct[round]++
		subtotal[round] += weight
		if result.Games == prediction.Games {
			subtotal[round] += weight
		}
	}

	score := points.BracketScore{
		Round1Correct: correct[bracket.RoundFirst],
		Round1Points:  subtotal[bracket.RoundFirst],
		Round2Correct: correct[bracket.RoundSemifinals],
		Round2Points:  subtotal[bracket.RoundSemifinals],
		Round3Correct: correct[bracket.RoundConfFinals],
		Round3Points:  subtotal[bracket.RoundConfFinals],
		FinalCorrect:  correct[bracket.RoundFinal],
		FinalPoints:   subtotal[bracket.RoundFinal],
	}

	// The scoped upsert writes only the bracket-owned fields, so a lineup
	// or prediction rescore landing at the same instant keeps its total.
	row, err := s.points.UpsertBracketScore(ctx, userID, score, s.now().UTC())
	if err != nil {
		return points.UserPoints{}, fmt.Errorf("upsert bracket score user=%s: %w", userID, err)
	}
	return row, nil
}

type UserFailure struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type BulkScoreReport struct {
	UserCount   int           `json:"user_count"`
	ScoredCount int           `json:"scored_count"`
	FailedCount int           `json:"failed_count"`
	Failures    []UserFailure `json:"failures,omitempty"`
}

// ScoreAllUsers rescores everyone; one user's failure never blocks the
// rest of the batch.
func (s *BracketScoringService) ScoreAllUsers(ctx context.Context) (BulkScoreReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketScoringService.ScoreAllUsers")
	defer span.End()

	if s.users == nil {
		return BulkScoreReport{}, fmt.Errorf("%w: user repository is not configured", ErrDependencyUnavailable)
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return BulkScoreReport{}, fmt.Errorf("list users: %w", err)
	}

	return forEachUser(ctx, users, func(ctx context.Context, userID string) error {
		_, err := s.ScoreUser(ctx, userID)
		return err
	}), nil
}

const bulkScoreMaxGoroutines = 4

// forEachUser fans scoring work out over a bounded goroutine pool and
// collects per-user failures without aborting the batch.
func forEachUser(ctx context.Context, users []user.User, fn func(ctx context.Context, userID string) error) BulkScoreReport {
	report := BulkScoreReport{UserCount: len(users)}
	if len(users) == 0 {
		return report
	}

	var mu sync.Mutex
	workers := pool.New().WithMaxGoroutines(bulkScoreMaxGoroutines)
	for _, u := range users {
		userID := u.ID
		workers.Go(func() {
			err := fn(ctx, userID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.FailedCount++
				report.Failures = append(report.Failures, UserFailure{UserID: userID, Message: err.Error()})
				return
			}
			report.ScoredCount++
		})
	}
	workers.Wait()

	sort.SliceStable(report.Failures, func(i, j int) bool {
		return report.Failures[i].UserID < report.Failures[j].UserID
	})
	return report
}
