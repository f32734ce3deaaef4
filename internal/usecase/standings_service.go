package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/mtkallio/playoff-pool/internal/domain/points"
	"github.com/mtkallio/playoff-pool/internal/domain/user"
)

// StandingsService builds the pool leaderboard from stored point
// records.
type StandingsService struct {
	points points.Repository
	users  user.Repository
}

func NewStandingsService(pointsRepo points.Repository, users user.Repository) *StandingsService {
	return &StandingsService{
		points: pointsRepo,
		users:  users,
	}
}

type StandingsRow struct {
	Rank               int    `json:"rank"`
	UserID             string `json:"user_id"`
	TeamName           string `json:"team_name"`
	BracketTotal       int    `json:"bracket_total"`
	LineupTotal        int    `json:"lineup_total"`
	PredictionsTotal   int    `json:"predictions_total"`
	Total              int    `json:"total"`
	CorrectSeriesCount int    `json:"correct_series_count"`
}

// Standings ranks every registered user, including those not yet scored.
// Ties on (total, correct series) share a rank and the following rank
// skips the tied positions.
func (s *StandingsService) Standings(ctx context.Context) ([]StandingsRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	if s.points == nil || s.users == nil {
		return nil, fmt.Errorf("%w: standings are not fully configured", ErrDependencyUnavailable)
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	records, err := s.points.ListUserPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("list user points: %w", err)
	}
	recordByUser := make(map[string]points.UserPoints, len(records))
	for _, record := range records {
		recordByUser[record.UserID] = record
	}

	rows := make([]StandingsRow, 0, len(users))
	for _, u := range users {
		record := recordByUser[u.ID]
		rows = append(rows, StandingsRow{
			UserID:             u.ID,
			TeamName:           u.TeamName,
			BracketTotal:       record.BracketTotal,
			LineupTotal:        record.LineupTotal,
			PredictionsTotal:   record.PredictionsTotal,
			Total:              record.Total,
			CorrectSeriesCount: record.CorrectSeriesCount(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		if rows[i].CorrectSeriesCount != rows[j].CorrectSeriesCount {
			return rows[i].CorrectSeriesCount > rows[j].CorrectSeriesCount
		}
		return rows[i].TeamName < rows[j].TeamName
	})

	// Competition ranking: equal (total, correct series) tuples share a
	// rank, the next distinct tuple takes its 1-based position.
	for i := range rows {
		if i == 0 {
			rows[i].Rank = 1
			continue
		}
		if rows[i].Total == rows[i-1].Total && rows[i].CorrectSeriesCount == rows[i-1].CorrectSeriesCount {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}

	return rows, nil
}
