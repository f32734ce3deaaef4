package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/gamelog"
	"github.com/mtkallio/playoff-pool/internal/domain/player"
	"github.com/mtkallio/playoff-pool/internal/domain/points"
	"github.com/mtkallio/playoff-pool/internal/domain/roster"
	"github.com/mtkallio/playoff-pool/internal/domain/user"
)

// LineupScoringService attributes per-game performance to users through
// their roster assignment history. A game only counts when the user held
// the player from before puck drop until at least two hours after it.
type LineupScoringService struct {
	rosters  roster.Repository
	gamelogs gamelog.Repository
	players  player.Repository
	points   points.Repository
	users    user.Repository
	now      func() time.Time
}

func NewLineupScoringService(
	rosters roster.Repository,
	gamelogs gamelog.Repository,
	players player.Repository,
	pointsRepo points.Repository,
	users user.Repository,
) *LineupScoringService {
	return &LineupScoringService{
		rosters:  rosters,
		gamelogs: gamelogs,
		players:  players,
		points:   pointsRepo,
		users:    users,
		now:      time.Now,
	}
}

// ScoreUser replays every game log against the user's assignment history
// and overwrites the lineup total.
func (s *LineupScoringService) ScoreUser(ctx context.Context, userID string) (points.UserPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupScoringService.ScoreUser")
	defer span.End()

	if s.rosters == nil || s.gamelogs == nil || s.players == nil || s.points == nil {
		return points.UserPoints{}, fmt.Errorf("%w: lineup scoring is not fully configured", ErrDependencyUnavailable)
	}
	if userID == "" {
		return points.UserPoints{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	assignments, err := s.rosters.ListAssignmentsByUser(ctx, userID)
	if err != nil {
		return points.UserPoints{}, fmt.Errorf("list assignments user=%s: %w", userID, err)
	}
	intervalsByPlayer := make(map[string][]roster.Assignment, len(assignments))
	for _, a := range assignments {
		intervalsByPlayer[a.PlayerID] = append(intervalsByPlayer[a.PlayerID], a)
	}

	logs, err := s.gamelogs.ListAll(ctx)
	if err != nil {
		return points.UserPoints{}, fmt.Errorf("list game logs: %w", err)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].GameStart.Equal(logs[j].GameStart) {
			return logs[i].GameStart.Before(logs[j].GameStart)
		}
		return logs[i].GameID < logs[j].GameID
	})

	positions, err := s.positionsByPlayer(ctx)
	if err != nil {
		return points.UserPoints{}, err
	}

	total := 0
	for _, entry := range logs {
		intervals, ok := intervalsByPlayer[entry.PlayerID]
		if !ok {
			continue
		}
		if !anyIntervalCovers(intervals, entry.GameStart) {
			continue
		}
		total += lineupPointsForEntry(positions[entry.PlayerID], entry)
	}

	row, err := s.points.UpsertLineupTotal(ctx, userID, total, s.now().UTC())
	if err != nil {
		return points.UserPoints{}, fmt.Errorf("upsert lineup total user=%s: %w", userID, err)
	}
	return row, nil
}

// ScoreAllUsers rescores every lineup, isolating per-user failures.
func (s *LineupScoringService) ScoreAllUsers(ctx context.Context) (BulkScoreReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupScoringService.ScoreAllUsers")
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

func (s *LineupScoringService) positionsByPlayer(ctx context.Context) (map[string]player.Position, error) {
	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	out := make(map[string]player.Position, len(players))
	for _, p := range players {
		out[p.ID] = p.Position
	}
	return out, nil
}

func anyIntervalCovers(intervals []roster.Assignment, gameStart time.Time) bool {
	for _, interval := range intervals {
		if interval.CoversGame(gameStart) {
			return true
		}
	}
	return false
}

func lineupPointsForEntry(position player.Position, entry gamelog.Entry) int {
	switch {
	case position.IsForward():
		return 2*entry.Goals + entry.Assists + entry.PlusMinus
	case position == player.PositionDefense:
		return 3*entry.Goals + entry.Assists + entry.PlusMinus
	case position.IsGoalie():
		pts := 1
		if entry.Win {
			pts++
		}
		if entry.Shutout {
			pts++
		}
		if entry.Shots > 0 && entry.SavePct() > goalieSaveBonusThreshold {
			pts++
		}
		return pts
	default:
		return 0
	}
}
