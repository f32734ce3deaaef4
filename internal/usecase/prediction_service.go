package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/player"
	"github.com/mtkallio/playoff-pool/internal/domain/points"
	"github.com/mtkallio/playoff-pool/internal/domain/prediction"
	"github.com/mtkallio/playoff-pool/internal/domain/user"
)

// u23MaxAge bounds the under-23 category by birth year relative to the
// season.
const u23MaxAge = 23

const finnishBirthCountry = "FIN"

// PredictionScoringService scores category predictions: each pick still
// sitting in its category's live top three earns one point.
type PredictionScoringService struct {
	predictions prediction.Repository
	players     player.Repository
	points      points.Repository
	users       user.Repository
	seasonYear  int
	now         func() time.Time
}

func NewPredictionScoringService(
	predictions prediction.Repository,
	players player.Repository,
	pointsRepo points.Repository,
	users user.Repository,
	seasonYear int,
) *PredictionScoringService {
	return &PredictionScoringService{
		predictions: predictions,
		players:     players,
		points:      pointsRepo,
		users:       users,
		seasonYear:  seasonYear,
		now:         time.Now,
	}
}

type CategoryLeader struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Value    int    `json:"value"`
}

// CategoryLeaders computes the live top three of every category from
// player season stats.
func (s *PredictionScoringService) CategoryLeaders(ctx context.Context) (map[string][]CategoryLeader, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionScoringService.CategoryLeaders")
	defer span.End()

	if s.players == nil {
		return nil, fmt.Errorf("%w: player repository is not configured", ErrDependencyUnavailable)
	}

	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make(map[string][]CategoryLeader, len(prediction.Categories))
	for _, category := range prediction.Categories {
		out[category] = topOfCategory(players, category, s.seasonYear)
	}
	return out, nil
}

// ScoreUser counts the user's picks that are currently leaders and
// overwrites the predictions total.
func (s *PredictionScoringService) ScoreUser(ctx context.Context, userID string) (points.UserPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionScoringService.ScoreUser")
	defer span.End()

	if s.predictions == nil || s.players == nil || s.points == nil {
		return points.UserPoints{}, fmt.Errorf("%w: prediction scoring is not fully configured", ErrDependencyUnavailable)
	}
	if userID == "" {
		return points.UserPoints{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	leaders, err := s.CategoryLeaders(ctx)
	if err != nil {
		return points.UserPoints{}, err
	}

	sheet, _, err := s.predictions.GetSheet(ctx, userID)
	if err != nil {
		return points.UserPoints{}, fmt.Errorf("get prediction sheet user=%s: %w", userID, err)
	}

	total := 0
	for category, picks := range sheet.Picks {
		leaderSet := make(map[string]struct{}, len(leaders[category]))
		for _, leader := range leaders[category] {
			leaderSet[leader.PlayerID] = struct{}{}
		}
		for _, playerID := range picks {
			if _, ok := leaderSet[playerID]; ok {
				total++
			}
		}
	}

	row, err := s.points.UpsertPredictionsTotal(ctx, userID, total, s.now().UTC())
	if err != nil {
		return points.UserPoints{}, fmt.Errorf("upsert predictions total user=%s: %w", userID, err)
	}
	return row, nil
}

// ScoreAllUsers rescores every prediction sheet, isolating failures.
func (s *PredictionScoringService) ScoreAllUsers(ctx context.Context) (BulkScoreReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionScoringService.ScoreAllUsers")
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

// SubmitSheet validates and stores a user's category picks.
func (s *PredictionScoringService) SubmitSheet(ctx context.Context, userID string, picks map[string][]string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionScoringService.SubmitSheet")
	defer span.End()

	if s.predictions == nil {
		return fmt.Errorf("%w: prediction repository is not configured", ErrDependencyUnavailable)
	}
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	cleaned := make(map[string][]string, len(picks))
	for category, ids := range picks {
		if !prediction.ValidCategory(category) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
		}
		if len(ids) > prediction.PicksPerCategory {
			return fmt.Errorf("%w: category %q allows at most %d picks", ErrInvalidInput, category, prediction.PicksPerCategory)
		}
		seen := make(map[string]struct{}, len(ids))
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" {
				return fmt.Errorf("%w: empty player id in category %q", ErrInvalidInput, category)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: duplicate player %q in category %q", ErrInvalidInput, id, category)
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		cleaned[category] = out
	}

	sheet := prediction.Sheet{
		UserID:      userID,
		Picks:       cleaned,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.predictions.UpsertSheet(ctx, sheet); err != nil {
		return fmt.Errorf("upsert prediction sheet user=%s: %w", userID, err)
	}
	return nil
}

func topOfCategory(players []player.Player, category string, seasonYear int) []CategoryLeader {
	leaders := make([]CategoryLeader, 0, len(players))
	for _, p := range players {
		value, ok := categoryValue(p, category, seasonYear)
		if !ok {
			continue
		}
		leaders = append(leaders, CategoryLeader{PlayerID: p.ID, Name: p.Name, Value: value})
	}

	sort.SliceStable(leaders, func(i, j int) bool {
		if leaders[i].Value != leaders[j].Value {
			return leaders[i].Value > leaders[j].Value
		}
		return leaders[i].PlayerID < leaders[j].PlayerID
	})

	if len(leaders) > prediction.PicksPerCategory {
		leaders = leaders[:prediction.PicksPerCategory]
	}
	return leaders
}

// categoryValue returns a player's stat for one category; ok is false
// when the player is outside the category's population.
func categoryValue(p player.Player, category string, seasonYear int) (int, bool) {
	switch category {
	case prediction.CategoryPenaltyMinutes:
		if p.Position.IsGoalie() {
			return 0, false
		}
		return p.Stats.PenaltyMinutes, true
	case prediction.CategoryGoals:
		if p.Position.IsGoalie() {
			return 0, false
		}
		return p.Stats.Goals, true
	case prediction.CategoryDefensePoints:
		if p.Position != player.PositionDefense {
			return 0, false
		}
		return p.Stats.Goals + p.Stats.Assists, true
	case prediction.CategoryU23Points:
		if p.Position.IsGoalie() || p.BirthDate.Year() < seasonYear-u23MaxAge {
			return 0, false
		}
		return p.Stats.Goals + p.Stats.Assists, true
	case prediction.CategoryGoalieWins:
		if !p.Position.IsGoalie() {
			return 0, false
		}
		return p.Stats.Wins, true
	case prediction.CategoryFinnishPoints:
		if p.Position.IsGoalie() || p.BirthCountry != finnishBirthCountry {
			return 0, false
		}
		return p.Stats.Goals + p.Stats.Assists, true
	default:
		return 0, false
	}
}
