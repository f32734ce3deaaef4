package httpapi

import (
	"context"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/bracket"
	"github.com/mtkallio/playoff-pool/internal/domain/pick"
	"github.com/mtkallio/playoff-pool/internal/domain/player"
	"github.com/mtkallio/playoff-pool/internal/domain/prediction"
	"github.com/mtkallio/playoff-pool/internal/domain/user"
	"github.com/mtkallio/playoff-pool/internal/usecase"
)

type saveMatchupsRequest struct {
	Matchups []initialMatchupRecord `json:"matchups" validate:"required,min=1,dive"`
}

type initialMatchupRecord struct {
	Code  string `json:"code" validate:"required"`
	Team1 string `json:"team1" validate:"required"`
	Team2 string `json:"team2" validate:"required"`
}

type submitResultsRequest struct {
	Round   int                  `json:"round" validate:"required,gte=1,lte=4"`
	Results []seriesResultRecord `json:"results" validate:"required,min=1,dive"`
}

type seriesResultRecord struct {
	Code   string `json:"code" validate:"required"`
	Winner string `json:"winner" validate:"required"`
	Games  int    `json:"games" validate:"required"`
}

type submitPickSheetRequest struct {
	Predictions map[string]pickPredictionRecord `json:"predictions" validate:"required,min=1"`
}

type pickPredictionRecord struct {
	Winner string `json:"winner" validate:"required"`
	Games  int    `json:"games" validate:"required"`
}

type submitPredictionSheetRequest struct {
	Picks map[string][]string `json:"picks" validate:"required,min=1"`
}

type assignPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type registerUserRequest struct {
	Code     string `json:"code" validate:"required"`
	TeamName string `json:"team_name" validate:"required,max=60"`
	Email    string `json:"email" validate:"required,email"`
}

type issueRegistrationCodesRequest struct {
	Count int `json:"count" validate:"required,gte=1,lte=100"`
}

type matchupDTO struct {
	Round      int    `json:"round"`
	Conference string `json:"conference"`
	Code       string `json:"code"`
	Team1      string `json:"team1"`
	Team2      string `json:"team2"`
}

type seriesResultDTO struct {
	Code   string `json:"code"`
	Winner string `json:"winner"`
	Games  int    `json:"games"`
}

type bracketOverviewDTO struct {
	State    string            `json:"state"`
	Matchups []matchupDTO      `json:"matchups"`
	Results  []seriesResultDTO `json:"results"`
}

type pickSheetDTO struct {
	UserID      string                       `json:"user_id"`
	Predictions map[string]pickPredictionDTO `json:"predictions"`
	SubmittedAt string                       `json:"submitted_at"`
}

type pickPredictionDTO struct {
	Winner string `json:"winner"`
	Games  int    `json:"games"`
}

type predictionSheetDTO struct {
	UserID      string              `json:"user_id"`
	Picks       map[string][]string `json:"picks"`
	SubmittedAt string              `json:"submitted_at"`
}

type playerDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Team           string  `json:"team"`
	Position       string  `json:"position"`
	BirthCountry   string  `json:"birthCountry"`
	GamesPlayed    int     `json:"gamesPlayed"`
	Goals          int     `json:"goals"`
	Assists        int     `json:"assists"`
	PlusMinus      int     `json:"plusMinus"`
	PenaltyMinutes int     `json:"penaltyMinutes"`
	Wins           int     `json:"wins"`
	Shutouts       int     `json:"shutouts"`
	SavePct        float64 `json:"savePct"`
	Price          int     `json:"price"`
}

type userDTO struct {
	ID           string `json:"id"`
	TeamName     string `json:"team_name"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"`
}

func bracketOverviewToDTO(ctx context.Context, overview usecase.BracketOverview) bracketOverviewDTO {
	ctx, span := startSpan(ctx, "httpapi.bracketOverviewToDTO")
	defer span.End()

	matchups := make([]matchupDTO, 0, len(overview.Matchups))
	for _, m := range overview.Matchups {
		matchups = append(matchups, matchupToDTO(ctx, m))
	}
	results := make([]seriesResultDTO, 0, len(overview.Results))
	for _, res := range overview.Results {
		results = append(results, seriesResultDTO{
			Code:   res.Code,
			Winner: res.Winner,
			Games:  res.Games,
		})
	}

	return bracketOverviewDTO{
		State:    string(overview.State),
		Matchups: matchups,
		Results:  results,
	}
}

func matchupToDTO(ctx context.Context, m bracket.Matchup) matchupDTO {
	ctx, span := startSpan(ctx, "httpapi.matchupToDTO")
	defer span.End()

	return matchupDTO{
		Round:      m.Round,
		Conference: m.Conference,
		Code:       m.Code,
		Team1:      m.Team1,
		Team2:      m.Team2,
	}
}

func pickSheetToDTO(ctx context.Context, sheet pick.Sheet) pickSheetDTO {
	ctx, span := startSpan(ctx, "httpapi.pickSheetToDTO")
	defer span.End()

	predictions := make(map[string]pickPredictionDTO, len(sheet.Predictions))
	for code, p := range sheet.Predictions {
		predictions[code] = pickPredictionDTO{Winner: p.Winner, Games: p.Games}
	}

	return pickSheetDTO{
		UserID:      sheet.UserID,
		Predictions: predictions,
		SubmittedAt: sheet.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

func predictionSheetToDTO(ctx context.Context, sheet prediction.Sheet) predictionSheetDTO {
	ctx, span := startSpan(ctx, "httpapi.predictionSheetToDTO")
	defer span.End()

	picks := make(map[string][]string, len(sheet.Picks))
	for category, ids := range sheet.Picks {
		picks[category] = append([]string(nil), ids...)
	}

	return predictionSheetDTO{
		UserID:      sheet.UserID,
		Picks:       picks,
		SubmittedAt: sheet.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:             v.ID,
		Name:           v.Name,
		Team:           v.Team,
		Position:       string(v.Position),
		BirthCountry:   v.BirthCountry,
		GamesPlayed:    v.Stats.GamesPlayed,
		Goals:          v.Stats.Goals,
		Assists:        v.Stats.Assists,
		PlusMinus:      v.Stats.PlusMinus,
		PenaltyMinutes: v.Stats.PenaltyMinutes,
		Wins:           v.Stats.Wins,
		Shutouts:       v.Stats.Shutouts,
		SavePct:        v.Stats.SavePct,
		Price:          v.Price,
	}
}

func userToDTO(ctx context.Context, v user.User) userDTO {
	ctx, span := startSpan(ctx, "httpapi.userToDTO")
	defer span.End()

	return userDTO{
		ID:           v.ID,
		TeamName:     v.TeamName,
		Email:        v.Email,
		RegisteredAt: v.RegisteredAt.UTC().Format(time.RFC3339),
	}
}
