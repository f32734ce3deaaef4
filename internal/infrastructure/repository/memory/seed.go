package memory

import (
	"context"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/bracket"
	"github.com/mtkallio/playoff-pool/internal/domain/player"
	"github.com/mtkallio/playoff-pool/internal/domain/user"
)

// Stores bundles the in-memory repositories for default wiring.
type Stores struct {
	Brackets    *BracketRepository
	Picks       *PickRepository
	Rosters     *RosterRepository
	GameLogs    *GameLogRepository
	Players     *PlayerRepository
	Points      *PointsRepository
	Predictions *PredictionRepository
	Users       *UserRepository
}

func NewStores() *Stores {
	return &Stores{
		Brackets:    NewBracketRepository(),
		Picks:       NewPickRepository(),
		Rosters:     NewRosterRepository(),
		GameLogs:    NewGameLogRepository(),
		Players:     NewPlayerRepository(),
		Points:      NewPointsRepository(),
		Predictions: NewPredictionRepository(),
		Users:       NewUserRepository(),
	}
}

// SeedDemoData loads a small first-round bracket, a few priced players
// and a demo registration code so a fresh process has something to serve.
func (s *Stores) SeedDemoData(ctx context.Context) error {
	firstRound := []bracket.Matchup{
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceWest, Code: "W1", Team1: "COL", Team2: "STL"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceWest, Code: "W2", Team1: "DAL", Team2: "VGK"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceWest, Code: "W3", Team1: "WPG", Team2: "MIN"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceWest, Code: "W4", Team1: "EDM", Team2: "LAK"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceEast, Code: "E1", Team1: "FLA", Team2: "TBL"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceEast, Code: "E2", Team1: "BOS", Team2: "TOR"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceEast, Code: "E3", Team1: "NYR", Team2: "WSH"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceEast, Code: "E4", Team1: "CAR", Team2: "NYI"},
	}
	if err := s.Brackets.ReplaceRoundMatchups(ctx, bracket.RoundFirst, firstRound); err != nil {
		return err
	}

	players := []player.Player{
		{
			ID: "8478402", Name: "Connor McDavid", Team: "EDM", Position: player.PositionCenter,
			BirthDate: time.Date(1997, 1, 13, 0, 0, 0, 0, time.UTC), BirthCountry: "CAN",
			Stats: player.SeasonStats{GamesPlayed: 76, Goals: 32, Assists: 68, PlusMinus: 21, PenaltyMinutes: 30},
			Price: 700_000,
		},
		{
			ID: "8477934", Name: "Leon Draisaitl", Team: "EDM", Position: player.PositionLeftWing,
			BirthDate: time.Date(1995, 10, 27, 0, 0, 0, 0, time.UTC), BirthCountry: "DEU",
			Stats: player.SeasonStats{GamesPlayed: 71, Goals: 41, Assists: 43, PlusMinus: 18, PenaltyMinutes: 24},
			Price: 640_000,
		},
		{
			ID: "8480069", Name: "Cale Makar", Team: "COL", Position: player.PositionDefense,
			BirthDate: time.Date(1998, 10, 30, 0, 0, 0, 0, time.UTC), BirthCountry: "CAN",
			Stats: player.SeasonStats{GamesPlayed: 77, Goals: 21, Assists: 49, PlusMinus: 25, PenaltyMinutes: 26},
			Price: 610_000,
		},
		{
			ID: "8480829", Name: "Miro Heiskanen", Team: "DAL", Position: player.PositionDefense,
			BirthDate: time.Date(1999, 7, 18, 0, 0, 0, 0, time.UTC), BirthCountry: "FIN",
			Stats: player.SeasonStats{GamesPlayed: 72, Goals: 9, Assists: 38, PlusMinus: 15, PenaltyMinutes: 14},
			Price: 460_000,
		},
		{
			ID: "8479979", Name: "Mikko Rantanen", Team: "DAL", Position: player.PositionRightWing,
			BirthDate: time.Date(1996, 10, 29, 0, 0, 0, 0, time.UTC), BirthCountry: "FIN",
			Stats: player.SeasonStats{GamesPlayed: 75, Goals: 34, Assists: 41, PlusMinus: 12, PenaltyMinutes: 38},
			Price: 560_000,
		},
		{
			ID: "8479973", Name: "Juuse Saros", Team: "NSH", Position: player.PositionGoalie,
			BirthDate: time.Date(1995, 4, 19, 0, 0, 0, 0, time.UTC), BirthCountry: "FIN",
			Stats: player.SeasonStats{GamesPlayed: 58, Wins: 31, Shutouts: 4, SavePct: 0.915},
			Price: 520_000,
		},
	}
	if err := s.Players.UpsertPlayers(ctx, players); err != nil {
		return err
	}

	return s.Users.InsertRegistrationCode(ctx, user.RegistrationCode{
		Code:     "DEMO-POOL",
		IssuedAt: time.Now().UTC(),
	})
}
