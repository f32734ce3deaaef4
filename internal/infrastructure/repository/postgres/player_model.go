package postgres

import (
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/player"
)

type playerTableModel struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	Team             string    `db:"team"`
	Position         string    `db:"position"`
	BirthDate        time.Time `db:"birth_date"`
	BirthCountry     string    `db:"birth_country"`
	GamesPlayed      int       `db:"games_played"`
	Goals            int       `db:"goals"`
	Assists          int       `db:"assists"`
	PlusMinus        int       `db:"plus_minus"`
	PenaltyMinutes   int       `db:"penalty_minutes"`
	Wins             int       `db:"wins"`
	Shutouts         int       `db:"shutouts"`
	SavePct          float64   `db:"save_pct"`
	Price            int       `db:"price"`
	LastPricedGameID int64     `db:"last_priced_game_id"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:           row.ID,
		Name:         row.Name,
		Team:         row.Team,
		Position:     player.Position(row.Position),
		BirthDate:    row.BirthDate,
		BirthCountry: row.BirthCountry,
		Stats: player.SeasonStats{
			GamesPlayed:    row.GamesPlayed,
			Goals:          row.Goals,
			Assists:        row.Assists,
			PlusMinus:      row.PlusMinus,
			PenaltyMinutes: row.PenaltyMinutes,
			Wins:           row.Wins,
			Shutouts:       row.Shutouts,
			SavePct:        row.SavePct,
		},
		Price:            row.Price,
		LastPricedGameID: row.LastPricedGameID,
	}
}

func playerToRow(p player.Player) playerTableModel {
	return playerTableModel{
		ID:               p.ID,
		Name:             p.Name,
		Team:             p.Team,
		Position:         string(p.Position),
		BirthDate:        p.BirthDate,
		BirthCountry:     p.BirthCountry,
		GamesPlayed:      p.Stats.GamesPlayed,
		Goals:            p.Stats.Goals,
		Assists:          p.Stats.Assists,
		PlusMinus:        p.Stats.PlusMinus,
		PenaltyMinutes:   p.Stats.PenaltyMinutes,
		Wins:             p.Stats.Wins,
		Shutouts:         p.Stats.Shutouts,
		SavePct:          p.Stats.SavePct,
		Price:            p.Price,
		LastPricedGameID: p.LastPricedGameID,
	}
}
