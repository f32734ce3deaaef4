package postgres

import "github.com/mtkallio/playoff-pool/internal/domain/bracket"

type matchupTableModel struct {
	Round      int    `db:"round"`
	Conference string `db:"conference"`
	Code       string `db:"code"`
	Team1      string `db:"team1"`
	Team2      string `db:"team2"`
}

func matchupFromRow(row matchupTableModel) bracket.Matchup {
	return bracket.Matchup{
		Round:      row.Round,
		Conference: row.Conference,
		Code:       row.Code,
		Team1:      row.Team1,
		Team2:      row.Team2,
	}
}

func matchupToRow(m bracket.Matchup) matchupTableModel {
	return matchupTableModel{
		Round:      m.Round,
		Conference: m.Conference,
		Code:       m.Code,
		Team1:      m.Team1,
		Team2:      m.Team2,
	}
}

type matchupResultTableModel struct {
	Code   string `db:"code"`
	Winner string `db:"winner"`
	Games  int    `db:"games"`
}

func matchupResultFromRow(row matchupResultTableModel) bracket.Result {
	return bracket.Result{
		Code:   row.Code,
		Winner: row.Winner,
		Games:  row.Games,
	}
}

func matchupResultToRow(result bracket.Result) matchupResultTableModel {
	return matchupResultTableModel{
		Code:   result.Code,
		Winner: result.Winner,
		Games:  result.Games,
	}
}
