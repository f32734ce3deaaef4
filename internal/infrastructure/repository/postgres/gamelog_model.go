package postgres

import (
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/gamelog"
)

type gameLogTableModel struct {
	GameID    int64     `db:"game_id"`
	PlayerID  string    `db:"player_id"`
	GameStart time.Time `db:"game_start"`
	Goals     int       `db:"goals"`
	Assists   int       `db:"assists"`
	PlusMinus int       `db:"plus_minus"`
	Win       bool      `db:"win"`
	Shutout   bool      `db:"shutout"`
	Shots     int       `db:"shots"`
	Saves     int       `db:"saves"`
}

func gameLogFromRow(row gameLogTableModel) gamelog.Entry {
	return gamelog.Entry{
		GameID:    row.GameID,
		PlayerID:  row.PlayerID,
		GameStart: row.GameStart,
		Goals:     row.Goals,
		Assists:   row.Assists,
		PlusMinus: row.PlusMinus,
		Win:       row.Win,
		Shutout:   row.Shutout,
		Shots:     row.Shots,
		Saves:     row.Saves,
	}
}

func gameLogToRow(entry gamelog.Entry) gameLogTableModel {
	return gameLogTableModel{
		GameID:    entry.GameID,
		PlayerID:  entry.PlayerID,
		GameStart: entry.GameStart,
		Goals:     entry.Goals,
		Assists:   entry.Assists,
		PlusMinus: entry.PlusMinus,
		Win:       entry.Win,
		Shutout:   entry.Shutout,
		Shots:     entry.Shots,
		Saves:     entry.Saves,
	}
}
