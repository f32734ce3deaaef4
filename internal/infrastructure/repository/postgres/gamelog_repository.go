package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mtkallio/playoff-pool/internal/domain/gamelog"
	qb "github.com/mtkallio/playoff-pool/internal/platform/querybuilder"
)

const gameLogsTable = "game_logs"

var gameLogColumns = []string{
	"game_id", "player_id", "game_start",
	"goals", "assists", "plus_minus",
	"win", "shutout", "shots", "saves",
}

const gameLogUpsertSuffix = "ON CONFLICT (game_id, player_id) DO UPDATE SET " +
	"game_start = EXCLUDED.game_start, goals = EXCLUDED.goals, assists = EXCLUDED.assists, " +
	"plus_minus = EXCLUDED.plus_minus, win = EXCLUDED.win, shutout = EXCLUDED.shutout, " +
	"shots = EXCLUDED.shots, saves = EXCLUDED.saves"

type GameLogRepository struct {
	db *sqlx.DB
}

func NewGameLogRepository(db *sqlx.DB) *GameLogRepository {
	return &GameLogRepository{db: db}
}

func (r *GameLogRepository) UpsertEntries(ctx context.Context, entries []gamelog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	builder := qb.InsertInto(gameLogsTable).Columns(gameLogColumns...)
	for _, entry := range entries {
		row := gameLogToRow(entry)
		builder.Values(
			row.GameID, row.PlayerID, row.GameStart,
			row.Goals, row.Assists, row.PlusMinus,
			row.Win, row.Shutout, row.Shots, row.Saves,
		)
	}

	query, args, err := builder.Suffix(gameLogUpsertSuffix).ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert game logs query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert game logs: %w", err)
	}
	return nil
}

func (r *GameLogRepository) ListAll(ctx context.Context) ([]gamelog.Entry, error) {
	query, args, err := qb.Select(gameLogColumns...).
		From(gameLogsTable).
		OrderBy("game_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list game logs query: %w", err)
	}
	return r.selectEntries(ctx, query, args)
}

func (r *GameLogRepository) ListByPlayer(ctx context.Context, playerID string) ([]gamelog.Entry, error) {
	query, args, err := qb.Select(gameLogColumns...).
		From(gameLogsTable).
		Where(qb.Eq("player_id", playerID)).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list game logs by player query: %w", err)
	}
	return r.selectEntries(ctx, query, args)
}

func (r *GameLogRepository) ListByPlayerAfterGame(ctx context.Context, playerID string, afterGameID int64) ([]gamelog.Entry, error) {
	query, args, err := qb.Select(gameLogColumns...).
		From(gameLogsTable).
		Where(
			qb.Eq("player_id", playerID),
			qb.Gt("game_id", afterGameID),
		).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list game logs after game query: %w", err)
	}
	return r.selectEntries(ctx, query, args)
}

func (r *GameLogRepository) selectEntries(ctx context.Context, query string, args []any) ([]gamelog.Entry, error) {
	var rows []gameLogTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game logs: %w", err)
	}

	out := make([]gamelog.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameLogFromRow(row))
	}
	return out, nil
}
