package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mtkallio/playoff-pool/internal/domain/player"
	qb "github.com/mtkallio/playoff-pool/internal/platform/querybuilder"
)

const playersTable = "players"

var playerColumns = []string{
	"id", "name", "team", "position", "birth_date", "birth_country",
	"games_played", "goals", "assists", "plus_minus", "penalty_minutes",
	"wins", "shutouts", "save_pct", "price", "last_priced_game_id",
}

// Season stats come from the feed; valuation columns are owned by the
// repricer and deliberately left out of the upsert's update list.
const playerUpsertSuffix = "ON CONFLICT (id) DO UPDATE SET " +
	"name = EXCLUDED.name, team = EXCLUDED.team, position = EXCLUDED.position, " +
	"birth_date = EXCLUDED.birth_date, birth_country = EXCLUDED.birth_country, " +
	"games_played = EXCLUDED.games_played, goals = EXCLUDED.goals, assists = EXCLUDED.assists, " +
	"plus_minus = EXCLUDED.plus_minus, penalty_minutes = EXCLUDED.penalty_minutes, " +
	"wins = EXCLUDED.wins, shutouts = EXCLUDED.shutouts, save_pct = EXCLUDED.save_pct"

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetPlayer(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).
		From(playersTable).
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) ListPlayers(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).
		From(playersTable).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) ListPlayersByPosition(ctx context.Context, position player.Position) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).
		From(playersTable).
		Where(qb.Eq("position", string(position))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by position query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) UpsertPlayers(ctx context.Context, players []player.Player) error {
	if len(players) == 0 {
		return nil
	}

	for _, p := range players {
		query, args, err := qb.InsertModel(playersTable, playerToRow(p), playerUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert player query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player %s: %w", p.ID, err)
		}
	}
	return nil
}

func (r *PlayerRepository) UpdatePrice(ctx context.Context, playerID string, price int, lastPricedGameID int64) error {
	query, args, err := qb.Update(playersTable).
		Set("price", price).
		Set("last_priced_game_id", lastPricedGameID).
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update price query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	return nil
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}
