package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mtkallio/playoff-pool/internal/domain/bracket"
	qb "github.com/mtkallio/playoff-pool/internal/platform/querybuilder"
)

const (
	matchupsTable       = "matchups"
	matchupResultsTable = "matchup_results"
)

var matchupColumns = []string{"round", "conference", "code", "team1", "team2"}
var matchupResultColumns = []string{"code", "winner", "games"}

type BracketRepository struct {
	db *sqlx.DB
}

func NewBracketRepository(db *sqlx.DB) *BracketRepository {
	return &BracketRepository{db: db}
}

func (r *BracketRepository) ListMatchups(ctx context.Context) ([]bracket.Matchup, error) {
	query, args, err := qb.Select(matchupColumns...).
		From(matchupsTable).
		OrderBy("round", "code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchups query: %w", err)
	}

	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matchups: %w", err)
	}

	out := make([]bracket.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchupFromRow(row))
	}
	return out, nil
}

func (r *BracketRepository) ListMatchupsByRound(ctx context.Context, round int) ([]bracket.Matchup, error) {
	query, args, err := qb.Select(matchupColumns...).
		From(matchupsTable).
		Where(qb.Eq("round", round)).
		OrderBy("code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchups by round query: %w", err)
	}

	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matchups by round: %w", err)
	}

	out := make([]bracket.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchupFromRow(row))
	}
	return out, nil
}

func (r *BracketRepository) GetMatchupByCode(ctx context.Context, code string) (bracket.Matchup, bool, error) {
	query, args, err := qb.Select(matchupColumns...).
		From(matchupsTable).
		Where(qb.Eq("code", code)).
		ToSQL()
	if err != nil {
		return bracket.Matchup{}, false, fmt.Errorf("build get matchup query: %w", err)
	}

	var row matchupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bracket.Matchup{}, false, nil
		}
		return bracket.Matchup{}, false, fmt.Errorf("get matchup: %w", err)
	}
	return matchupFromRow(row), true, nil
}

// ReplaceRoundMatchups deletes and re-inserts one round inside a
// transaction so a resubmission never leaves stale slots behind.
func (r *BracketRepository) ReplaceRoundMatchups(ctx context.Context, round int, matchups []bracket.Matchup) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace round matchups: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom(matchupsTable).
		Where(qb.Eq("round", round)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete round matchups query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete round matchups: %w", err)
	}

	for _, m := range matchups {
		query, args, err := qb.InsertModel(matchupsTable, matchupToRow(m), "")
		if err != nil {
			return fmt.Errorf("build insert matchup query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert matchup %s: %w", m.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace round matchups: %w", err)
	}
	return nil
}

func (r *BracketRepository) UpsertResult(ctx context.Context, result bracket.Result) error {
	query, args, err := qb.InsertModel(
		matchupResultsTable,
		matchupResultToRow(result),
		"ON CONFLICT (code) DO UPDATE SET winner = EXCLUDED.winner, games = EXCLUDED.games",
	)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}

func (r *BracketRepository) GetResult(ctx context.Context, code string) (bracket.Result, bool, error) {
	query, args, err := qb.Select(matchupResultColumns...).
		From(matchupResultsTable).
		Where(qb.Eq("code", code)).
		ToSQL()
	if err != nil {
		return bracket.Result{}, false, fmt.Errorf("build get result query: %w", err)
	}

	var row matchupResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bracket.Result{}, false, nil
		}
		return bracket.Result{}, false, fmt.Errorf("get result: %w", err)
	}
	return matchupResultFromRow(row), true, nil
}

func (r *BracketRepository) DeleteResultsByCodes(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return nil
	}

	values := make([]any, 0, len(codes))
	for _, code := range codes {
		values = append(values, code)
	}
	query, args, err := qb.DeleteFrom(matchupResultsTable).
		Where(qb.In("code", values)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete results query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete results: %w", err)
	}
	return nil
}

func (r *BracketRepository) ListResults(ctx context.Context) ([]bracket.Result, error) {
	query, args, err := qb.Select(matchupResultColumns...).
		From(matchupResultsTable).
		OrderBy("code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []matchupResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make([]bracket.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchupResultFromRow(row))
	}
	return out, nil
}
