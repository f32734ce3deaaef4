package bracket

import "context"

type Repository interface {
	ListMatchups(ctx context.Context) ([]Matchup, error)
	ListMatchupsByRound(ctx context.Context, round int) ([]Matchup, error)
	GetMatchupByCode(ctx context.Context, code string) (Matchup, bool, error)
	ReplaceRoundMatchups(ctx context.Context, round int, matchups []Matchup) error

	UpsertResult(ctx context.Context, result Result) error
	GetResult(ctx context.Context, code string) (Result, bool, error)
	ListResults(ctx context.Context) ([]Result, error)
	DeleteResultsByCodes(ctx context.Context, codes []string) error
}
