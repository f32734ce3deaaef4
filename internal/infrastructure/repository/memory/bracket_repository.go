package memory

import (
	"context"
	"sync"

	"github.com/mtkallio/playoff-pool/internal/domain/bracket"
)

type BracketRepository struct {
	mu       sync.RWMutex
	matchups map[string]bracket.Matchup
	results  map[string]bracket.Result
}

func NewBracketRepository() *BracketRepository {
	return &BracketRepository{
		matchups: make(map[string]bracket.Matchup),
		results:  make(map[string]bracket.Result),
	}
}

func (r *BracketRepository) ListMatchups(_ context.Context) ([]bracket.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bracket.Matchup, 0, len(r.matchups))
	for _, m := range r.matchups {
		out = append(out, m)
	}
	return out, nil
}

func (r *BracketRepository) ListMatchupsByRound(_ context.Context, round int) ([]bracket.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bracket.Matchup, 0, len(r.matchups))
	for _, m := range r.matchups {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *BracketRepository) GetMatchupByCode(_ context.Context, code string) (bracket.Matchup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matchups[code]
	return m, ok, nil
}

func (r *BracketRepository) ReplaceRoundMatchups(_ context.Context, round int, matchups []bracket.Matchup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for code, m := range r.matchups {
		if m.Round == round {
			delete(r.matchups, code)
		}
	}
	for _, m := range matchups {
		r.matchups[m.Code] = m
	}
	return nil
}

func (r *BracketRepository) UpsertResult(_ context.Context, result bracket.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results[result.Code] = result
	return nil
}

func (r *BracketRepository) GetResult(_ context.Context, code string) (bracket.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.results[code]
	return result, ok, nil
}

func (r *BracketRepository) DeleteResultsByCodes(_ context.Context, codes []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, code := range codes {
		delete(r.results, code)
	}
	return nil
}

func (r *BracketRepository) ListResults(_ context.Context) ([]bracket.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bracket.Result, 0, len(r.results))
	for _, result := range r.results {
		out = append(out, result)
	}
	return out, nil
}
