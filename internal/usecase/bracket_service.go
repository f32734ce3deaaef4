package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/bracket"
)

// BracketService advances the playoff bracket from submitted series
// results. Matchups for round n+1 are rebuilt wholesale from round n
// winners, so resubmitting a round replaces rather than duplicates its
// successors.
type BracketService struct {
	brackets bracket.Repository
	now      func() time.Time
}

func NewBracketService(brackets bracket.Repository) *BracketService {
	return &BracketService{
		brackets: brackets,
		now:      time.Now,
	}
}

type SubmitResultItem struct {
	Code   string
	Winner string
	Games  int
}

type RejectedResultItem struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

type SubmitResultsReport struct {
	Round           int                  `json:"round"`
	AcceptedCount   int                  `json:"accepted_count"`
	RejectedCount   int                  `json:"rejected_count"`
	CreatedMatchups []string             `json:"created_matchups"`
	Rejected        []RejectedResultItem `json:"rejected,omitempty"`
}

// SubmitResults upserts the accepted results for one round and rebuilds
// the following round's matchups from the submitted winners. Bad items
// are rejected one by one; the rest of the batch still lands.
func (s *BracketService) SubmitResults(ctx context.Context, round int, items []SubmitResultItem) (SubmitResultsReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.SubmitResults")
	defer span.End()

	if s.brackets == nil {
		return SubmitResultsReport{}, fmt.Errorf("%w: bracket repository is not configured", ErrDependencyUnavailable)
	}
	if _, ok := bracket.RoundByNumber(round); !ok {
		return SubmitResultsReport{}, fmt.Errorf("%w: unknown round %d", ErrInvalidInput, round)
	}
	if len(items) == 0 {
		return SubmitResultsReport{}, fmt.Errorf("%w: results are required", ErrInvalidInput)
	}

	matchups, err := s.brackets.ListMatchupsByRound(ctx, round)
	if err != nil {
		return SubmitResultsReport{}, fmt.Errorf("list round %d matchups: %w", round, err)
	}
	matchupByCode := make(map[string]bracket.Matchup, len(matchups))
	for _, m := range matchups {
		matchupByCode[m.Code] = m
	}

	report := SubmitResultsReport{Round: round}
	winners := make(map[string]string, len(items))
	for _, item := range items {
		code := strings.TrimSpace(item.Code)
		winner := strings.TrimSpace(item.Winner)

		matchup, ok := matchupByCode[code]
		if !ok {
			report.Rejected = append(report.Rejected, RejectedResultItem{Code: code, Reason: "unknown matchup code"})
			continue
		}
		if !matchup.HasTeam(winner) {
			report.Rejected = append(report.Rejected, RejectedResultItem{Code: code, Reason: "winner is not part of the matchup"})
			continue
		}
		if !bracket.ValidGames(item.Games) {
			report.Rejected = append(report.Rejected, RejectedResultItem{
				Code:   code,
				Reason: fmt.Sprintf("games must be between %d and %d", bracket.GamesMin, bracket.GamesMax),
			})
			continue
		}

		if err := s.brackets.UpsertResult(ctx, bracket.Result{Code: code, Winner: winner, Games: item.Games}); err != nil {
			return SubmitResultsReport{}, fmt.Errorf("upsert result code=%s: %w", code, err)
		}
		winners[code] = winner
		report.AcceptedCount++
	}
	report.RejectedCount = len(report.Rejected)

	if round == bracket.RoundFinal {
		return report, nil
	}

	// Only pairings whose both feeders were decided in this submission
	// advance; the rest of the next round stays empty until resubmission.
	next := make([]bracket.Matchup, 0, 4)
	for _, pairing := range bracket.PairingsInto(round + 1) {
		team1, ok1 := winners[pairing.Feeds[0]]
		team2, ok2 := winners[pairing.Feeds[1]]
		if !ok1 || !ok2 {
			continue
		}
		next = append(next, bracket.Matchup{
			Round:      pairing.Round,
			Conference: pairing.Conference,
			Code:       pairing.Code,
			Team1:      team1,
			Team2:      team2,
		})
	}
	// A resubmission that changes the next round's slots invalidates every
	// result and matchup decided downstream of it; an identical
	// resubmission leaves later rounds alone.
	changed, err := s.nextRoundChanged(ctx, round+1, next)
	if err != nil {
		return SubmitResultsReport{}, err
	}
	if changed {
		if err := s.clearRoundsAfter(ctx, round); err != nil {
			return SubmitResultsReport{}, err
		}
	}

	if err := s.brackets.ReplaceRoundMatchups(ctx, round+1, next); err != nil {
		return SubmitResultsReport{}, fmt.Errorf("replace round %d matchups: %w", round+1, err)
	}

	for _, m := range next {
		report.CreatedMatchups = append(report.CreatedMatchups, m.Code)
	}
	sort.Strings(report.CreatedMatchups)
	return report, nil
}

func (s *BracketService) nextRoundChanged(ctx context.Context, round int, next []bracket.Matchup) (bool, error) {
	stored, err := s.brackets.ListMatchupsByRound(ctx, round)
	if err != nil {
		return false, fmt.Errorf("list round %d matchups: %w", round, err)
	}
	if len(stored) != len(next) {
		return true, nil
	}
	byCode := make(map[string]bracket.Matchup, len(stored))
	for _, m := range stored {
		byCode[m.Code] = m
	}
	for _, m := range next {
		prev, ok := byCode[m.Code]
		if !ok || prev.Team1 != m.Team1 || prev.Team2 != m.Team2 {
			return true, nil
		}
	}
	return false, nil
}

func (s *BracketService) clearRoundsAfter(ctx context.Context, round int) error {
	stale := make([]string, 0, 8)
	for _, spec := range bracket.Rounds {
		if spec.Round > round {
			stale = append(stale, spec.Codes...)
		}
	}
	if err := s.brackets.DeleteResultsByCodes(ctx, stale); err != nil {
		return fmt.Errorf("delete results after round %d: %w", round, err)
	}
	for r := round + 2; r <= bracket.RoundFinal; r++ {
		if err := s.brackets.ReplaceRoundMatchups(ctx, r, nil); err != nil {
			return fmt.Errorf("clear round %d matchups: %w", r, err)
		}
	}
	return nil
}

type InitialMatchupItem struct {
	Code  string
	Team1 string
	Team2 string
}

// SaveInitialMatchups seeds round one from the official seeding. The
// round is replaced wholesale, so reseeding before the playoffs start is
// harmless.
func (s *BracketService) SaveInitialMatchups(ctx context.Context, items []InitialMatchupItem) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.SaveInitialMatchups")
	defer span.End()

	if s.brackets == nil {
		return fmt.Errorf("%w: bracket repository is not configured", ErrDependencyUnavailable)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: matchups are required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(items))
	matchups := make([]bracket.Matchup, 0, len(items))
	for _, item := range items {
		code := strings.TrimSpace(item.Code)
		round, ok := bracket.RoundOfCode(code)
		if !ok || round != bracket.RoundFirst {
			return fmt.Errorf("%w: %q is not a first-round matchup code", ErrInvalidInput, item.Code)
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("%w: duplicate matchup code %q", ErrInvalidInput, code)
		}
		seen[code] = struct{}{}

		team1 := strings.TrimSpace(item.Team1)
		team2 := strings.TrimSpace(item.Team2)
		if team1 == "" || team2 == "" || team1 == team2 {
			return fmt.Errorf("%w: matchup %q needs two distinct teams", ErrInvalidInput, code)
		}

		matchups = append(matchups, bracket.Matchup{
			Round:      bracket.RoundFirst,
			Conference: conferenceOfFirstRoundCode(code),
			Code:       code,
			Team1:      team1,
			Team2:      team2,
		})
	}

	if err := s.brackets.ReplaceRoundMatchups(ctx, bracket.RoundFirst, matchups); err != nil {
		return fmt.Errorf("replace first round matchups: %w", err)
	}
	return nil
}

type BracketOverview struct {
	State    bracket.State     `json:"state"`
	Matchups []bracket.Matchup `json:"matchups"`
	Results  []bracket.Result  `json:"results"`
}

// Overview returns everything a bracket view needs in one call.
func (s *BracketService) Overview(ctx context.Context) (BracketOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.Overview")
	defer span.End()

	if s.brackets == nil {
		return BracketOverview{}, fmt.Errorf("%w: bracket repository is not configured", ErrDependencyUnavailable)
	}

	matchups, err := s.brackets.ListMatchups(ctx)
	if err != nil {
		return BracketOverview{}, fmt.Errorf("list matchups: %w", err)
	}
	results, err := s.brackets.ListResults(ctx)
	if err != nil {
		return BracketOverview{}, fmt.Errorf("list results: %w", err)
	}

	sort.SliceStable(matchups, func(i, j int) bool {
		if matchups[i].Round != matchups[j].Round {
			return matchups[i].Round < matchups[j].Round
		}
		return matchups[i].Code < matchups[j].Code
	})
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Code < results[j].Code
	})

	state, err := deriveBracketState(matchups, results)
	if err != nil {
		return BracketOverview{}, err
	}

	return BracketOverview{
		State:    state,
		Matchups: matchups,
		Results:  results,
	}, nil
}

// State derives the bracket's progression from result coverage.
func (s *BracketService) State(ctx context.Context) (bracket.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.State")
	defer span.End()

	if s.brackets == nil {
		return "", fmt.Errorf("%w: bracket repository is not configured", ErrDependencyUnavailable)
	}

	matchups, err := s.brackets.ListMatchups(ctx)
	if err != nil {
		return "", fmt.Errorf("list matchups: %w", err)
	}
	results, err := s.brackets.ListResults(ctx)
	if err != nil {
		return "", fmt.Errorf("list results: %w", err)
	}
	return deriveBracketState(matchups, results)
}

func deriveBracketState(matchups []bracket.Matchup, results []bracket.Result) (bracket.State, error) {
	decided := make(map[string]struct{}, len(results))
	for _, r := range results {
		decided[r.Code] = struct{}{}
	}

	byRound := make(map[int][]bracket.Matchup, len(bracket.Rounds))
	for _, m := range matchups {
		byRound[m.Round] = append(byRound[m.Round], m)
	}

	for _, spec := range bracket.Rounds {
		roundMatchups := byRound[spec.Round]
		if len(roundMatchups) < len(spec.Codes) {
			return openStateForRound(spec.Round)
		}
		for _, m := range roundMatchups {
			if _, ok := decided[m.Code]; !ok {
				return openStateForRound(spec.Round)
			}
		}
	}
	return bracket.StateComplete, nil
}

func openStateForRound(round int) (bracket.State, error) {
	switch round {
	case bracket.RoundFirst:
		return bracket.StateRound1Open, nil
	case bracket.RoundSemifinals:
		return bracket.StateRound2Open, nil
	case bracket.RoundConfFinals:
		return bracket.StateRound3Open, nil
	case bracket.RoundFinal:
		return bracket.StateFinalOpen, nil
	default:
		return "", fmt.Errorf("%w: unknown round %d", ErrInvalidInput, round)
	}
}

func conferenceOfFirstRoundCode(code string) string {
	if strings.HasPrefix(code, "E") {
		return bracket.ConferenceEast
	}
	return bracket.ConferenceWest
}
