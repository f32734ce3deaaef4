package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mtkallio/playoff-pool/internal/domain/bracket"
	"github.com/mtkallio/playoff-pool/internal/infrastructure/repository/memory"
)

func seedFirstRound(t *testing.T, repo *memory.BracketRepository) {
	t.Helper()

	matchups := []bracket.Matchup{
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceWest, Code: "W1", Team1: "COL", Team2: "STL"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceWest, Code: "W2", Team1: "DAL", Team2: "VGK"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceWest, Code: "W3", Team1: "WPG", Team2: "MIN"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceWest, Code: "W4", Team1: "EDM", Team2: "LAK"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceEast, Code: "E1", Team1: "FLA", Team2: "TBL"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceEast, Code: "E2", Team1: "BOS", Team2: "TOR"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceEast, Code: "E3", Team1: "NYR", Team2: "WSH"},
		{Round: bracket.RoundFirst, Conference: bracket.ConferenceEast, Code: "E4", Team1: "CAR", Team2: "NYI"},
	}
	if err := repo.ReplaceRoundMatchups(context.Background(), bracket.RoundFirst, matchups); err != nil {
		t.Fatalf("seed first round failed: %v", err)
	}
}

func firstRoundResults() []SubmitResultItem {
	return []SubmitResultItem{
		{Code: "W1", Winner: "COL", Games: 5},
		{Code: "W2", Winner: "DAL", Games: 7},
		{Code: "W3", Winner: "WPG", Games: 4},
		{Code: "W4", Winner: "EDM", Games: 6},
		{Code: "E1", Winner: "FLA", Games: 5},
		{Code: "E2", Winner: "TOR", Games: 7},
		{Code: "E3", Winner: "NYR", Games: 6},
		{Code: "E4", Winner: "CAR", Games: 4},
	}
}

func TestBracketService_SubmitResults_AdvancesRound(t *testing.T) {
	repo := memory.NewBracketRepository()
	seedFirstRound(t, repo)
	service := NewBracketService(repo)

	report, err := service.SubmitResults(t.Context(), bracket.RoundFirst, firstRoundResults())
	if err != nil {
		t.Fatalf("submit results failed: %v", err)
	}
	if report.AcceptedCount != 8 || report.RejectedCount != 0 {
		t.Fatalf("expected 8 accepted, 0 rejected, got %d/%d", report.AcceptedCount, report.RejectedCount)
	}
	if len(report.CreatedMatchups) != 4 {
		t.Fatalf("expected 4 semifinal matchups, got %v", report.CreatedMatchups)
	}

	semis, err := repo.ListMatchupsByRound(t.Context(), bracket.RoundSemifinals)
	if err != nil {
		t.Fatalf("list semifinals failed: %v", err)
	}
	byCode := make(map[string]bracket.Matchup, len(semis))
	for _, m := range semis {
		byCode[m.Code] = m
	}
	wSemi, ok := byCode["w-semi"]
	if !ok {
		t.Fatalf("w-semi was not created: %v", semis)
	}
	if wSemi.Team1 != "COL" || wSemi.Team2 != "DAL" {
		t.Fatalf("expected w-semi COL vs DAL, got %s vs %s", wSemi.Team1, wSemi.Team2)
	}
	if eSemi2 := byCode["e-semi2"]; eSemi2.Team1 != "NYR" || eSemi2.Team2 != "CAR" {
		t.Fatalf("expected e-semi2 NYR vs CAR, got %s vs %s", eSemi2.Team1, eSemi2.Team2)
	}
}

func TestBracketService_SubmitResults_ResubmissionReplacesNextRound(t *testing.T) {
	repo := memory.NewBracketRepository()
	seedFirstRound(t, repo)
	service := NewBracketService(repo)

	if _, err := service.SubmitResults(t.Context(), bracket.RoundFirst, firstRoundResults()); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	// Flip one series and resubmit the whole round.
	flipped := firstRoundResults()
	flipped[0] = SubmitResultItem{Code: "W1", Winner: "STL", Games: 6}
	if _, err := service.SubmitResults(t.Context(), bracket.RoundFirst, flipped); err != nil {
		t.Fatalf("resubmission failed: %v", err)
	}

	semis, err := repo.ListMatchupsByRound(t.Context(), bracket.RoundSemifinals)
	if err != nil {
		t.Fatalf("list semifinals failed: %v", err)
	}
	if len(semis) != 4 {
		t.Fatalf("expected semifinals rebuilt with 4 matchups, got %d", len(semis))
	}
	for _, m := range semis {
		if m.Code == "w-semi" && (m.Team1 != "STL" || m.Team2 != "DAL") {
			t.Fatalf("expected w-semi STL vs DAL after flip, got %s vs %s", m.Team1, m.Team2)
		}
		if m.Team1 == "COL" || m.Team2 == "COL" {
			t.Fatalf("stale winner COL survived resubmission: %+v", m)
		}
	}
}

func semifinalResults() []SubmitResultItem {
	return []SubmitResultItem{
		{Code: "w-semi", Winner: "COL", Games: 6},
		{Code: "w-semi2", Winner: "EDM", Games: 7},
		{Code: "e-semi", Winner: "FLA", Games: 5},
		{Code: "e-semi2", Winner: "CAR", Games: 6},
	}
}

func TestBracketService_SubmitResults_ResubmissionClearsDownstreamRounds(t *testing.T) {
	repo := memory.NewBracketRepository()
	seedFirstRound(t, repo)
	service := NewBracketService(repo)

	if _, err := service.SubmitResults(t.Context(), bracket.RoundFirst, firstRoundResults()); err != nil {
		t.Fatalf("submit first round failed: %v", err)
	}
	if _, err := service.SubmitResults(t.Context(), bracket.RoundSemifinals, semifinalResults()); err != nil {
		t.Fatalf("submit semifinals failed: %v", err)
	}

	// Flipping W1 rebuilds the semifinals with a new slot, so the
	// semifinal results and the conference final matchups decided from
	// the old slots are no longer valid.
	flipped := firstRoundResults()
	flipped[0] = SubmitResultItem{Code: "W1", Winner: "STL", Games: 6}
	if _, err := service.SubmitResults(t.Context(), bracket.RoundFirst, flipped); err != nil {
		t.Fatalf("resubmission failed: %v", err)
	}

	results, err := repo.ListResults(t.Context())
	if err != nil {
		t.Fatalf("list results failed: %v", err)
	}
	for _, result := range results {
		if round, _ := bracket.RoundOfCode(result.Code); round != bracket.RoundFirst {
			t.Fatalf("stale downstream result survived resubmission: %+v", result)
		}
	}

	confFinals, err := repo.ListMatchupsByRound(t.Context(), bracket.RoundConfFinals)
	if err != nil {
		t.Fatalf("list conference finals failed: %v", err)
	}
	if len(confFinals) != 0 {
		t.Fatalf("expected conference finals wiped, got %+v", confFinals)
	}

	state, err := service.State(t.Context())
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state != bracket.StateRound2Open {
		t.Fatalf("expected round2_open after the flip, got %s", state)
	}
}

func TestBracketService_SubmitResults_IdenticalResubmissionKeepsLaterRounds(t *testing.T) {
	repo := memory.NewBracketRepository()
	seedFirstRound(t, repo)
	service := NewBracketService(repo)

	if _, err := service.SubmitResults(t.Context(), bracket.RoundFirst, firstRoundResults()); err != nil {
		t.Fatalf("submit first round failed: %v", err)
	}
	if _, err := service.SubmitResults(t.Context(), bracket.RoundSemifinals, semifinalResults()); err != nil {
		t.Fatalf("submit semifinals failed: %v", err)
	}

	// Same winners again: the semifinal slots come out unchanged, so
	// nothing downstream gets thrown away.
	if _, err := service.SubmitResults(t.Context(), bracket.RoundFirst, firstRoundResults()); err != nil {
		t.Fatalf("identical resubmission failed: %v", err)
	}

	if _, ok, err := repo.GetResult(t.Context(), "w-semi"); err != nil || !ok {
		t.Fatalf("expected w-semi result to survive, ok=%v err=%v", ok, err)
	}
	confFinals, err := repo.ListMatchupsByRound(t.Context(), bracket.RoundConfFinals)
	if err != nil {
		t.Fatalf("list conference finals failed: %v", err)
	}
	if len(confFinals) != 2 {
		t.Fatalf("expected both conference finals kept, got %+v", confFinals)
	}

	state, err := service.State(t.Context())
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state != bracket.StateRound3Open {
		t.Fatalf("expected round3_open, got %s", state)
	}
}

func TestBracketService_SubmitResults_RejectsBadItems(t *testing.T) {
	repo := memory.NewBracketRepository()
	seedFirstRound(t, repo)
	service := NewBracketService(repo)

	report, err := service.SubmitResults(t.Context(), bracket.RoundFirst, []SubmitResultItem{
		{Code: "W1", Winner: "COL", Games: 5},
		{Code: "nope", Winner: "COL", Games: 5},
		{Code: "W2", Winner: "COL", Games: 5},
		{Code: "W3", Winner: "WPG", Games: 9},
	})
	if err != nil {
		t.Fatalf("submit results failed: %v", err)
	}
	if report.AcceptedCount != 1 {
		t.Fatalf("expected 1 accepted, got %d", report.AcceptedCount)
	}
	if report.RejectedCount != 3 || len(report.Rejected) != 3 {
		t.Fatalf("expected 3 rejected, got %+v", report.Rejected)
	}

	results, err := repo.ListResults(t.Context())
	if err != nil {
		t.Fatalf("list results failed: %v", err)
	}
	if len(results) != 1 || results[0].Code != "W1" {
		t.Fatalf("expected only W1 stored, got %+v", results)
	}
}

func TestBracketService_SubmitResults_UnknownRound(t *testing.T) {
	service := NewBracketService(memory.NewBracketRepository())

	_, err := service.SubmitResults(t.Context(), 5, []SubmitResultItem{{Code: "cup", Winner: "COL", Games: 4}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBracketService_SaveInitialMatchups_Validation(t *testing.T) {
	service := NewBracketService(memory.NewBracketRepository())

	cases := []struct {
		name  string
		items []InitialMatchupItem
	}{
		{name: "empty", items: nil},
		{name: "not first round", items: []InitialMatchupItem{{Code: "cup", Team1: "COL", Team2: "DAL"}}},
		{name: "duplicate code", items: []InitialMatchupItem{
			{Code: "W1", Team1: "COL", Team2: "STL"},
			{Code: "W1", Team1: "DAL", Team2: "VGK"},
		}},
		{name: "same team twice", items: []InitialMatchupItem{{Code: "W1", Team1: "COL", Team2: "COL"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := service.SaveInitialMatchups(t.Context(), tc.items); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestBracketService_StateProgression(t *testing.T) {
	repo := memory.NewBracketRepository()
	seedFirstRound(t, repo)
	service := NewBracketService(repo)

	state, err := service.State(t.Context())
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state != bracket.StateRound1Open {
		t.Fatalf("expected round1_open, got %s", state)
	}

	if _, err := service.SubmitResults(t.Context(), bracket.RoundFirst, firstRoundResults()); err != nil {
		t.Fatalf("submit first round failed: %v", err)
	}
	state, err = service.State(t.Context())
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state != bracket.StateRound2Open {
		t.Fatalf("expected round2_open, got %s", state)
	}

	if _, err := service.SubmitResults(t.Context(), bracket.RoundSemifinals, []SubmitResultItem{
		{Code: "w-semi", Winner: "COL", Games: 6},
		{Code: "w-semi2", Winner: "EDM", Games: 7},
		{Code: "e-semi", Winner: "FLA", Games: 5},
		{Code: "e-semi2", Winner: "CAR", Games: 6},
	}); err != nil {
		t.Fatalf("submit semifinals failed: %v", err)
	}
	if _, err := service.SubmitResults(t.Context(), bracket.RoundConfFinals, []SubmitResultItem{
		{Code: "west-final", Winner: "EDM", Games: 7},
		{Code: "east-final", Winner: "FLA", Games: 6},
	}); err != nil {
		t.Fatalf("submit conference finals failed: %v", err)
	}

	state, err = service.State(t.Context())
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state != bracket.StateFinalOpen {
		t.Fatalf("expected final_open, got %s", state)
	}

	if _, err := service.SubmitResults(t.Context(), bracket.RoundFinal, []SubmitResultItem{
		{Code: "cup", Winner: "FLA", Games: 6},
	}); err != nil {
		t.Fatalf("submit final failed: %v", err)
	}
	state, err = service.State(t.Context())
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state != bracket.StateComplete {
		t.Fatalf("expected complete, got %s", state)
	}

	overview, err := service.Overview(t.Context())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.State != bracket.StateComplete {
		t.Fatalf("expected overview state complete, got %s", overview.State)
	}
	if len(overview.Matchups) != 15 || len(overview.Results) != 15 {
		t.Fatalf("expected 15 matchups and 15 results, got %d/%d", len(overview.Matchups), len(overview.Results))
	}
}
