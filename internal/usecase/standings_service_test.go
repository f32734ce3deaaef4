package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/points"
	"github.com/mtkallio/playoff-pool/internal/domain/user"
	"github.com/mtkallio/playoff-pool/internal/infrastructure/repository/memory"
)

type pointsSeed struct {
	userID  string
	bracket points.BracketScore
	lineup  int
}

func seedPoints(t *testing.T, repo *memory.PointsRepository, seeds []pointsSeed) {
	t.Helper()

	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, seed := range seeds {
		if _, err := repo.UpsertBracketScore(ctx, seed.userID, seed.bracket, now); err != nil {
			t.Fatalf("seed bracket score failed: %v", err)
		}
		if _, err := repo.UpsertLineupTotal(ctx, seed.userID, seed.lineup, now); err != nil {
			t.Fatalf("seed lineup total failed: %v", err)
		}
	}
}

func TestStandingsService_CompetitionRanking(t *testing.T) {
	pointsRepo := memory.NewPointsRepository()
	users := memory.NewUserRepository()

	ctx := context.Background()
	registered := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	for _, u := range []user.User{
		{ID: "u1", TeamName: "Aces", RegisteredAt: registered},
		{ID: "u2", TeamName: "Bruisers", RegisteredAt: registered},
		{ID: "u3", TeamName: "Comets", RegisteredAt: registered},
		{ID: "u4", TeamName: "Drakes", RegisteredAt: registered},
	} {
		if err := users.InsertUser(ctx, u); err != nil {
			t.Fatalf("seed user failed: %v", err)
		}
	}

	seedPoints(t, pointsRepo, []pointsSeed{
		{userID: "u1", bracket: points.BracketScore{Round1Correct: 5, Round1Points: 10}, lineup: 10},
		{userID: "u2", bracket: points.BracketScore{Round1Correct: 5, Round1Points: 10}, lineup: 10},
		{userID: "u3", bracket: points.BracketScore{Round1Correct: 4, Round1Points: 8}, lineup: 10},
	})

	service := NewStandingsService(pointsRepo, users)
	rows, err := service.Standings(t.Context())
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows including the unscored user, got %d", len(rows))
	}

	// u1 and u2 tie on (20, 5) and share rank 1; u3 takes rank 3; the
	// never-scored u4 trails at rank 4 with zeroes.
	wantRanks := []struct {
		userID string
		rank   int
		total  int
	}{
		{userID: "u1", rank: 1, total: 20},
		{userID: "u2", rank: 1, total: 20},
		{userID: "u3", rank: 3, total: 18},
		{userID: "u4", rank: 4, total: 0},
	}
	for i, want := range wantRanks {
		if rows[i].UserID != want.userID || rows[i].Rank != want.rank || rows[i].Total != want.total {
			t.Fatalf("row %d: expected %s rank=%d total=%d, got %s rank=%d total=%d",
				i, want.userID, want.rank, want.total, rows[i].UserID, rows[i].Rank, rows[i].Total)
		}
	}
}

func TestStandingsService_TiebreakOnCorrectSeries(t *testing.T) {
	pointsRepo := memory.NewPointsRepository()
	users := memory.NewUserRepository()

	ctx := context.Background()
	for _, u := range []user.User{
		{ID: "u1", TeamName: "Aces"},
		{ID: "u2", TeamName: "Bruisers"},
	} {
		if err := users.InsertUser(ctx, u); err != nil {
			t.Fatalf("seed user failed: %v", err)
		}
	}

	// Same totals, u2 hit more series winners.
	seedPoints(t, pointsRepo, []pointsSeed{
		{userID: "u1", bracket: points.BracketScore{Round1Correct: 2, Round1Points: 8}, lineup: 12},
		{userID: "u2", bracket: points.BracketScore{Round1Correct: 6, Round1Points: 12}, lineup: 8},
	})

	service := NewStandingsService(pointsRepo, users)
	rows, err := service.Standings(t.Context())
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if rows[0].UserID != "u2" || rows[0].Rank != 1 {
		t.Fatalf("expected u2 first on the series tiebreak, got %+v", rows[0])
	}
	if rows[1].UserID != "u1" || rows[1].Rank != 2 {
		t.Fatalf("expected u1 second, got %+v", rows[1])
	}
}
