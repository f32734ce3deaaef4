package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/gamelog"
	"github.com/mtkallio/playoff-pool/internal/domain/player"
	"github.com/mtkallio/playoff-pool/internal/infrastructure/repository/memory"
)

func TestPricingService_RunInitialValuation(t *testing.T) {
	players := memory.NewPlayerRepository()
	gamelogs := memory.NewGameLogRepository()

	insertTestPlayers(t, players,
		// Best skater, full sample: lands on the skater ceiling.
		player.Player{ID: "s-top", Position: player.PositionCenter, Stats: player.SeasonStats{GamesPlayed: 20, Goals: 40, Assists: 40}},
		// Worst skater, full sample: lands on the skater floor.
		player.Player{ID: "s-low", Position: player.PositionLeftWing, Stats: player.SeasonStats{GamesPlayed: 20}},
		// Mid defender with a thin sample: scaled, then discounted.
		player.Player{ID: "s-mid", Position: player.PositionDefense, Stats: player.SeasonStats{GamesPlayed: 15, Goals: 10, Assists: 30}},
		// Too few games to scale at all.
		player.Player{ID: "s-new", Position: player.PositionRightWing, Stats: player.SeasonStats{GamesPlayed: 3, Goals: 4}},
		// Lone goalie: no spread in its population, floor price.
		player.Player{ID: "g-1", Position: player.PositionGoalie, Stats: player.SeasonStats{GamesPlayed: 30, Wins: 20, SavePct: 0.91}},
	)

	service := NewPricingService(players, gamelogs)
	report, err := service.RunInitialValuation(t.Context())
	if err != nil {
		t.Fatalf("initial valuation failed: %v", err)
	}
	if report.PlayerCount != 5 || report.ScaledCount != 4 || report.FlooredCount != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	want := map[string]int{
		"s-top": 700_000,
		"s-low": 100_000,
		// score 4 of 6 scales to 500k, 15 games discounts to 85%.
		"s-mid": 425_000,
		// floor price, the 80% discount is clamped back up to the floor.
		"s-new": 100_000,
		"g-1":   100_000,
	}
	for id, wantPrice := range want {
		p, found, err := players.GetPlayer(context.Background(), id)
		if err != nil || !found {
			t.Fatalf("get player %s failed: found=%t err=%v", id, found, err)
		}
		if p.Price != wantPrice {
			t.Fatalf("player %s: expected price %d, got %d", id, wantPrice, p.Price)
		}
	}
}

func TestPricingService_RepriceFromNewLogs_AppliesStepsAndWatermark(t *testing.T) {
	players := memory.NewPlayerRepository()
	gamelogs := memory.NewGameLogRepository()

	insertTestPlayers(t, players, player.Player{ID: "s1", Position: player.PositionCenter, Stats: player.SeasonStats{GamesPlayed: 20}})
	if err := players.UpdatePrice(context.Background(), "s1", 200_000, 0); err != nil {
		t.Fatalf("seed price failed: %v", err)
	}

	gameStart := time.Date(2026, 4, 20, 19, 0, 0, 0, time.UTC)
	if err := gamelogs.UpsertEntries(context.Background(), []gamelog.Entry{
		// delta 4: +6%.
		{GameID: 1, PlayerID: "s1", GameStart: gameStart, Goals: 2},
		// delta -3: below every step, -5% floor.
		{GameID: 2, PlayerID: "s1", GameStart: gameStart.Add(48 * time.Hour), PlusMinus: -3},
	}); err != nil {
		t.Fatalf("seed game logs failed: %v", err)
	}

	service := NewPricingService(players, gamelogs)
	report, err := service.RepriceFromNewLogs(t.Context())
	if err != nil {
		t.Fatalf("reprice failed: %v", err)
	}
	if report.RepricedCount != 1 || report.SkippedCount != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	p, found, err := players.GetPlayer(context.Background(), "s1")
	if err != nil || !found {
		t.Fatalf("get player failed: found=%t err=%v", found, err)
	}
	// 200000 * 1.06 = 212000, then * 0.95 = 201400.
	if p.Price != 201_400 {
		t.Fatalf("expected price 201400, got %d", p.Price)
	}
	if p.LastPricedGameID != 2 {
		t.Fatalf("expected watermark 2, got %d", p.LastPricedGameID)
	}

	// Nothing new to price: the second run must skip, not reapply.
	again, err := service.RepriceFromNewLogs(t.Context())
	if err != nil {
		t.Fatalf("second reprice failed: %v", err)
	}
	if again.RepricedCount != 0 || again.SkippedCount != 1 {
		t.Fatalf("expected rerun to skip, got %+v", again)
	}
	p, _, err = players.GetPlayer(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get player failed: %v", err)
	}
	if p.Price != 201_400 {
		t.Fatalf("rerun changed the price to %d", p.Price)
	}
}

func TestPricingService_RepriceFromNewLogs_ClampsToBounds(t *testing.T) {
	players := memory.NewPlayerRepository()
	gamelogs := memory.NewGameLogRepository()

	insertTestPlayers(t, players, player.Player{ID: "s1", Position: player.PositionCenter})
	if err := players.UpdatePrice(context.Background(), "s1", 690_000, 0); err != nil {
		t.Fatalf("seed price failed: %v", err)
	}

	if err := gamelogs.UpsertEntries(context.Background(), []gamelog.Entry{
		{GameID: 1, PlayerID: "s1", GameStart: time.Date(2026, 4, 20, 19, 0, 0, 0, time.UTC), Goals: 3},
	}); err != nil {
		t.Fatalf("seed game log failed: %v", err)
	}

	service := NewPricingService(players, gamelogs)
	if _, err := service.RepriceFromNewLogs(t.Context()); err != nil {
		t.Fatalf("reprice failed: %v", err)
	}

	p, _, err := players.GetPlayer(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get player failed: %v", err)
	}
	if p.Price != player.SkaterMaxPrice {
		t.Fatalf("expected price clamped to %d, got %d", player.SkaterMaxPrice, p.Price)
	}
}

func TestPricingService_GoalieGameDelta(t *testing.T) {
	cases := []struct {
		name  string
		entry gamelog.Entry
		want  int
	}{
		{name: "appearance only", entry: gamelog.Entry{}, want: 1},
		{name: "win", entry: gamelog.Entry{Win: true}, want: 2},
		{name: "shutout win with save bonus", entry: gamelog.Entry{Win: true, Shutout: true, Shots: 30, Saves: 30}, want: 4},
		{name: "weak save percentage", entry: gamelog.Entry{Shots: 30, Saves: 24}, want: 0},
		{name: "ordinary save percentage", entry: gamelog.Entry{Shots: 30, Saves: 27}, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := goalieGameDelta(tc.entry); got != tc.want {
				t.Fatalf("expected delta %d, got %d", tc.want, got)
			}
		})
	}
}
