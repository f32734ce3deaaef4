package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mtkallio/playoff-pool/internal/domain/gamelog"
	"github.com/mtkallio/playoff-pool/internal/domain/player"
	gamelogmock "github.com/mtkallio/playoff-pool/internal/mocks/domain/gamelog"
	playermock "github.com/mtkallio/playoff-pool/internal/mocks/domain/player"
)

func TestPricingService_RepriceFromNewLogs_IsolatesFailuresUsingMockery(t *testing.T) {
	t.Parallel()

	players := playermock.NewRepository(t)
	gamelogs := gamelogmock.NewRepository(t)
	service := NewPricingService(players, gamelogs)

	roster := []player.Player{
		{ID: "p1", Position: player.PositionCenter, Price: 200_000},
		{ID: "p2", Position: player.PositionCenter, Price: 200_000},
	}
	players.
		On("ListPlayers", mock.Anything).
		Return(roster, nil).
		Once()

	// p1's log lookup blows up; p2 reprices normally.
	gamelogs.
		On("ListByPlayerAfterGame", mock.Anything, "p1", int64(0)).
		Return(nil, errors.New("connection reset")).
		Once()
	gamelogs.
		On("ListByPlayerAfterGame", mock.Anything, "p2", int64(0)).
		Return([]gamelog.Entry{
			{GameID: 3, PlayerID: "p2", GameStart: time.Date(2026, 4, 20, 19, 0, 0, 0, time.UTC), Goals: 1},
		}, nil).
		Once()

	// delta 2 moves the price +2.7% and advances the watermark to game 3.
	players.
		On("UpdatePrice", mock.Anything, "p2", 205_400, int64(3)).
		Return(nil).
		Once()

	report, err := service.RepriceFromNewLogs(t.Context())
	if err != nil {
		t.Fatalf("reprice failed: %v", err)
	}
	if report.PlayerCount != 2 || report.RepricedCount != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].PlayerID != "p1" {
		t.Fatalf("expected p1 to be the only failure, got %+v", report.Failures)
	}
}
