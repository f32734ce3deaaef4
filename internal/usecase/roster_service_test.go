package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/player"
	"github.com/mtkallio/playoff-pool/internal/domain/roster"
	"github.com/mtkallio/playoff-pool/internal/infrastructure/repository/memory"
)

type sequenceIDGenerator struct {
	n int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("assignment-%03d", g.n), nil
}

func rosterTestPlayers() []player.Player {
	return []player.Player{
		{ID: "lw-1", Name: "Left Wing", Position: player.PositionLeftWing, Price: 500_000},
		{ID: "lw-2", Name: "Left Wing Two", Position: player.PositionLeftWing, Price: 400_000},
		{ID: "c-1", Name: "Center", Position: player.PositionCenter, Price: 700_000},
		{ID: "rw-1", Name: "Right Wing", Position: player.PositionRightWing, Price: 600_000},
		{ID: "d-1", Name: "Defender One", Position: player.PositionDefense, Price: 500_000},
		{ID: "d-2", Name: "Defender Two", Position: player.PositionDefense, Price: 450_000},
		{ID: "g-1", Name: "Goalie", Position: player.PositionGoalie, Price: 650_000},
	}
}

func newRosterFixture(t *testing.T) (*RosterService, *memory.RosterRepository) {
	t.Helper()

	rosters := memory.NewRosterRepository()
	players := memory.NewPlayerRepository()
	insertTestPlayers(t, players, rosterTestPlayers()...)

	return NewRosterService(rosters, players, &sequenceIDGenerator{}), rosters
}

func TestRosterService_AssignPlayer(t *testing.T) {
	service, _ := newRosterFixture(t)
	now := time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	assignment, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotLeftWing, "lw-1")
	if err != nil {
		t.Fatalf("assign player failed: %v", err)
	}
	if assignment.PlayerID != "lw-1" || assignment.Slot != roster.SlotLeftWing {
		t.Fatalf("unexpected assignment: %+v", assignment)
	}
	if !assignment.AddedAt.Equal(now) || assignment.RemovedAt != nil {
		t.Fatalf("expected open interval starting %v, got %+v", now, assignment)
	}

	views, err := service.Roster(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("roster failed: %v", err)
	}
	if len(views) != len(roster.Slots) {
		t.Fatalf("expected %d slot views, got %d", len(roster.Slots), len(views))
	}
	for _, view := range views {
		if view.Slot == roster.SlotLeftWing {
			if view.PlayerID != "lw-1" || view.Name != "Left Wing" || view.Price != 500_000 {
				t.Fatalf("unexpected left wing view: %+v", view)
			}
		} else if view.PlayerID != "" {
			t.Fatalf("expected slot %s empty, got %+v", view.Slot, view)
		}
	}
}

func TestRosterService_AssignPlayer_WrongPosition(t *testing.T) {
	service, _ := newRosterFixture(t)

	_, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotGoalie, "c-1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_AssignPlayer_UnknownSlotAndPlayer(t *testing.T) {
	service, _ := newRosterFixture(t)

	if _, err := service.AssignPlayer(t.Context(), "user-1", roster.Slot("bench"), "c-1"); !errors.Is(err, roster.ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if _, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotCenter, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterService_AssignPlayer_DuplicateAcrossSlots(t *testing.T) {
	service, _ := newRosterFixture(t)

	if _, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotDefenseFirst, "d-1"); err != nil {
		t.Fatalf("assign d-1 failed: %v", err)
	}
	if _, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotDefenseSecond, "d-1"); !errors.Is(err, roster.ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
}

func TestRosterService_AssignPlayer_SalaryCap(t *testing.T) {
	service, _ := newRosterFixture(t)

	// 500k + 700k + 600k + 500k + 450k = 2.75M: room for a 250k goalie at
	// most, so the 650k goalie must bounce.
	assignments := []struct {
		slot     roster.Slot
		playerID string
	}{
		{roster.SlotLeftWing, "lw-1"},
		{roster.SlotCenter, "c-1"},
		{roster.SlotRightWing, "rw-1"},
		{roster.SlotDefenseFirst, "d-1"},
		{roster.SlotDefenseSecond, "d-2"},
	}
	for _, a := range assignments {
		if _, err := service.AssignPlayer(t.Context(), "user-1", a.slot, a.playerID); err != nil {
			t.Fatalf("assign %s failed: %v", a.playerID, err)
		}
	}

	_, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotGoalie, "g-1")
	if !errors.Is(err, roster.ErrExceededCap) {
		t.Fatalf("expected ErrExceededCap, got %v", err)
	}
}

func TestRosterService_AssignPlayer_SwapClosesPreviousInterval(t *testing.T) {
	service, rosters := newRosterFixture(t)
	first := time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return first }

	original, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotLeftWing, "lw-1")
	if err != nil {
		t.Fatalf("assign lw-1 failed: %v", err)
	}

	second := first.Add(72 * time.Hour)
	service.now = func() time.Time { return second }
	replacement, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotLeftWing, "lw-2")
	if err != nil {
		t.Fatalf("assign lw-2 failed: %v", err)
	}
	if replacement.ID == original.ID {
		t.Fatalf("expected a fresh interval for the replacement")
	}

	history, err := rosters.ListAssignmentsByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list assignments failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(history))
	}
	for _, a := range history {
		switch a.ID {
		case original.ID:
			if a.RemovedAt == nil || !a.RemovedAt.Equal(second) {
				t.Fatalf("expected original interval closed at %v, got %+v", second, a)
			}
		case replacement.ID:
			if a.RemovedAt != nil {
				t.Fatalf("expected replacement interval open, got %+v", a)
			}
		}
	}
}

func TestRosterService_AssignPlayer_SamePlayerIsNoop(t *testing.T) {
	service, rosters := newRosterFixture(t)

	first, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotCenter, "c-1")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	again, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotCenter, "c-1")
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("expected the existing interval back, got %+v", again)
	}

	history, err := rosters.ListAssignmentsByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list assignments failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected a single interval, got %d", len(history))
	}
}

func TestRosterService_RemovePlayer(t *testing.T) {
	service, rosters := newRosterFixture(t)
	added := time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return added }

	if _, err := service.AssignPlayer(t.Context(), "user-1", roster.SlotGoalie, "g-1"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	removed := added.Add(24 * time.Hour)
	service.now = func() time.Time { return removed }
	if err := service.RemovePlayer(t.Context(), "user-1", roster.SlotGoalie); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, found, err := rosters.GetOpenAssignment(context.Background(), "user-1", roster.SlotGoalie); err != nil || found {
		t.Fatalf("expected slot empty after removal: found=%t err=%v", found, err)
	}

	if err := service.RemovePlayer(t.Context(), "user-1", roster.SlotGoalie); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty slot, got %v", err)
	}
}
