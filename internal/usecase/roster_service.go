package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/player"
	"github.com/mtkallio/playoff-pool/internal/domain/roster"
	"github.com/mtkallio/playoff-pool/internal/platform/id"
)

// RosterService maintains roster assignment history. Swapping a slot
// closes the previous interval at the same instant the new one opens, so
// the history never has two open intervals for one slot.
type RosterService struct {
	rosters roster.Repository
	players player.Repository
	ids     id.Generator
	now     func() time.Time
}

func NewRosterService(rosters roster.Repository, players player.Repository, ids id.Generator) *RosterService {
	return &RosterService{
		rosters: rosters,
		players: players,
		ids:     ids,
		now:     time.Now,
	}
}

var slotPositions = map[roster.Slot]player.Position{
	roster.SlotLeftWing:      player.PositionLeftWing,
	roster.SlotCenter:        player.PositionCenter,
	roster.SlotRightWing:     player.PositionRightWing,
	roster.SlotDefenseFirst:  player.PositionDefense,
	roster.SlotDefenseSecond: player.PositionDefense,
	roster.SlotGoalie:        player.PositionGoalie,
}

// AssignPlayer puts a player into a slot, closing whatever interval the
// slot held before. Position fit, duplicates and the salary cap are
// checked against the open roster.
func (s *RosterService) AssignPlayer(ctx context.Context, userID string, slot roster.Slot, playerID string) (roster.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AssignPlayer")
	defer span.End()

	if s.rosters == nil || s.players == nil || s.ids == nil {
		return roster.Assignment{}, fmt.Errorf("%w: roster service is not fully configured", ErrDependencyUnavailable)
	}
	if userID == "" || playerID == "" {
		return roster.Assignment{}, fmt.Errorf("%w: user id and player id are required", ErrInvalidInput)
	}
	if !roster.ValidSlot(slot) {
		return roster.Assignment{}, fmt.Errorf("%w: %s", roster.ErrUnknownSlot, slot)
	}

	candidate, found, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return roster.Assignment{}, fmt.Errorf("get player %s: %w", playerID, err)
	}
	if !found {
		return roster.Assignment{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	if candidate.Position != slotPositions[slot] {
		return roster.Assignment{}, fmt.Errorf("%w: player %s does not play %s", ErrInvalidInput, playerID, slot)
	}

	open, err := s.rosters.ListOpenAssignmentsByUser(ctx, userID)
	if err != nil {
		return roster.Assignment{}, fmt.Errorf("list open assignments user=%s: %w", userID, err)
	}

	capUsed := candidate.Price
	for _, a := range open {
		if a.Slot == slot {
			continue
		}
		if a.PlayerID == playerID {
			return roster.Assignment{}, fmt.Errorf("%w: player %s", roster.ErrDuplicatePlayer, playerID)
		}
		occupant, found, err := s.players.GetPlayer(ctx, a.PlayerID)
		if err != nil {
			return roster.Assignment{}, fmt.Errorf("get player %s: %w", a.PlayerID, err)
		}
		if found {
			capUsed += occupant.Price
		}
	}
	if capUsed > roster.SalaryCap {
		return roster.Assignment{}, fmt.Errorf("%w: %d over %d", roster.ErrExceededCap, capUsed, roster.SalaryCap)
	}

	now := s.now().UTC()
	if current, found, err := s.rosters.GetOpenAssignment(ctx, userID, slot); err != nil {
		return roster.Assignment{}, fmt.Errorf("get open assignment user=%s slot=%s: %w", userID, slot, err)
	} else if found {
		if current.PlayerID == playerID {
			return current, nil
		}
		if err := s.rosters.CloseAssignment(ctx, current.ID, now); err != nil {
			return roster.Assignment{}, fmt.Errorf("close assignment %s: %w", current.ID, err)
		}
	}

	assignmentID, err := s.ids.NewID()
	if err != nil {
		return roster.Assignment{}, fmt.Errorf("generate assignment id: %w", err)
	}
	assignment := roster.Assignment{
		ID:       assignmentID,
		UserID:   userID,
		Slot:     slot,
		PlayerID: playerID,
		AddedAt:  now,
	}
	if err := s.rosters.InsertAssignment(ctx, assignment); err != nil {
		return roster.Assignment{}, fmt.Errorf("insert assignment user=%s slot=%s: %w", userID, slot, err)
	}
	return assignment, nil
}

// RemovePlayer closes the open interval of a slot.
func (s *RosterService) RemovePlayer(ctx context.Context, userID string, slot roster.Slot) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemovePlayer")
	defer span.End()

	if s.rosters == nil {
		return fmt.Errorf("%w: roster repository is not configured", ErrDependencyUnavailable)
	}
	if !roster.ValidSlot(slot) {
		return fmt.Errorf("%w: %s", roster.ErrUnknownSlot, slot)
	}

	current, found, err := s.rosters.GetOpenAssignment(ctx, userID, slot)
	if err != nil {
		return fmt.Errorf("get open assignment user=%s slot=%s: %w", userID, slot, err)
	}
	if !found {
		return fmt.Errorf("%w: slot %s is empty", ErrNotFound, slot)
	}
	if err := s.rosters.CloseAssignment(ctx, current.ID, s.now().UTC()); err != nil {
		return fmt.Errorf("close assignment %s: %w", current.ID, err)
	}
	return nil
}

type RosterSlotView struct {
	Slot     roster.Slot `json:"slot"`
	PlayerID string      `json:"player_id,omitempty"`
	Name     string      `json:"name,omitempty"`
	Price    int         `json:"price,omitempty"`
	AddedAt  *time.Time  `json:"added_at,omitempty"`
}

// Roster returns the user's current slot occupancy, empty slots
// included.
func (s *RosterService) Roster(ctx context.Context, userID string) ([]RosterSlotView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Roster")
	defer span.End()

	if s.rosters == nil || s.players == nil {
		return nil, fmt.Errorf("%w: roster service is not fully configured", ErrDependencyUnavailable)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	open, err := s.rosters.ListOpenAssignmentsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list open assignments user=%s: %w", userID, err)
	}
	bySlot := make(map[roster.Slot]roster.Assignment, len(open))
	for _, a := range open {
		bySlot[a.Slot] = a
	}

	views := make([]RosterSlotView, 0, len(roster.Slots))
	for _, slot := range roster.Slots {
		view := RosterSlotView{Slot: slot}
		if a, ok := bySlot[slot]; ok {
			view.PlayerID = a.PlayerID
			addedAt := a.AddedAt
			view.AddedAt = &addedAt
			if p, found, err := s.players.GetPlayer(ctx, a.PlayerID); err != nil {
				return nil, fmt.Errorf("get player %s: %w", a.PlayerID, err)
			} else if found {
				view.Name = p.Name
				view.Price = p.Price
			}
		}
		views = append(views, view)
	}
	return views, nil
}
