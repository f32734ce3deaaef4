package roster

import (
	"errors"
	"time"
)

// HoldDuration is how long past puck drop an assignment must remain open
// for the game to count. It blocks swapping a player in right before a
// game and out right after it.
const HoldDuration = 2 * time.Hour

// SalaryCap bounds the combined price of a user's open assignments.
const SalaryCap = 3_000_000

type Slot string

const (
	SlotLeftWing      Slot = "left-wing"
	SlotCenter        Slot = "center"
	SlotRightWing     Slot = "right-wing"
	SlotDefenseFirst  Slot = "defense-1"
	SlotDefenseSecond Slot = "defense-2"
	SlotGoalie        Slot = "goalie"
)

var Slots = []Slot{
	SlotLeftWing,
	SlotCenter,
	SlotRightWing,
	SlotDefenseFirst,
	SlotDefenseSecond,
	SlotGoalie,
}

var (
	ErrUnknownSlot     = errors.New("unknown roster slot")
	ErrExceededCap     = errors.New("roster exceeds salary cap")
	ErrDuplicatePlayer = errors.New("player already assigned to another slot")
)

func ValidSlot(slot Slot) bool {
	for _, s := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// Assignment is one interval during which a user held a player in a slot.
// RemovedAt is nil while the interval is open. History is append-only:
// re-adding a traded player creates a new interval.
type Assignment struct {
	ID        string
	UserID    string
	Slot      Slot
	PlayerID  string
	AddedAt   time.Time
	RemovedAt *time.Time
}

// CoversGame reports whether this interval earns credit for a game that
// started at gameStart.
func (a Assignment) CoversGame(gameStart time.Time) bool {
	if a.AddedAt.After(gameStart) {
		return false
	}
	if a.RemovedAt == nil {
		return true
	}
	return !a.RemovedAt.Before(gameStart.Add(HoldDuration))
}

func (a Assignment) Clone() Assignment {
	out := a
	if a.RemovedAt != nil {
		removed := *a.RemovedAt
		out.RemovedAt = &removed
	}
	return out
}
