package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/roster"
)

type RosterRepository struct {
	mu          sync.RWMutex
	assignments map[string]roster.Assignment
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{assignments: make(map[string]roster.Assignment)}
}

func (r *RosterRepository) ListAssignmentsByUser(_ context.Context, userID string) ([]roster.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Assignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		if a.UserID == userID {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

func (r *RosterRepository) ListOpenAssignmentsByUser(_ context.Context, userID string) ([]roster.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Assignment, 0, len(roster.Slots))
	for _, a := range r.assignments {
		if a.UserID == userID && a.RemovedAt == nil {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

func (r *RosterRepository) GetOpenAssignment(_ context.Context, userID string, slot roster.Slot) (roster.Assignment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.assignments {
		if a.UserID == userID && a.Slot == slot && a.RemovedAt == nil {
			return a.Clone(), true, nil
		}
	}
	return roster.Assignment{}, false, nil
}

func (r *RosterRepository) InsertAssignment(_ context.Context, assignment roster.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assignments[assignment.ID]; exists {
		return fmt.Errorf("assignment %s already exists", assignment.ID)
	}
	r.assignments[assignment.ID] = assignment.Clone()
	return nil
}

func (r *RosterRepository) CloseAssignment(_ context.Context, assignmentID string, removedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.assignments[assignmentID]
	if !ok {
		return fmt.Errorf("assignment %s not found", assignmentID)
	}
	a.RemovedAt = &removedAt
	r.assignments[assignmentID] = a
	return nil
}
