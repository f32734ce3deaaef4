package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
	codes map[string]user.RegistrationCode
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]user.User),
		codes: make(map[string]user.RegistrationCode),
	}
}

func (r *UserRepository) GetUser(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	return u, ok, nil
}

func (r *UserRepository) ListUsers(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) InsertUser(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; exists {
		return fmt.Errorf("user %s already exists", u.ID)
	}
	r.users[u.ID] = u
	return nil
}

func (r *UserRepository) InsertRegistrationCode(_ context.Context, code user.RegistrationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codes[code.Code]; exists {
		return fmt.Errorf("registration code %s already exists", code.Code)
	}
	r.codes[code.Code] = code
	return nil
}

func (r *UserRepository) GetRegistrationCode(_ context.Context, code string) (user.RegistrationCode, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.codes[code]
	return ticket, ok, nil
}

func (r *UserRepository) MarkRegistrationCodeUsed(_ context.Context, code, usedBy string, usedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.codes[code]
	if !ok {
		return fmt.Errorf("registration code %s not found", code)
	}
	ticket.UsedBy = usedBy
	ticket.UsedAt = &usedAt
	r.codes[code] = ticket
	return nil
}
