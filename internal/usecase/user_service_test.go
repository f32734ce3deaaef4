package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/mtkallio/playoff-pool/internal/infrastructure/repository/memory"
)

var registrationCodePattern = regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}$`)

func TestUserService_IssueRegistrationCodes(t *testing.T) {
	users := memory.NewUserRepository()
	service := NewUserService(users, &sequenceIDGenerator{})

	codes, err := service.IssueRegistrationCodes(t.Context(), 5)
	if err != nil {
		t.Fatalf("issue codes failed: %v", err)
	}
	if len(codes) != 5 {
		t.Fatalf("expected 5 codes, got %d", len(codes))
	}
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if !registrationCodePattern.MatchString(code) {
			t.Fatalf("code %q does not match the XXXX-XXXX shape", code)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code issued: %s", code)
		}
		seen[code] = struct{}{}
	}

	for _, count := range []int{0, 101} {
		if _, err := service.IssueRegistrationCodes(t.Context(), count); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("count %d: expected ErrInvalidInput, got %v", count, err)
		}
	}
}

func TestUserService_Register_ConsumesCode(t *testing.T) {
	users := memory.NewUserRepository()
	service := NewUserService(users, &sequenceIDGenerator{})
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	codes, err := service.IssueRegistrationCodes(t.Context(), 1)
	if err != nil {
		t.Fatalf("issue codes failed: %v", err)
	}

	registered, err := service.Register(t.Context(), codes[0], "Puck Hogs", "hogs@example.com")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registered.TeamName != "Puck Hogs" || registered.Email != "hogs@example.com" {
		t.Fatalf("unexpected user: %+v", registered)
	}
	if !registered.RegisteredAt.Equal(now) {
		t.Fatalf("expected registered at %v, got %v", now, registered.RegisteredAt)
	}

	ticket, found, err := users.GetRegistrationCode(context.Background(), codes[0])
	if err != nil || !found {
		t.Fatalf("get code failed: found=%t err=%v", found, err)
	}
	if !ticket.Used() || ticket.UsedBy != registered.ID {
		t.Fatalf("expected code consumed by %s, got %+v", registered.ID, ticket)
	}

	// Second use of the same code must bounce.
	if _, err := service.Register(t.Context(), codes[0], "Copy Cats", ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized on reuse, got %v", err)
	}
}

func TestUserService_Register_NormalizesCode(t *testing.T) {
	users := memory.NewUserRepository()
	service := NewUserService(users, &sequenceIDGenerator{})

	codes, err := service.IssueRegistrationCodes(t.Context(), 1)
	if err != nil {
		t.Fatalf("issue codes failed: %v", err)
	}

	// Lowercase with stray whitespace still matches the issued code.
	sloppy := "  " + lower(codes[0]) + " "
	if _, err := service.Register(t.Context(), sloppy, "Casual Entrants", ""); err != nil {
		t.Fatalf("register with sloppy code failed: %v", err)
	}
}

func lower(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'A' && c <= 'Z' {
			out[i] = c + 'a' - 'A'
		}
	}
	return string(out)
}

func TestUserService_Register_InvalidInputs(t *testing.T) {
	service := NewUserService(memory.NewUserRepository(), &sequenceIDGenerator{})

	if _, err := service.Register(t.Context(), "", "Team", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty code, got %v", err)
	}
	if _, err := service.Register(t.Context(), "AAAA-BBBB", "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty team name, got %v", err)
	}
	if _, err := service.Register(t.Context(), "AAAA-BBBB", "Team", ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown code, got %v", err)
	}
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	service := NewUserService(memory.NewUserRepository(), &sequenceIDGenerator{})

	if _, err := service.GetUser(t.Context(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
