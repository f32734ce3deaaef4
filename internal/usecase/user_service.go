package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/user"
	"github.com/mtkallio/playoff-pool/internal/platform/id"
)

// UserService handles pool membership: single-use registration codes in,
// users out.
type UserService struct {
	users user.Repository
	ids   id.Generator
	now   func() time.Time
}

func NewUserService(users user.Repository, ids id.Generator) *UserService {
	return &UserService{
		users: users,
		ids:   ids,
		now:   time.Now,
	}
}

// IssueRegistrationCodes mints count fresh codes for the admin to hand
// out.
func (s *UserService) IssueRegistrationCodes(ctx context.Context, count int) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.IssueRegistrationCodes")
	defer span.End()

	if s.users == nil {
		return nil, fmt.Errorf("%w: user repository is not configured", ErrDependencyUnavailable)
	}
	if count < 1 || count > 100 {
		return nil, fmt.Errorf("%w: count must be between 1 and 100", ErrInvalidInput)
	}

	now := s.now().UTC()
	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		code, err := id.NewRegistrationCode()
		if err != nil {
			return nil, fmt.Errorf("generate registration code: %w", err)
		}
		if err := s.users.InsertRegistrationCode(ctx, user.RegistrationCode{Code: code, IssuedAt: now}); err != nil {
			return nil, fmt.Errorf("insert registration code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// Register consumes a registration code and creates the user behind it.
func (s *UserService) Register(ctx context.Context, code, teamName, email string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Register")
	defer span.End()

	if s.users == nil || s.ids == nil {
		return user.User{}, fmt.Errorf("%w: user service is not fully configured", ErrDependencyUnavailable)
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	teamName = strings.TrimSpace(teamName)
	email = strings.TrimSpace(email)
	if code == "" || teamName == "" {
		return user.User{}, fmt.Errorf("%w: registration code and team name are required", ErrInvalidInput)
	}

	ticket, found, err := s.users.GetRegistrationCode(ctx, code)
	if err != nil {
		return user.User{}, fmt.Errorf("get registration code: %w", err)
	}
	if !found || ticket.Used() {
		return user.User{}, fmt.Errorf("%w: registration code is not valid", ErrUnauthorized)
	}

	userID, err := s.ids.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	u := user.User{
		ID:           userID,
		TeamName:     teamName,
		Email:        email,
		RegisteredAt: now,
	}
	if err := s.users.InsertUser(ctx, u); err != nil {
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	if err := s.users.MarkRegistrationCodeUsed(ctx, code, userID, now); err != nil {
		return user.User{}, fmt.Errorf("mark registration code used: %w", err)
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetUser")
	defer span.End()

	if s.users == nil {
		return user.User{}, fmt.Errorf("%w: user repository is not configured", ErrDependencyUnavailable)
	}

	u, found, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user %s: %w", userID, err)
	}
	if !found {
		return user.User{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.ListUsers")
	defer span.End()

	if s.users == nil {
		return nil, fmt.Errorf("%w: user repository is not configured", ErrDependencyUnavailable)
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
