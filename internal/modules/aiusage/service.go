package aiusage

import (
	"context"
	"errors"
	"time"

	"garagehub/internal/types"
)

// Service orchestrates AI token-usage logic.
type Service struct {
	repo      Repository
	allowance int
	now       func() time.Time
}

// NewService creates a Service granting allowance diagnoses per month.
// A non-positive allowance falls back to DefaultTokens.
func NewService(repo Repository, allowance int) *Service {
	if allowance <= 0 {
		allowance = DefaultTokens
	}
	return &Service{repo: repo, allowance: allowance, now: time.Now}
}

func (s *Service) month() string {
	return s.now().UTC().Format(monthLayout)
}

// UseToken deducts one token from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the token is immediately consumed.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) UseToken(ctx context.Context, uid types.ID) error {
	month := s.month()
	err := s.repo.UseToken(ctx, uid, month, s.allowance)
	if !errors.Is(err, ErrInsufficientTokens) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.repo.EnsureUser(ctx, uid, month, s.allowance); initErr != nil {
		return initErr
	}
	return s.repo.UseToken(ctx, uid, month, s.allowance)
}

// Remaining reports how many diagnoses the user has left this month without
// consuming one.
func (s *Service) Remaining(ctx context.Context, uid types.ID) (int, error) {
	tokens, month, found, err := s.repo.Remaining(ctx, uid)
	if err != nil {
		return 0, err
	}
	if !found || month < s.month() {
		return s.allowance, nil
	}
	return tokens, nil
}
