// README: User service handles registration, profiles and point balances.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"garagehub/internal/modules/points"
	"garagehub/internal/types"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrBadRequest = errors.New("bad request")
	ErrEmailTaken = errors.New("email already registered")
)

const (
	defaultRankingLimit = 10
	maxRankingLimit     = 100
)

var validate = validator.New()

type Service struct {
	repo  Repository
	board Leaderboard
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewService(repo Repository, board Leaderboard, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, board: board, log: log, now: time.Now}
}

type RegisterCommand struct {
	Name  string      `json:"name" validate:"required"`
	Email string      `json:"email" validate:"required,email"`
	Phone string      `json:"phone"`
	Role  points.Role `json:"role" validate:"required,oneof=mechanic vehicle_owner"`
	// Password is accepted for client compatibility and never stored or checked.
	Password string           `json:"password"`
	Profile  *MechanicProfile `json:"profile"`
}

type UpdateCommand struct {
	Name    string           `json:"name" validate:"required"`
	Phone   string           `json:"phone"`
	Profile *MechanicProfile `json:"profile"`
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if _, err := s.findByEmail(ctx, cmd.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	u := &User{
		ID:          types.NewID(),
		Name:        cmd.Name,
		Email:       cmd.Email,
		Phone:       cmd.Phone,
		Role:        cmd.Role,
		MemberSince: s.now().UTC(),
	}
	if cmd.Role == points.RoleMechanic {
		u.Profile = cmd.Profile
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return nil, err
	}
	s.syncLeaderboard(ctx, u)
	s.log.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	return u, nil
}

// Login looks the user up by email. Passwords are not verified.
func (s *Service) Login(ctx context.Context, email, _ string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrBadRequest
	}
	return s.findByEmail(ctx, email)
}

func (s *Service) findByEmail(ctx context.Context, email string) (*User, error) {
	all, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Email, email) {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) Get(ctx context.Context, id types.ID) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, role points.Role) ([]User, error) {
	return s.repo.List(ctx, Filter{Role: role})
}

func (s *Service) Update(ctx context.Context, id types.ID, cmd UpdateCommand) (*User, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Name = cmd.Name
	u.Phone = cmd.Phone
	if u.Role == points.RoleMechanic && cmd.Profile != nil {
		u.Profile = cmd.Profile
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AdjustPoints adds delta to the user's balance, never going below zero.
func (s *Service) AdjustPoints(ctx context.Context, id types.ID, delta int) (*User, error) {
	u, err := s.repo.AddPoints(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	s.syncLeaderboard(ctx, u)
	s.log.WithFields(logrus.Fields{"user_id": id, "delta": delta, "total": u.TotalPoints}).Info("points adjusted")
	return u, nil
}

// Rankings returns the top users of a role by points. Entries whose user no
// longer exists are skipped.
func (s *Service) Rankings(ctx context.Context, role points.Role, limit int) ([]View, error) {
	if !role.Valid() {
		return nil, ErrBadRequest
	}
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	limit = min(limit, maxRankingLimit)

	top, err := s.board.Top(ctx, role, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	out := make([]View, 0, len(top))
	for _, e := range top {
		u, err := s.repo.Get(ctx, e.UserID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, NewView(*u))
	}
	return out, nil
}

// RebuildLeaderboard writes every stored balance into the leaderboard.
func (s *Service) RebuildLeaderboard(ctx context.Context) error {
	all, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return err
	}
	for _, u := range all {
		if err := s.board.Set(ctx, u.Role, u.ID, u.TotalPoints); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) syncLeaderboard(ctx context.Context, u *User) {
	if err := s.board.Set(ctx, u.Role, u.ID, u.TotalPoints); err != nil {
		s.log.WithError(err).WithField("user_id", u.ID).Warn("leaderboard update failed")
	}
}
