// README: Repair service records jobs, credits both sides and reverses awards on delete.
package repair

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"garagehub/internal/modules/points"
	"garagehub/internal/modules/user"
	"garagehub/internal/modules/vehicle"
	"garagehub/internal/types"
)

var (
	ErrNotFound     = errors.New("repair not found")
	ErrBadRequest   = errors.New("bad request")
	ErrNotCompleted = errors.New("only completed repairs can be rated")
	ErrAlreadyRated = errors.New("this side has already been rated")
)

var validate = validator.New()

// Accounts is the user ledger the service credits.
type Accounts interface {
	Get(ctx context.Context, id types.ID) (*user.User, error)
	AdjustPoints(ctx context.Context, id types.ID, delta int) (*user.User, error)
}

type VehicleLookup interface {
	Get(ctx context.Context, id types.ID) (*vehicle.Vehicle, error)
}

type Service struct {
	repo     Repository
	accounts Accounts
	vehicles VehicleLookup
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(repo Repository, accounts Accounts, vehicles VehicleLookup, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, accounts: accounts, vehicles: vehicles, log: log, now: time.Now}
}

type CreateCommand struct {
	MechanicID     types.ID `json:"mechanic_id" validate:"required"`
	OwnerID        types.ID `json:"owner_id" validate:"required"`
	VehicleID      types.ID `json:"vehicle_id" validate:"required"`
	ServiceType    string   `json:"service_type" validate:"required"`
	Description    string   `json:"description"`
	LaborCost      float64  `json:"labor_cost" validate:"gte=0"`
	Parts          []Part   `json:"parts" validate:"dive"`
	Status         Status   `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
	EstimatedHours float64  `json:"estimated_hours" validate:"gt=0"`
	ActualHours    float64  `json:"actual_hours" validate:"gte=0"`
}

type RateCommand struct {
	// Role is the side receiving the rating.
	Role   points.Role `json:"role" validate:"required,oneof=mechanic vehicle_owner"`
	Rating float64     `json:"rating" validate:"gte=1,lte=5"`
	Review string      `json:"review"`
}

// Create records the job and credits both parties. Awards assume the
// default rating because no rating exists yet.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Transaction, error) {
	cmd.ServiceType = strings.TrimSpace(cmd.ServiceType)
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if err := s.checkParties(ctx, cmd); err != nil {
		return nil, err
	}

	total := TotalCost(cmd.LaborCost, cmd.Parts)
	t := &Transaction{
		ID:             types.NewID(),
		VehicleID:      cmd.VehicleID,
		ServiceType:    cmd.ServiceType,
		Description:    cmd.Description,
		LaborCost:      cmd.LaborCost,
		Parts:          cmd.Parts,
		TotalCost:      total,
		Date:           s.now().UTC(),
		Status:         cmd.Status,
		EstimatedHours: cmd.EstimatedHours,
		ActualHours:    cmd.ActualHours,
		Provider: ProviderOutcome{
			MechanicID: cmd.MechanicID,
			Points: points.ProviderPoints(total, points.DefaultRating, points.Durations{
				Actual:    cmd.ActualHours,
				Estimated: cmd.EstimatedHours,
			}),
		},
		Counterparty: CounterpartyOutcome{
			OwnerID: cmd.OwnerID,
			Points:  points.CounterpartyPoints(total, points.DefaultRating),
		},
	}
	if t.Parts == nil {
		t.Parts = []Part{}
	}
	if err := s.repo.Upsert(ctx, t); err != nil {
		return nil, err
	}
	var credited []Outcome
	for _, o := range t.Outcomes() {
		if _, err := s.accounts.AdjustPoints(ctx, o.Party(), o.Awarded()); err != nil {
			s.undoCreate(ctx, t.ID, credited)
			return nil, fmt.Errorf("credit %s: %w", o.Role(), err)
		}
		credited = append(credited, o)
	}
	s.log.WithFields(logrus.Fields{
		"repair_id":       t.ID,
		"total_cost":      total,
		"mechanic_points": t.Provider.Points,
		"owner_points":    t.Counterparty.Points,
	}).Info("repair recorded")
	return t, nil
}

// undoCreate takes back the awards already credited and drops the repair
// after a failed credit, so a retry starts from a clean ledger.
func (s *Service) undoCreate(ctx context.Context, id types.ID, credited []Outcome) {
	log := s.log.WithField("repair_id", id)
	for _, o := range credited {
		if _, err := s.accounts.AdjustPoints(ctx, o.Party(), -o.Awarded()); err != nil {
			log.WithError(err).WithField("user_id", o.Party()).Error("reverse partial credit failed")
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("drop partially credited repair failed")
	}
}

func (s *Service) checkParties(ctx context.Context, cmd CreateCommand) error {
	expect := map[types.ID]points.Role{cmd.MechanicID: points.RoleMechanic, cmd.OwnerID: points.RoleVehicleOwner}
	if len(expect) != 2 {
		return fmt.Errorf("%w: mechanic and owner must differ", ErrBadRequest)
	}
	for id, role := range expect {
		u, err := s.accounts.Get(ctx, id)
		if errors.Is(err, user.ErrNotFound) {
			return fmt.Errorf("%w: unknown user %s", ErrBadRequest, id)
		}
		if err != nil {
			return err
		}
		if u.Role != role {
			return fmt.Errorf("%w: user %s is not a %s", ErrBadRequest, id, role)
		}
	}
	v, err := s.vehicles.Get(ctx, cmd.VehicleID)
	if errors.Is(err, vehicle.ErrNotFound) {
		return fmt.Errorf("%w: unknown vehicle %s", ErrBadRequest, cmd.VehicleID)
	}
	if err != nil {
		return err
	}
	if v.OwnerID != cmd.OwnerID {
		return fmt.Errorf("%w: vehicle %s belongs to another owner", ErrBadRequest, cmd.VehicleID)
	}
	return nil
}

// Rate attaches a rating and review to one side of a completed repair.
// Awards are not recomputed.
func (s *Service) Rate(ctx context.Context, id types.ID, cmd RateCommand) (*Transaction, error) {
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != StatusCompleted {
		return nil, ErrNotCompleted
	}
	if t.Outcome(cmd.Role).Rated() {
		return nil, ErrAlreadyRated
	}
	rating := cmd.Rating
	switch cmd.Role {
	case points.RoleMechanic:
		t.Provider.Rating = &rating
		t.Provider.Review = cmd.Review
	default:
		t.Counterparty.Rating = &rating
		t.Counterparty.Review = cmd.Review
	}
	if err := s.repo.Upsert(ctx, t); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"repair_id": id, "role": cmd.Role, "rating": rating}).Info("repair rated")
	return t, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Transaction, error) {
	return s.repo.Get(ctx, id)
}

// List returns the repairs where the user plays role, newest first.
func (s *Service) List(ctx context.Context, userID types.ID, role points.Role) ([]Transaction, error) {
	if userID == "" {
		return nil, ErrBadRequest
	}
	f := Filter{OwnerID: userID}
	if role == points.RoleMechanic {
		f = Filter{MechanicID: userID}
	}
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Delete removes the repair and takes back both awards. Balances never go
// below zero; a party that no longer exists is skipped.
func (s *Service) Delete(ctx context.Context, id types.ID) error {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, o := range t.Outcomes() {
		_, err := s.accounts.AdjustPoints(ctx, o.Party(), -o.Awarded())
		if errors.Is(err, user.ErrNotFound) {
			s.log.WithField("user_id", o.Party()).Warn("award reversal skipped for missing user")
			continue
		}
		if err != nil {
			return fmt.Errorf("reverse %s award: %w", o.Role(), err)
		}
	}
	s.log.WithField("repair_id", id).Info("repair deleted")
	return nil
}
