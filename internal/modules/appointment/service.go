// README: Appointment service implements state transitions and persistence.
package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"garagehub/internal/modules/points"
	"garagehub/internal/modules/user"
	"garagehub/internal/modules/vehicle"
	"garagehub/internal/types"
)

var (
	ErrInvalidState = errors.New("invalid state transition")
	ErrNotFound     = errors.New("appointment not found")
	ErrConflict     = errors.New("appointment state conflict")
	ErrBadRequest   = errors.New("bad request")
)

var validate = validator.New()

type UserLookup interface {
	Get(ctx context.Context, id types.ID) (*user.User, error)
}

type VehicleLookup interface {
	Get(ctx context.Context, id types.ID) (*vehicle.Vehicle, error)
}

type Service struct {
	repo     Repository
	users    UserLookup
	vehicles VehicleLookup
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(repo Repository, users UserLookup, vehicles VehicleLookup, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, users: users, vehicles: vehicles, log: log, now: time.Now}
}

type ScheduleCommand struct {
	VehicleID      types.ID  `json:"vehicle_id" validate:"required"`
	MechanicID     types.ID  `json:"mechanic_id" validate:"required"`
	OwnerID        types.ID  `json:"owner_id" validate:"required"`
	ScheduledAt    time.Time `json:"scheduled_at" validate:"required"`
	ServiceType    string    `json:"service_type" validate:"required"`
	Description    string    `json:"description"`
	EstimatedCost  float64   `json:"estimated_cost" validate:"gte=0"`
	EstimatedHours float64   `json:"estimated_hours" validate:"gte=0"`
}

func (s *Service) Schedule(ctx context.Context, cmd ScheduleCommand) (*Appointment, error) {
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	now := s.now().UTC()
	if !cmd.ScheduledAt.After(now) {
		return nil, fmt.Errorf("%w: appointment must be in the future", ErrBadRequest)
	}
	if err := s.checkParties(ctx, cmd); err != nil {
		return nil, err
	}

	a := &Appointment{
		ID:             types.NewID(),
		VehicleID:      cmd.VehicleID,
		MechanicID:     cmd.MechanicID,
		OwnerID:        cmd.OwnerID,
		ScheduledAt:    cmd.ScheduledAt.UTC(),
		ServiceType:    cmd.ServiceType,
		Description:    cmd.Description,
		Status:         StatusScheduled,
		EstimatedCost:  cmd.EstimatedCost,
		EstimatedHours: cmd.EstimatedHours,
		CreatedAt:      now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.recordEvent(ctx, &Event{
		AppointmentID: a.ID,
		FromStatus:    StatusNone,
		ToStatus:      StatusScheduled,
		ActorID:       &cmd.OwnerID,
		CreatedAt:     now,
	})
	s.log.WithFields(logrus.Fields{"appointment_id": a.ID, "mechanic_id": a.MechanicID}).Info("appointment scheduled")
	return a, nil
}

func (s *Service) checkParties(ctx context.Context, cmd ScheduleCommand) error {
	expect := map[types.ID]points.Role{cmd.MechanicID: points.RoleMechanic, cmd.OwnerID: points.RoleVehicleOwner}
	if len(expect) != 2 {
		return fmt.Errorf("%w: mechanic and owner must differ", ErrBadRequest)
	}
	for id, role := range expect {
		u, err := s.users.Get(ctx, id)
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

func (s *Service) Confirm(ctx context.Context, id types.ID, actorID *types.ID) (*Appointment, error) {
	return s.transition(ctx, id, StatusConfirmed, actorID)
}

func (s *Service) Complete(ctx context.Context, id types.ID, actorID *types.ID) (*Appointment, error) {
	return s.transition(ctx, id, StatusCompleted, actorID)
}

func (s *Service) Cancel(ctx context.Context, id types.ID, actorID *types.ID) (*Appointment, error) {
	return s.transition(ctx, id, StatusCancelled, actorID)
}

func (s *Service) transition(ctx context.Context, id types.ID, to Status, actorID *types.ID) (*Appointment, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(a.Status, to) {
		return nil, ErrInvalidState
	}
	ok, err := s.repo.UpdateStatus(ctx, a.ID, a.Status, to, a.StatusVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	s.recordEvent(ctx, &Event{
		AppointmentID: a.ID,
		FromStatus:    a.Status,
		ToStatus:      to,
		ActorID:       actorID,
		CreatedAt:     s.now().UTC(),
	})
	s.log.WithFields(logrus.Fields{"appointment_id": a.ID, "from": a.Status, "to": to}).Info("appointment status changed")
	a.Status = to
	a.StatusVersion++
	return a, nil
}

// recordEvent appends to the audit trail. The status change it describes is
// already committed, so a failure is logged and not returned.
func (s *Service) recordEvent(ctx context.Context, e *Event) {
	if err := s.repo.AppendEvent(ctx, e); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"appointment_id": e.AppointmentID,
			"to":             e.ToStatus,
		}).Warn("append appointment event failed")
	}
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Appointment, error) {
	return s.repo.Get(ctx, id)
}

// List returns the appointments where the user plays role, soonest first.
func (s *Service) List(ctx context.Context, userID types.ID, role points.Role) ([]Appointment, error) {
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
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	return s.repo.Delete(ctx, id)
}
