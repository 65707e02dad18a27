// README: Ride service awards ride points and reverses them on delete.
package ride

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"garagehub/internal/modules/location"
	"garagehub/internal/modules/points"
	"garagehub/internal/modules/user"
	"garagehub/internal/types"
)

var (
	ErrNotFound   = errors.New("ride not found")
	ErrBadRequest = errors.New("bad request")
)

var validate = validator.New()

type Accounts interface {
	Get(ctx context.Context, id types.ID) (*user.User, error)
	AdjustPoints(ctx context.Context, id types.ID, delta int) (*user.User, error)
}

type Service struct {
	repo     Repository
	accounts Accounts
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(repo Repository, accounts Accounts, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, accounts: accounts, log: log, now: time.Now}
}

type CreateCommand struct {
	RiderID       types.ID `json:"rider_id" validate:"required"`
	Pickup        string   `json:"pickup" validate:"required"`
	Dropoff       string   `json:"dropoff" validate:"required"`
	DistanceKm    float64  `json:"distance_km" validate:"gte=0"`
	Fare          float64  `json:"fare" validate:"gte=0"`
	DriverName    string   `json:"driver_name"`
	VehicleNumber string   `json:"vehicle_number"`
	Rating        *float64 `json:"rating" validate:"omitempty,gte=1,lte=5"`
	// When both coordinates are given and DistanceKm is zero, the distance
	// is measured between them.
	PickupPoint  *types.Point `json:"pickup_point"`
	DropoffPoint *types.Point `json:"dropoff_point"`
	Date         *time.Time   `json:"date"`
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Ride, error) {
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if _, err := s.accounts.Get(ctx, cmd.RiderID); errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown rider %s", ErrBadRequest, cmd.RiderID)
	} else if err != nil {
		return nil, err
	}

	distance := cmd.DistanceKm
	if distance == 0 && cmd.PickupPoint != nil && cmd.DropoffPoint != nil {
		distance = location.DistanceKm(*cmd.PickupPoint, *cmd.DropoffPoint)
	}
	date := s.now().UTC()
	if cmd.Date != nil {
		date = cmd.Date.UTC()
	}
	r := &Ride{
		ID:            types.NewID(),
		RiderID:       cmd.RiderID,
		Date:          date,
		Pickup:        cmd.Pickup,
		Dropoff:       cmd.Dropoff,
		DistanceKm:    distance,
		Fare:          cmd.Fare,
		DriverName:    cmd.DriverName,
		VehicleNumber: cmd.VehicleNumber,
		Rating:        cmd.Rating,
		PointsEarned:  points.RidePoints(distance, cmd.Fare),
	}
	if err := s.repo.Upsert(ctx, r); err != nil {
		return nil, err
	}
	if _, err := s.accounts.AdjustPoints(ctx, r.RiderID, r.PointsEarned); err != nil {
		return nil, fmt.Errorf("credit rider: %w", err)
	}
	s.log.WithFields(logrus.Fields{"ride_id": r.ID, "rider_id": r.RiderID, "points": r.PointsEarned}).Info("ride recorded")
	return r, nil
}

// Delete removes the ride and takes its points back, never below zero.
func (s *Service) Delete(ctx context.Context, id types.ID) error {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_, err = s.accounts.AdjustPoints(ctx, r.RiderID, -r.PointsEarned)
	if errors.Is(err, user.ErrNotFound) {
		s.log.WithField("user_id", r.RiderID).Warn("ride reversal skipped for missing user")
		return nil
	}
	return err
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Ride, error) {
	return s.repo.Get(ctx, id)
}

// List returns the rider's rides, newest first.
func (s *Service) List(ctx context.Context, riderID types.ID) ([]Ride, error) {
	if riderID == "" {
		return nil, ErrBadRequest
	}
	out, err := s.repo.List(ctx, Filter{RiderID: riderID})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Service) Stats(ctx context.Context, riderID types.ID) (Stats, error) {
	rides, err := s.List(ctx, riderID)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(rides), nil
}
