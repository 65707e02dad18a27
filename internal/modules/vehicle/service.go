// README: Vehicle service validates registrations and enforces plate/VIN uniqueness.
package vehicle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"garagehub/internal/types"
)

var (
	ErrNotFound       = errors.New("vehicle not found")
	ErrBadRequest     = errors.New("bad request")
	ErrDuplicatePlate = errors.New("license plate already registered")
	ErrDuplicateVIN   = errors.New("vin already registered")
)

var validate = validator.New()

type Service struct {
	repo Repository
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewService(repo Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

type Details struct {
	Make         string   `json:"make" validate:"required"`
	Model        string   `json:"model" validate:"required"`
	Year         int      `json:"year" validate:"required,gte=1900,lte=2100"`
	FuelType     FuelType `json:"fuel_type" validate:"required,oneof=gasoline diesel electric hybrid"`
	LicensePlate string   `json:"license_plate" validate:"required"`
	VIN          string   `json:"vin" validate:"required"`
	Mileage      int      `json:"mileage" validate:"gte=0"`
	Color        string   `json:"color"`
}

type RegisterCommand struct {
	OwnerID types.ID `json:"owner_id" validate:"required"`
	Details
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Vehicle, error) {
	d := normalize(cmd.Details)
	if err := validate.Struct(RegisterCommand{OwnerID: cmd.OwnerID, Details: d}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if err := s.checkUnique(ctx, "", d); err != nil {
		return nil, err
	}

	v := &Vehicle{
		ID:        types.NewID(),
		OwnerID:   cmd.OwnerID,
		CreatedAt: s.now().UTC(),
	}
	apply(v, d)
	if err := s.repo.Upsert(ctx, v); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"vehicle_id": v.ID, "owner_id": v.OwnerID}).Info("vehicle registered")
	return v, nil
}

func (s *Service) Update(ctx context.Context, id types.ID, d Details) (*Vehicle, error) {
	d = normalize(d)
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, id, d); err != nil {
		return nil, err
	}
	apply(v, d)
	if err := s.repo.Upsert(ctx, v); err != nil {
		return nil, err
	}
	s.log.WithField("vehicle_id", id).Info("vehicle updated")
	return v, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Vehicle, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, ownerID types.ID) ([]Vehicle, error) {
	return s.repo.List(ctx, Filter{OwnerID: ownerID})
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("vehicle_id", id).Info("vehicle deleted")
	return nil
}

// checkUnique compares plate and VIN case-insensitively against every other
// vehicle; self is skipped so an update may keep its own identifiers.
func (s *Service) checkUnique(ctx context.Context, self types.ID, d Details) error {
	all, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return err
	}
	for _, v := range all {
		if v.ID == self {
			continue
		}
		if strings.EqualFold(v.LicensePlate, d.LicensePlate) {
			return ErrDuplicatePlate
		}
		if strings.EqualFold(v.VIN, d.VIN) {
			return ErrDuplicateVIN
		}
	}
	return nil
}

func normalize(d Details) Details {
	d.Make = strings.TrimSpace(d.Make)
	d.Model = strings.TrimSpace(d.Model)
	d.LicensePlate = strings.ToUpper(strings.TrimSpace(d.LicensePlate))
	d.VIN = strings.ToUpper(strings.TrimSpace(d.VIN))
	d.Color = strings.TrimSpace(d.Color)
	return d
}

func apply(v *Vehicle, d Details) {
	v.Make = d.Make
	v.Model = d.Model
	v.Year = d.Year
	v.FuelType = d.FuelType
	v.LicensePlate = d.LicensePlate
	v.VIN = d.VIN
	v.Mileage = d.Mileage
	v.Color = d.Color
}
