// README: Vehicle registry records and fuel types.
package vehicle

import (
	"context"
	"time"

	"garagehub/internal/types"
)

type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

// Vehicle is an owner's car. LicensePlate and VIN are stored upper-cased and
// are unique across the registry.
type Vehicle struct {
	ID           types.ID  `json:"id"`
	OwnerID      types.ID  `json:"owner_id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	FuelType     FuelType  `json:"fuel_type"`
	LicensePlate string    `json:"license_plate"`
	VIN          string    `json:"vin"`
	Mileage      int       `json:"mileage"`
	Color        string    `json:"color,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Filter struct {
	OwnerID types.ID
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]Vehicle, error)
	Get(ctx context.Context, id types.ID) (*Vehicle, error)
	Upsert(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id types.ID) error
}
