// README: Garage catalog: reported issues, repair shops and their mechanics.
package garage

import (
	"context"

	"garagehub/internal/modules/vehicle"
	"garagehub/internal/types"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

type PriceTier string

const (
	PriceBudget   PriceTier = "budget"
	PriceModerate PriceTier = "moderate"
	PricePremium  PriceTier = "premium"
)

// CostRange is a dollar range; Min never exceeds Max in catalog data.
type CostRange struct {
	Min float64 `json:"min" validate:"gte=0,ltefield=Max"`
	Max float64 `json:"max" validate:"gte=0"`
}

// Hours maps a lower-case weekday to a free-form opening window, e.g.
// "monday": "8:00 AM - 6:00 PM".
type Hours map[string]string

// Issue is immutable reference data describing a class of vehicle fault.
type Issue struct {
	ID                      types.ID           `json:"id" validate:"required"`
	Name                    string             `json:"name" validate:"required"`
	Description             string             `json:"description"`
	Symptoms                []string           `json:"symptoms"`
	Urgency                 Urgency            `json:"urgency" validate:"omitempty,oneof=low medium high critical"`
	EstimatedCost           CostRange          `json:"estimated_cost"`
	EstimatedHours          float64            `json:"estimated_hours" validate:"gte=0"`
	RequiredSpecializations []string           `json:"required_specializations"`
	CompatibleFuels         []vehicle.FuelType `json:"compatible_fuels" validate:"dive,oneof=gasoline diesel electric hybrid"`
}

// CompatibleWith reports whether the issue applies to the given fuel type.
func (i Issue) CompatibleWith(f vehicle.FuelType) bool {
	for _, c := range i.CompatibleFuels {
		if c == f {
			return true
		}
	}
	return false
}

type Mechanic struct {
	ID              types.ID `json:"id"`
	Name            string   `json:"name" validate:"required"`
	Specializations []string `json:"specializations"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0"`
	Rating          float64  `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount     int      `json:"review_count"`
	Certifications  []string `json:"certifications"`
	HourlyRate      float64  `json:"hourly_rate" validate:"gte=0"`
	Availability    Hours    `json:"availability"`
}

type Shop struct {
	ID          types.ID    `json:"id" validate:"required"`
	Name        string      `json:"name" validate:"required"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Zip         string      `json:"zip"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email,omitempty" validate:"omitempty,email"`
	Website     string      `json:"website,omitempty"`
	Location    types.Point `json:"location"`
	Rating      float64     `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount int         `json:"review_count" validate:"gte=0"`
	Services    []string    `json:"services"`
	Mechanics   []Mechanic  `json:"mechanics" validate:"dive"`
	PriceTier   PriceTier   `json:"price_tier" validate:"required,oneof=budget moderate premium"`
	Features    []string    `json:"features"`
	Hours       Hours       `json:"hours"`
}

type ShopFilter struct {
	City string
}

type IssueFilter struct {
	Fuel vehicle.FuelType
}

type ShopRepository interface {
	List(ctx context.Context, f ShopFilter) ([]Shop, error)
	Get(ctx context.Context, id types.ID) (*Shop, error)
	Upsert(ctx context.Context, s *Shop) error
	Delete(ctx context.Context, id types.ID) error
}

type IssueRepository interface {
	List(ctx context.Context, f IssueFilter) ([]Issue, error)
	Get(ctx context.Context, id types.ID) (*Issue, error)
	Upsert(ctx context.Context, i *Issue) error
	Delete(ctx context.Context, id types.ID) error
}
