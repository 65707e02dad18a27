// README: Repair transactions and the per-side outcomes they award.
package repair

import (
	"context"
	"time"

	"garagehub/internal/modules/points"
	"garagehub/internal/types"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Part struct {
	Name     string  `json:"name" validate:"required"`
	UnitCost float64 `json:"unit_cost" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

// Outcome is one side's share of a transaction. Implemented only by
// ProviderOutcome and CounterpartyOutcome.
type Outcome interface {
	Role() points.Role
	Party() types.ID
	Awarded() int
	Rated() bool
	outcome()
}

// ProviderOutcome is the mechanic's side. Rating is the one the mechanic
// received for the job.
type ProviderOutcome struct {
	MechanicID types.ID `json:"mechanic_id"`
	Points     int      `json:"points"`
	Rating     *float64 `json:"rating,omitempty"`
	Review     string   `json:"review,omitempty"`
}

func (o ProviderOutcome) Role() points.Role { return points.RoleMechanic }
func (o ProviderOutcome) Party() types.ID   { return o.MechanicID }
func (o ProviderOutcome) Awarded() int      { return o.Points }
func (o ProviderOutcome) Rated() bool       { return o.Rating != nil }
func (ProviderOutcome) outcome()            {}

// CounterpartyOutcome is the vehicle owner's side.
type CounterpartyOutcome struct {
	OwnerID types.ID `json:"owner_id"`
	Points  int      `json:"points"`
	Rating  *float64 `json:"rating,omitempty"`
	Review  string   `json:"review,omitempty"`
}

func (o CounterpartyOutcome) Role() points.Role { return points.RoleVehicleOwner }
func (o CounterpartyOutcome) Party() types.ID   { return o.OwnerID }
func (o CounterpartyOutcome) Awarded() int      { return o.Points }
func (o CounterpartyOutcome) Rated() bool       { return o.Rating != nil }
func (CounterpartyOutcome) outcome()            {}

type Transaction struct {
	ID             types.ID            `json:"id"`
	VehicleID      types.ID            `json:"vehicle_id"`
	ServiceType    string              `json:"service_type"`
	Description    string              `json:"description"`
	LaborCost      float64             `json:"labor_cost"`
	Parts          []Part              `json:"parts"`
	TotalCost      float64             `json:"total_cost"`
	Date           time.Time           `json:"date"`
	Status         Status              `json:"status"`
	EstimatedHours float64             `json:"estimated_hours"`
	ActualHours    float64             `json:"actual_hours,omitempty"`
	Provider       ProviderOutcome     `json:"provider"`
	Counterparty   CounterpartyOutcome `json:"counterparty"`
}

// Outcome selects the side played by role. Unknown roles get the
// counterparty side, matching the rank tables.
func (t *Transaction) Outcome(role points.Role) Outcome {
	if role == points.RoleMechanic {
		return t.Provider
	}
	return t.Counterparty
}

// Outcomes returns both sides, provider first.
func (t *Transaction) Outcomes() []Outcome {
	return []Outcome{t.Provider, t.Counterparty}
}

// TotalCost is labour plus every part's unit cost times quantity.
func TotalCost(labor float64, parts []Part) float64 {
	total := labor
	for _, p := range parts {
		total += p.UnitCost * float64(p.Quantity)
	}
	return total
}

type Filter struct {
	MechanicID types.ID
	OwnerID    types.ID
	VehicleID  types.ID
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]Transaction, error)
	Get(ctx context.Context, id types.ID) (*Transaction, error)
	Upsert(ctx context.Context, t *Transaction) error
	Delete(ctx context.Context, id types.ID) error
}
