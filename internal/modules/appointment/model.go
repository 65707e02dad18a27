// README: Appointment aggregate and status definitions.
package appointment

import (
	"context"
	"time"

	"garagehub/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Appointment struct {
	ID             types.ID  `json:"id"`
	VehicleID      types.ID  `json:"vehicle_id"`
	MechanicID     types.ID  `json:"mechanic_id"`
	OwnerID        types.ID  `json:"owner_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	ServiceType    string    `json:"service_type"`
	Description    string    `json:"description"`
	Status         Status    `json:"status"`
	StatusVersion  int       `json:"status_version"`
	EstimatedCost  float64   `json:"estimated_cost"`
	EstimatedHours float64   `json:"estimated_hours"`
	CreatedAt      time.Time `json:"created_at"`
}

type Event struct {
	ID            int64
	AppointmentID types.ID
	FromStatus    Status
	ToStatus      Status
	ActorID       *types.ID
	CreatedAt     time.Time
}

// AllowedTransitions represents the appointment state flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusNone:      {StatusScheduled},
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

type Filter struct {
	MechanicID types.ID
	OwnerID    types.ID
}

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	Get(ctx context.Context, id types.ID) (*Appointment, error)
	List(ctx context.Context, f Filter) ([]Appointment, error)
	// UpdateStatus moves from -> to only if the stored version still equals
	// version; false means another writer got there first.
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error)
	AppendEvent(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id types.ID) error
}
