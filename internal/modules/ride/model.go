// README: Taxi ride records and rider totals.
package ride

import (
	"context"
	"time"

	"garagehub/internal/types"
)

type Ride struct {
	ID            types.ID  `json:"id"`
	RiderID       types.ID  `json:"rider_id"`
	Date          time.Time `json:"date"`
	Pickup        string    `json:"pickup"`
	Dropoff       string    `json:"dropoff"`
	DistanceKm    float64   `json:"distance_km"`
	Fare          float64   `json:"fare"`
	DriverName    string    `json:"driver_name"`
	VehicleNumber string    `json:"vehicle_number"`
	Rating        *float64  `json:"rating,omitempty"`
	PointsEarned  int       `json:"points_earned"`
}

type Stats struct {
	TotalRides      int     `json:"total_rides"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalSpent      float64 `json:"total_spent"`
	TotalPoints     int     `json:"total_points"`
}

// Summarize totals a rider's rides.
func Summarize(rides []Ride) Stats {
	s := Stats{TotalRides: len(rides)}
	for _, r := range rides {
		s.TotalDistanceKm += r.DistanceKm
		s.TotalSpent += r.Fare
		s.TotalPoints += r.PointsEarned
	}
	return s
}

type Filter struct {
	RiderID types.ID
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]Ride, error)
	Get(ctx context.Context, id types.ID) (*Ride, error)
	Upsert(ctx context.Context, r *Ride) error
	Delete(ctx context.Context, id types.ID) error
}
