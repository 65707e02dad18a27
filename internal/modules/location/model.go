// README: Location value types and the collaborator contracts for geocoding and routing.
package location

import (
	"context"
	"errors"
	"time"

	"garagehub/internal/types"
)

var (
	ErrLocationNotFound    = errors.New("could not find the specified location")
	ErrGeocoderUnavailable = errors.New("geocoding is not configured")
	ErrBadRequest          = errors.New("bad request")
)

// Geocoder turns addresses into coordinates and back.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, error)
	ReverseGeocode(ctx context.Context, p types.Point) (string, error)
}

// RouteEstimator returns a measured driving duration between two points.
type RouteEstimator interface {
	DrivingDuration(ctx context.Context, from, to types.Point) (time.Duration, error)
}

// Place is a resolved coordinate with a human readable label.
type Place struct {
	Point types.Point `json:"point"`
	Label string      `json:"label"`
}

// Query asks to resolve either a coordinate or a free-text address.
// Point takes precedence when both are set.
type Query struct {
	Point   *types.Point
	Address string
}

// Estimate describes the trip between two points.
type Estimate struct {
	DistanceKm    float64 `json:"distance_km"`
	Distance      string  `json:"distance"`
	TravelMinutes int     `json:"travel_minutes"`
	TravelTime    string  `json:"travel_time"`
	Direction     string  `json:"direction"`
	// DrivingMinutes is set only when a route estimator answered.
	DrivingMinutes *int `json:"driving_minutes,omitempty"`
}

// Nearby is an indexed member found within a radius query.
type Nearby struct {
	ID       types.ID
	Distance float64
}
