// README: Location service resolves user locations and estimates travel between points.
package location

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"garagehub/internal/types"
)

type Service struct {
	geocoder Geocoder
	routes   RouteEstimator
	log      logrus.FieldLogger
}

// NewService wires the optional collaborators. Either may be nil.
func NewService(geocoder Geocoder, routes RouteEstimator, log logrus.FieldLogger) *Service {
	return &Service{geocoder: geocoder, routes: routes, log: log}
}

// Resolve turns a coordinate or an address into a labelled Place. A coordinate
// always resolves; when reverse geocoding fails its label is the formatted
// coordinate itself.
func (s *Service) Resolve(ctx context.Context, q Query) (Place, error) {
	if q.Point != nil {
		if !q.Point.Valid() {
			return Place{}, ErrBadRequest
		}
		return Place{Point: *q.Point, Label: s.label(ctx, *q.Point)}, nil
	}

	address := strings.TrimSpace(q.Address)
	if address == "" {
		return Place{}, ErrBadRequest
	}
	if s.geocoder == nil {
		return Place{}, ErrGeocoderUnavailable
	}
	p, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		s.log.WithError(err).WithField("address", address).Warn("geocode failed")
		return Place{}, ErrLocationNotFound
	}
	return Place{Point: p, Label: address}, nil
}

func (s *Service) label(ctx context.Context, p types.Point) string {
	fallback := fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lng)
	if s.geocoder == nil {
		return fallback
	}
	label, err := s.geocoder.ReverseGeocode(ctx, p)
	if err != nil || label == "" {
		if err != nil {
			s.log.WithError(err).Debug("reverse geocode failed")
		}
		return fallback
	}
	return label
}

// Travel estimates the trip from one point to another with the fixed-speed
// heuristic, adding the measured driving time when a route estimator is set.
func (s *Service) Travel(ctx context.Context, from, to types.Point) Estimate {
	km := DistanceKm(from, to)
	minutes := TravelMinutes(km)
	est := Estimate{
		DistanceKm:    km,
		Distance:      FormatDistance(km),
		TravelMinutes: minutes,
		TravelTime:    FormatTravelTime(minutes),
		Direction:     Direction(from, to),
	}
	if s.routes == nil {
		return est
	}
	d, err := s.routes.DrivingDuration(ctx, from, to)
	if err != nil {
		s.log.WithError(err).Warn("route estimate failed")
		return est
	}
	driving := int(math.Ceil(d.Minutes()))
	est.DrivingMinutes = &driving
	return est
}
