package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"garagehub/internal/types"
)

// RouteService handles interactions with the Google Directions API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := newClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &RouteService{client: client}, nil
}

// DrivingDuration returns Google's driving time for the first route leg.
func (s *RouteService) DrivingDuration(ctx context.Context, from, to types.Point) (time.Duration, error) {
	r := &maps.DirectionsRequest{
		Origin:      toLatLng(from).String(),
		Destination: toLatLng(to).String(),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("no route found")
	}
	return routes[0].Legs[0].Duration, nil
}
