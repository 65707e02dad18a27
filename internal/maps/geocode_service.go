package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"garagehub/internal/types"
)

var errNoResults = errors.New("no geocoding results")

// GeocodeService handles interactions with the Google Geocoding API.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a new GeocodeService with the given API Key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := newClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &GeocodeService{client: client}, nil
}

// Geocode returns the coordinate of the best match for address.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (types.Point, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Point{}, fmt.Errorf("geocoding api error: %w", err)
	}
	best, err := firstResult(results)
	if err != nil {
		return types.Point{}, err
	}
	return fromLatLng(best.Geometry.Location), nil
}

// ReverseGeocode returns the formatted address closest to p.
func (s *GeocodeService) ReverseGeocode(ctx context.Context, p types.Point) (string, error) {
	results, err := s.client.ReverseGeocode(ctx, &maps.GeocodingRequest{LatLng: toLatLng(p)})
	if err != nil {
		return "", fmt.Errorf("geocoding api error: %w", err)
	}
	best, err := firstResult(results)
	if err != nil {
		return "", err
	}
	return best.FormattedAddress, nil
}

func firstResult(results []maps.GeocodingResult) (maps.GeocodingResult, error) {
	if len(results) == 0 {
		return maps.GeocodingResult{}, errNoResults
	}
	return results[0], nil
}
