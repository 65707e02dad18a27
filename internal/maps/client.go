// README: Shared Google Maps client construction and coordinate conversion.
package maps

import (
	"fmt"

	"googlemaps.github.io/maps"

	"garagehub/internal/types"
)

func newClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

func toLatLng(p types.Point) *maps.LatLng {
	return &maps.LatLng{Lat: p.Lat, Lng: p.Lng}
}

func fromLatLng(ll maps.LatLng) types.Point {
	return types.Point{Lat: ll.Lat, Lng: ll.Lng}
}
