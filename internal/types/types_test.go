package types

import (
	"math"
	"testing"
)

func TestPointValid(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"origin", Point{}, true},
		{"springfield", Point{Lat: 39.7817, Lng: -89.6501}, true},
		{"north pole", Point{Lat: 90, Lng: 0}, true},
		{"antimeridian", Point{Lat: 0, Lng: -180}, true},
		{"latitude too high", Point{Lat: 90.5, Lng: 0}, false},
		{"latitude too low", Point{Lat: -999, Lng: 0}, false},
		{"longitude too high", Point{Lat: 0, Lng: 180.01}, false},
		{"NaN latitude", Point{Lat: math.NaN(), Lng: 0}, false},
		{"infinite longitude", Point{Lat: 0, Lng: math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Valid(); got != tt.want {
				t.Errorf("Point%+v.Valid() = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
