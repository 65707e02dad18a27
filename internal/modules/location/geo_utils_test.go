package location

import (
	"math"
	"testing"

	"garagehub/internal/types"
)

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: -1.2921, Lng: 36.8219},
			b:         types.Point{Lat: -1.2921, Lng: 36.8219},
			wantKm:    0,
			tolerance: 0,
		},
		{
			name:      "Nairobi CBD to Westlands (~3.24km)",
			a:         types.Point{Lat: -1.2921, Lng: 36.8219},
			b:         types.Point{Lat: -1.2634, Lng: 36.8155},
			wantKm:    3.24,
			tolerance: 0.1,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			a:         types.Point{Lat: 40.7128, Lng: -74.0060},
			b:         types.Point{Lat: 34.0522, Lng: -118.2437},
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("DistanceKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistanceKm_RoundedToTwoDecimals(t *testing.T) {
	got := DistanceKm(types.Point{Lat: 39.7817, Lng: -89.6501}, types.Point{Lat: 39.7956, Lng: -89.6621})
	if math.Abs(got*100-math.Round(got*100)) > 1e-9 {
		t.Errorf("DistanceKm() = %v, expected at most two decimals", got)
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	a := types.Point{Lat: 25.0, Lng: 121.0}
	b := types.Point{Lat: 26.0, Lng: 122.0}
	if d1, d2 := DistanceKm(a, b), DistanceKm(b, a); d1 != d2 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	for _, p := range []types.Point{{}, {Lat: 89.9, Lng: 179.9}, {Lat: -45.5, Lng: -120.25}} {
		if d := DistanceKm(p, p); d != 0 {
			t.Errorf("DistanceKm(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestTravelMinutes(t *testing.T) {
	tests := []struct {
		km   float64
		want int
	}{
		{0, 0},
		{1, 3},      // 2.4 min -> 3
		{3.24, 8},   // 7.776 -> 8
		{25, 60},    // exactly one hour
		{12.5, 30},  // exactly half an hour
		{30.01, 73}, // 72.024 -> 73
	}
	for _, tt := range tests {
		if got := TravelMinutes(tt.km); got != tt.want {
			t.Errorf("TravelMinutes(%v) = %d, want %d", tt.km, got, tt.want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{0, "0m"},
		{0.25, "250m"},
		{0.999, "999m"},
		{1, "1km"},
		{3.27, "3.27km"},
		{12.5, "12.5km"},
	}
	for _, tt := range tests {
		if got := FormatDistance(tt.km); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.km, got, tt.want)
		}
	}
}

func TestFormatTravelTime(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0 min"},
		{8, "8 min"},
		{59, "59 min"},
		{60, "1h"},
		{75, "1h 15m"},
		{120, "2h"},
		{121, "2h 1m"},
	}
	for _, tt := range tests {
		if got := FormatTravelTime(tt.minutes); got != tt.want {
			t.Errorf("FormatTravelTime(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestDirection(t *testing.T) {
	origin := types.Point{Lat: 0, Lng: 0}
	tests := []struct {
		name string
		to   types.Point
		want string
	}{
		{"due north", types.Point{Lat: 1, Lng: 0}, "North"},
		{"due south", types.Point{Lat: -1, Lng: 0}, "South"},
		{"due east", types.Point{Lat: 0, Lng: 1}, "East"},
		{"due west", types.Point{Lat: 0, Lng: -1}, "West"},
		{"mostly north keeps primary", types.Point{Lat: 2, Lng: 1}, "North"},
		{"mostly east becomes intercardinal", types.Point{Lat: 1, Lng: 2}, "Northeast"},
		{"mostly west going south", types.Point{Lat: -1, Lng: -2}, "Southwest"},
		{"tiny latitude drift ignored", types.Point{Lat: 0.0005, Lng: 1}, "East"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Direction(origin, tt.to); got != tt.want {
				t.Errorf("Direction() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortByDistance_Nearby(t *testing.T) {
	items := []Nearby{
		{ID: types.ID("c"), Distance: 5.0},
		{ID: types.ID("a"), Distance: 1.0},
		{ID: types.ID("b"), Distance: 3.0},
	}

	SortByDistance(items, func(n Nearby) float64 { return n.Distance })

	if items[0].ID != "a" || items[1].ID != "b" || items[2].ID != "c" {
		t.Errorf("unexpected sort order: %v", items)
	}
}

func TestSortByDistance_Stable(t *testing.T) {
	items := []Nearby{
		{ID: types.ID("first"), Distance: 2.0},
		{ID: types.ID("near"), Distance: 1.0},
		{ID: types.ID("second"), Distance: 2.0},
	}

	SortByDistance(items, func(n Nearby) float64 { return n.Distance })

	if items[1].ID != "first" || items[2].ID != "second" {
		t.Errorf("equal distances changed order: %v", items)
	}
}

func TestSortByDistance_Empty(t *testing.T) {
	var items []Nearby
	SortByDistance(items, func(n Nearby) float64 { return n.Distance })
}
