package points

import "testing"

func TestProviderPoints(t *testing.T) {
	tests := []struct {
		name   string
		cost   float64
		rating float64
		d      Durations
		want   int
	}{
		{"Top bracket, perfect rating, beat estimate", 1000, 5, Durations{Actual: 1, Estimated: 2}, 60},
		{"Top bracket, perfect rating, no actual", 1000, 5, Durations{Estimated: 2}, 50},
		{"Top bracket, four stars, beat estimate", 1000, 4, Durations{Actual: 1, Estimated: 2}, 48},
		{"Half rating halves the award", 1000, 2.5, Durations{}, 25},
		{"500 bracket", 500, 5, Durations{}, 30},
		{"500 bracket, slower than estimate", 999.99, 5, Durations{Actual: 3, Estimated: 2}, 30},
		{"Equal to estimate gets no bonus", 500, 5, Durations{Actual: 2, Estimated: 2}, 30},
		{"200 bracket", 200, 5, Durations{}, 20},
		{"Just under 200", 199.99, 5, Durations{}, 10},
		{"Zero cost", 0, 5, Durations{}, 10},
		{"Zero rating yields zero", 150, 0, Durations{Actual: 1, Estimated: 2}, 0},
		{"Zero rating in top bracket", 5000, 0, Durations{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProviderPoints(tt.cost, tt.rating, tt.d); got != tt.want {
				t.Errorf("ProviderPoints(%v, %v, %+v) = %d, want %d", tt.cost, tt.rating, tt.d, got, tt.want)
			}
		})
	}
}

func TestCounterpartyPoints(t *testing.T) {
	tests := []struct {
		cost   float64
		rating float64
		want   int
	}{
		{500, 4, 20},
		{500, 5, 20},
		{499.99, 4, 15},
		{100, 3.9, 12},
		{1000, 1, 17},
		{0, 0, 12},
	}
	for _, tt := range tests {
		if got := CounterpartyPoints(tt.cost, tt.rating); got != tt.want {
			t.Errorf("CounterpartyPoints(%v, %v) = %d, want %d", tt.cost, tt.rating, got, tt.want)
		}
	}
}

func TestRidePoints(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		fare     float64
		want     int
	}{
		{"Short cheap ride", 2, 150, 5},
		{"5km boundary", 5, 150, 10},
		{"Just under 10km", 9.99, 499, 10},
		{"10km with 500 fare", 10, 500, 20},
		{"20km with 1000 fare", 20, 1000, 35},
		{"Long ride, small fare", 42, 100, 25},
		{"Zero everything", 0, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RidePoints(tt.distance, tt.fare); got != tt.want {
				t.Errorf("RidePoints(%v, %v) = %d, want %d", tt.distance, tt.fare, got, tt.want)
			}
		})
	}
}

func TestClampRating(t *testing.T) {
	tests := map[float64]float64{-1: 0, 0: 0, 3.5: 3.5, 5: 5, 7: 5}
	for in, want := range tests {
		if got := ClampRating(in); got != want {
			t.Errorf("ClampRating(%v) = %v, want %v", in, got, want)
		}
	}
}
