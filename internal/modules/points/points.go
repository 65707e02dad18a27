// Package points computes loyalty awards and rank tiers. Every function here is
// pure: callers pass in the transaction figures and persist the results.
package points

import "math"

// Role is the side a user plays in a transaction.
type Role string

const (
	RoleMechanic     Role = "mechanic"
	RoleVehicleOwner Role = "vehicle_owner"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleMechanic || r == RoleVehicleOwner
}

const (
	// MaxRating is the top of the star scale.
	MaxRating = 5.0
	// DefaultRating is assumed for freshly recorded transactions.
	DefaultRating = 5.0

	efficiencyBonus = 1.2
)

type step struct {
	min    float64
	amount int
}

// providerBase is the provider award by transaction cost, highest first.
var providerBase = []step{
	{1000, 50},
	{500, 30},
	{200, 20},
	{0, 10},
}

// rideDistanceBase is the ride award by distance in km, highest first.
var rideDistanceBase = []step{
	{20, 25},
	{10, 15},
	{5, 10},
	{0, 5},
}

// rideFareBonus is added on top of the distance award, highest first.
var rideFareBonus = []step{
	{1000, 10},
	{500, 5},
	{0, 0},
}

// lookup returns the amount of the first step whose min is <= v, or the last
// step's amount when v is below every threshold.
func lookup(table []step, v float64) int {
	for _, s := range table {
		if v >= s.min {
			return s.amount
		}
	}
	return table[len(table)-1].amount
}

// Durations carries the estimated and, once known, the actual time a repair
// took in hours. A zero Actual means "not recorded".
type Durations struct {
	Actual    float64
	Estimated float64
}

func (d Durations) beatEstimate() bool {
	return d.Actual > 0 && d.Actual < d.Estimated
}

// ProviderPoints is the award for the mechanic who performed a service: a
// cost-based amount scaled by rating/5, with a 20% bonus for finishing under
// the estimate, floored.
func ProviderPoints(cost, rating float64, d Durations) int {
	base := float64(lookup(providerBase, cost))
	bonus := 1.0
	if d.beatEstimate() {
		bonus = efficiencyBonus
	}
	return int(math.Floor(base * (rating / MaxRating) * bonus))
}

// CounterpartyPoints is the award for the vehicle owner on the same service.
func CounterpartyPoints(cost, rating float64) int {
	pts := 10
	if rating >= 4 {
		pts += 5
	} else {
		pts += 2
	}
	if cost >= 500 {
		pts += 5
	}
	return pts
}

// RidePoints is the award for a taxi ride, by distance with a fare bonus.
func RidePoints(distanceKm, fare float64) int {
	return lookup(rideDistanceBase, distanceKm) + lookup(rideFareBonus, fare)
}

// ClampRating pulls r into [0, MaxRating].
func ClampRating(r float64) float64 {
	return math.Max(0, math.Min(MaxRating, r))
}
