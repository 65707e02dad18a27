// README: Search filters and ranked results produced by the matching engine.
package matching

import (
	"garagehub/internal/modules/garage"
)

const (
	scoreWeight  = 0.7
	ratingWeight = 0.3
	// ratingScale maps a 0-5 star rating onto the 0-100 score range.
	ratingScale = 20.0

	laborMinFactor = 0.8
	laborMaxFactor = 1.5

	mechanicRatingWeight     = 0.6
	mechanicExperienceWeight = 0.4
	experienceCeilingYears   = 30.0
)

// Filters are applied conjunctively. Zero values disable a filter.
type Filters struct {
	PriceTiers []garage.PriceTier `json:"price_tiers"`
	MinRating  float64            `json:"min_rating"`
	Features   []string           `json:"features"`
}

type Result struct {
	Shop          garage.Shop       `json:"shop"`
	MatchingStaff []garage.Mechanic `json:"matching_staff"`
	// MatchScore is the share of required specializations listed in the
	// shop's services, 0-100.
	MatchScore    float64          `json:"match_score"`
	EstimatedCost garage.CostRange `json:"estimated_cost"`
	// Set by Service when the caller supplied an origin.
	DistanceKm    *float64 `json:"distance_km,omitempty"`
	TravelMinutes *int     `json:"travel_minutes,omitempty"`
}

type IssueMatches struct {
	Issue   garage.Issue `json:"issue"`
	Results []Result     `json:"results"`
}

type MechanicMatch struct {
	Shop     garage.Shop     `json:"shop"`
	Mechanic garage.Mechanic `json:"mechanic"`
}
