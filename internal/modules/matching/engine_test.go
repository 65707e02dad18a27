// README: Matching engine unit tests over the sample catalog and hand-built shops.
package matching

import (
	"math"
	"testing"

	"garagehub/internal/modules/garage"
	"garagehub/internal/modules/vehicle"
	"garagehub/internal/types"
)

func sampleEngine() *Engine {
	issues, shops := garage.SampleCatalog()
	return NewEngine(shops, issues)
}

func shopIDs(results []Result) []types.ID {
	ids := make([]types.ID, len(results))
	for i, r := range results {
		ids[i] = r.Shop.ID
	}
	return ids
}

func assertIDs(t *testing.T, got, want []types.ID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSearch_UnknownIssueIsEmpty(t *testing.T) {
	got := sampleEngine().Search("missing", nil, nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSearch_EngineIssueRanking(t *testing.T) {
	got := sampleEngine().Search("1", nil, nil)
	// Quick Fix has no engine staff; Premium European edges Elite on rating.
	assertIDs(t, shopIDs(got), []types.ID{"4", "1", "2"})

	elite := got[1]
	if !near(elite.MatchScore, 200.0/3) {
		t.Fatalf("expected 66.67 match score, got %v", elite.MatchScore)
	}
	if len(elite.MatchingStaff) != 2 {
		t.Fatalf("expected 2 qualified mechanics, got %d", len(elite.MatchingStaff))
	}
	// labour = mean(95, 105) * 4h = 400
	if elite.EstimatedCost.Min != 320 || elite.EstimatedCost.Max != 3000 {
		t.Fatalf("unexpected cost %+v", elite.EstimatedCost)
	}
}

func TestSearch_BaselineCostIsFloor(t *testing.T) {
	got := sampleEngine().Search("2", nil, nil)
	assertIDs(t, shopIDs(got), []types.ID{"1", "3"})
	// labour = 85 * 2h = 170; 136 and 255 both fall under the baseline.
	if got[0].EstimatedCost != (garage.CostRange{Min: 150, Max: 800}) {
		t.Fatalf("unexpected cost %+v", got[0].EstimatedCost)
	}
}

func TestMatchScore_CoverageFraction(t *testing.T) {
	required := []string{"A", "B", "C"}
	issue := garage.Issue{ID: "i", RequiredSpecializations: required, EstimatedHours: 1}
	for m := 0; m <= len(required); m++ {
		shop := garage.Shop{ID: "s", Services: required[:m]}
		want := 100 * float64(m) / float64(len(required))
		if got := MatchScore(shop, issue); !near(got, want) {
			t.Fatalf("m=%d: expected %v, got %v", m, want, got)
		}
	}
}

func TestMatchScore_NoRequirementsIsFullMatch(t *testing.T) {
	if got := MatchScore(garage.Shop{}, garage.Issue{}); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestSearch_StaffFilterIndependentOfScore(t *testing.T) {
	issue := garage.Issue{ID: "i", RequiredSpecializations: []string{"A", "B"}, EstimatedHours: 1}
	staffed := garage.Shop{
		ID:        "staffed",
		Rating:    4,
		Services:  nil,
		Mechanics: []garage.Mechanic{{ID: "m", Specializations: []string{"B"}, HourlyRate: 100}},
	}
	unstaffed := garage.Shop{
		ID:        "unstaffed",
		Rating:    5,
		Services:  []string{"A", "B"},
		Mechanics: []garage.Mechanic{{ID: "n", Specializations: []string{"Z"}, HourlyRate: 100}},
	}
	got := NewEngine([]garage.Shop{unstaffed, staffed}, []garage.Issue{issue}).Search("i", nil, nil)
	assertIDs(t, shopIDs(got), []types.ID{"staffed"})
	if got[0].MatchScore != 0 {
		t.Fatalf("expected zero coverage score, got %v", got[0].MatchScore)
	}
}

func TestSearch_TiesKeepInputOrder(t *testing.T) {
	issue := garage.Issue{ID: "i", RequiredSpecializations: []string{"A"}, EstimatedHours: 1}
	mk := func(id types.ID) garage.Shop {
		return garage.Shop{
			ID:        id,
			Rating:    4,
			Services:  []string{"A"},
			Mechanics: []garage.Mechanic{{ID: "m", Specializations: []string{"A"}}},
		}
	}
	shops := []garage.Shop{mk("c"), mk("a"), mk("b")}
	got := NewEngine(shops, []garage.Issue{issue}).Search("i", nil, nil)
	assertIDs(t, shopIDs(got), []types.ID{"c", "a", "b"})
}

func TestSearch_FiltersAreConjunctive(t *testing.T) {
	e := sampleEngine()
	cases := []struct {
		name    string
		filters Filters
		want    []types.ID
	}{
		{"no filters", Filters{}, []types.ID{"4", "1", "2"}},
		{"premium only", Filters{PriceTiers: []garage.PriceTier{garage.PricePremium}}, []types.ID{"4", "2"}},
		{"min rating", Filters{MinRating: 4.85}, []types.ID{"2"}},
		{"single feature", Filters{Features: []string{"Warranty"}}, []types.ID{"4", "1", "2"}},
		{"all features required", Filters{Features: []string{"Warranty", "Loaner Cars"}}, []types.ID{"4"}},
		{"all three pass", Filters{
			PriceTiers: []garage.PriceTier{garage.PricePremium},
			MinRating:  4.85,
			Features:   []string{"Warranty"},
		}, []types.ID{"2"}},
		{"one violated", Filters{
			PriceTiers: []garage.PriceTier{garage.PricePremium},
			MinRating:  4.85,
			Features:   []string{"Loaner Cars"},
		}, []types.ID{}},
		{"tier violated", Filters{
			PriceTiers: []garage.PriceTier{garage.PriceBudget},
			Features:   []string{"Warranty"},
		}, []types.ID{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := tc.filters
			assertIDs(t, shopIDs(e.Search("1", nil, &f)), tc.want)
		})
	}
}

func TestOrderByDistance_LocationOutranksScore(t *testing.T) {
	results := sampleEngine().Search("1", nil, nil)
	assertIDs(t, shopIDs(results), []types.ID{"4", "1", "2"})

	// Standing at Downtown Transmission: the lowest scored shop is closest.
	OrderByDistance(results, types.Point{Lat: 39.7901, Lng: -89.6440})
	if results[0].Shop.ID != "2" {
		t.Fatalf("expected closest shop first, got %v", shopIDs(results))
	}
	for i := 1; i < len(results); i++ {
		if *results[i-1].DistanceKm > *results[i].DistanceKm {
			t.Fatalf("distances not ascending: %v then %v", *results[i-1].DistanceKm, *results[i].DistanceKm)
		}
	}
	if *results[0].DistanceKm != 0 || *results[0].TravelMinutes != 0 {
		t.Fatalf("expected zero distance at origin, got %v km", *results[0].DistanceKm)
	}
}

func TestSearchBySymptoms(t *testing.T) {
	e := sampleEngine()
	gas := vehicle.Vehicle{ID: "v", FuelType: vehicle.FuelGasoline}
	ev := vehicle.Vehicle{ID: "e", FuelType: vehicle.FuelElectric}

	issueIDs := func(m []IssueMatches) []types.ID {
		ids := make([]types.ID, len(m))
		for i, x := range m {
			ids[i] = x.Issue.ID
		}
		return ids
	}

	// shared symptom, catalog order
	assertIDs(t, issueIDs(e.SearchBySymptoms(gas, []string{"VEHICLE PULLS"})), []types.ID{"2", "6"})
	// reported text containing a known symptom
	assertIDs(t, issueIDs(e.SearchBySymptoms(gas, []string{"my brake warning light is on"})), []types.ID{"2"})
	// engine issues do not apply to electric vehicles
	assertIDs(t, issueIDs(e.SearchBySymptoms(ev, []string{"engine won't start"})), []types.ID{})
	assertIDs(t, issueIDs(e.SearchBySymptoms(ev, []string{"dead battery"})), []types.ID{"3"})
	// blanks never match everything
	assertIDs(t, issueIDs(e.SearchBySymptoms(gas, []string{"", "  "})), []types.ID{})

	got := e.SearchBySymptoms(gas, []string{"rough idling"})
	if len(got) != 1 {
		t.Fatalf("expected one issue, got %d", len(got))
	}
	assertIDs(t, shopIDs(got[0].Results), shopIDs(e.Search("1", &gas, nil)))
}

func TestFindMechanics_OrderedByRatingAndExperience(t *testing.T) {
	got := sampleEngine().FindMechanics([]string{"diag"})
	want := []struct{ shop, mechanic types.ID }{
		{"1", "2"}, {"4", "2"}, // Sarah: 4.9 * 0.6 + 12/30 * 0.4
		{"1", "1"}, {"4", "1"}, // Mike
		{"2", "4"}, // Jennifer
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Shop.ID != w.shop || got[i].Mechanic.ID != w.mechanic {
			t.Fatalf("position %d: expected shop %s mechanic %s, got shop %s mechanic %s",
				i, w.shop, w.mechanic, got[i].Shop.ID, got[i].Mechanic.ID)
		}
	}

	if n := len(sampleEngine().FindMechanics([]string{" "})); n != 0 {
		t.Fatalf("expected no matches for blank term, got %d", n)
	}
}
