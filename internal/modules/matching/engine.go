// README: Matching engine ranks shops against an issue. Pure; callers load the catalog.
package matching

import (
	"sort"
	"strings"

	"garagehub/internal/modules/garage"
	"garagehub/internal/modules/vehicle"
	"garagehub/internal/types"
)

type Engine struct {
	shops  []garage.Shop
	issues []garage.Issue
}

func NewEngine(shops []garage.Shop, issues []garage.Issue) *Engine {
	return &Engine{shops: shops, issues: issues}
}

func (e *Engine) issue(id types.ID) (garage.Issue, bool) {
	for _, i := range e.issues {
		if i.ID == id {
			return i, true
		}
	}
	return garage.Issue{}, false
}

// Search returns shops with at least one qualified mechanic for the issue,
// filtered and sorted by blended score. Ties keep catalog order. An unknown
// issue yields no results. The vehicle does not influence ranking.
func (e *Engine) Search(issueID types.ID, _ *vehicle.Vehicle, f *Filters) []Result {
	issue, ok := e.issue(issueID)
	if !ok {
		return []Result{}
	}

	results := make([]Result, 0, len(e.shops))
	for _, shop := range e.shops {
		staff := QualifiedStaff(shop, issue)
		if len(staff) == 0 {
			continue
		}
		r := Result{
			Shop:          shop,
			MatchingStaff: staff,
			MatchScore:    MatchScore(shop, issue),
			EstimatedCost: EstimateCost(issue, staff),
		}
		if f != nil && !f.Accept(shop) {
			continue
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(a, b int) bool {
		return BlendedScore(results[a]) > BlendedScore(results[b])
	})
	return results
}

// SearchBySymptoms finds issues compatible with the vehicle's fuel type whose
// symptoms overlap the reported ones, then searches each of them.
func (e *Engine) SearchBySymptoms(v vehicle.Vehicle, symptoms []string) []IssueMatches {
	reported := normalizeTerms(symptoms)
	out := []IssueMatches{}
	if len(reported) == 0 {
		return out
	}
	for _, issue := range e.issues {
		if !issue.CompatibleWith(v.FuelType) || !symptomsOverlap(issue.Symptoms, reported) {
			continue
		}
		out = append(out, IssueMatches{Issue: issue, Results: e.Search(issue.ID, &v, nil)})
	}
	return out
}

// FindMechanics lists every shop mechanic holding a specialization that
// contains one of the requested terms, best rated and most experienced first.
func (e *Engine) FindMechanics(specializations []string) []MechanicMatch {
	terms := normalizeTerms(specializations)
	out := []MechanicMatch{}
	if len(terms) == 0 {
		return out
	}
	for _, shop := range e.shops {
		for _, m := range shop.Mechanics {
			if hasSpecialization(m, terms) {
				out = append(out, MechanicMatch{Shop: shop, Mechanic: m})
			}
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return mechanicScore(out[a].Mechanic) > mechanicScore(out[b].Mechanic)
	})
	return out
}

// QualifiedStaff returns the mechanics sharing at least one specialization
// with the issue's required set.
func QualifiedStaff(shop garage.Shop, issue garage.Issue) []garage.Mechanic {
	required := toSet(issue.RequiredSpecializations)
	var staff []garage.Mechanic
	for _, m := range shop.Mechanics {
		for _, s := range m.Specializations {
			if required[s] {
				staff = append(staff, m)
				break
			}
		}
	}
	return staff
}

// MatchScore is the percentage of required specializations covered by the
// shop's service list. An issue with no requirements is a full match.
func MatchScore(shop garage.Shop, issue garage.Issue) float64 {
	required := issue.RequiredSpecializations
	if len(required) == 0 {
		return 100
	}
	services := toSet(shop.Services)
	covered := 0
	for _, r := range required {
		if services[r] {
			covered++
		}
	}
	return float64(covered) / float64(len(required)) * 100
}

// EstimateCost widens the issue's baseline range with the staff's labour
// estimate. The baseline is a floor on both ends.
func EstimateCost(issue garage.Issue, staff []garage.Mechanic) garage.CostRange {
	if len(staff) == 0 {
		return issue.EstimatedCost
	}
	var total float64
	for _, m := range staff {
		total += m.HourlyRate
	}
	labor := total / float64(len(staff)) * issue.EstimatedHours
	return garage.CostRange{
		Min: max(issue.EstimatedCost.Min, labor*laborMinFactor),
		Max: max(issue.EstimatedCost.Max, labor*laborMaxFactor),
	}
}

func BlendedScore(r Result) float64 {
	return scoreWeight*r.MatchScore + ratingWeight*(r.Shop.Rating*ratingScale)
}

// Accept reports whether the shop passes every active filter.
func (f Filters) Accept(shop garage.Shop) bool {
	if len(f.PriceTiers) > 0 && !containsTier(f.PriceTiers, shop.PriceTier) {
		return false
	}
	if shop.Rating < f.MinRating {
		return false
	}
	if len(f.Features) > 0 {
		have := toSet(shop.Features)
		for _, want := range f.Features {
			if !have[want] {
				return false
			}
		}
	}
	return true
}

func containsTier(tiers []garage.PriceTier, t garage.PriceTier) bool {
	for _, v := range tiers {
		if v == t {
			return true
		}
	}
	return false
}

func mechanicScore(m garage.Mechanic) float64 {
	return m.Rating*mechanicRatingWeight + float64(m.ExperienceYears)/experienceCeilingYears*mechanicExperienceWeight
}

func hasSpecialization(m garage.Mechanic, terms []string) bool {
	for _, s := range m.Specializations {
		s = strings.ToLower(s)
		for _, t := range terms {
			if strings.Contains(s, t) {
				return true
			}
		}
	}
	return false
}

// symptomsOverlap matches case-insensitively in both directions, so "brake"
// finds "Brake warning light" and "my engine won't start today" finds
// "Engine won't start".
func symptomsOverlap(known, reported []string) bool {
	for _, k := range known {
		k = strings.ToLower(k)
		for _, r := range reported {
			if strings.Contains(k, r) || strings.Contains(r, k) {
				return true
			}
		}
	}
	return false
}

// normalizeTerms lower-cases and trims terms, dropping blanks: an empty term
// would otherwise be a substring of everything.
func normalizeTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
