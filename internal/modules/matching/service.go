// README: Search service loads the catalog, runs the engine and applies location ordering.
package matching

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"garagehub/internal/modules/garage"
	"garagehub/internal/modules/location"
	"garagehub/internal/modules/vehicle"
	"garagehub/internal/types"
)

var (
	ErrBadRequest           = errors.New("bad request")
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrDiagnosisUnavailable = errors.New("diagnosis is not configured")
)

type VehicleLookup interface {
	Get(ctx context.Context, id types.ID) (*vehicle.Vehicle, error)
}

// SymptomExtractor maps a free-text problem description onto known symptoms.
type SymptomExtractor interface {
	ExtractSymptoms(ctx context.Context, description string, known []string) ([]string, error)
}

type Service struct {
	shops     garage.ShopRepository
	issues    garage.IssueRepository
	vehicles  VehicleLookup
	index     location.Index
	extractor SymptomExtractor
	log       logrus.FieldLogger
}

// NewService wires the search collaborators. extractor may be nil, in which
// case Diagnose reports ErrDiagnosisUnavailable.
func NewService(
	shops garage.ShopRepository,
	issues garage.IssueRepository,
	vehicles VehicleLookup,
	index location.Index,
	extractor SymptomExtractor,
	log logrus.FieldLogger,
) *Service {
	return &Service{shops: shops, issues: issues, vehicles: vehicles, index: index, extractor: extractor, log: log}
}

type SearchQuery struct {
	IssueID   types.ID
	VehicleID types.ID
	Filters   *Filters
	// Origin switches the final order to ascending distance.
	Origin *types.Point
	// RadiusKm drops shops farther than this from Origin. Zero disables it.
	RadiusKm float64
}

type Diagnosis struct {
	Symptoms []string       `json:"symptoms"`
	Matches  []IssueMatches `json:"matches"`
}

type NearbyShop struct {
	Shop          garage.Shop `json:"shop"`
	DistanceKm    float64     `json:"distance_km"`
	TravelMinutes int         `json:"travel_minutes"`
}

func (s *Service) engine(ctx context.Context) (*Engine, error) {
	shops, err := s.shops.List(ctx, garage.ShopFilter{})
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	issues, err := s.issues.List(ctx, garage.IssueFilter{})
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return NewEngine(shops, issues), nil
}

func (s *Service) vehicle(ctx context.Context, id types.ID) (*vehicle.Vehicle, error) {
	v, err := s.vehicles.Get(ctx, id)
	if errors.Is(err, vehicle.ErrNotFound) {
		return nil, ErrVehicleNotFound
	}
	return v, err
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Result, error) {
	if q.IssueID == "" || !validRadius(q.RadiusKm) || !validOrigin(q.Origin) {
		return nil, ErrBadRequest
	}
	var v *vehicle.Vehicle
	if q.VehicleID != "" {
		found, err := s.vehicle(ctx, q.VehicleID)
		if err != nil {
			return nil, err
		}
		v = found
	}
	e, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	results := e.Search(q.IssueID, v, q.Filters)
	if q.Origin == nil {
		return results, nil
	}
	if q.RadiusKm > 0 {
		results, err = s.withinRadius(ctx, results, *q.Origin, q.RadiusKm)
		if err != nil {
			return nil, err
		}
	}
	OrderByDistance(results, *q.Origin)
	s.log.WithFields(logrus.Fields{"issue_id": q.IssueID, "results": len(results)}).Debug("search by location")
	return results, nil
}

// OrderByDistance annotates each result with distance and travel time from
// origin, then re-sorts ascending by distance. Location outranks relevance.
func OrderByDistance(results []Result, origin types.Point) {
	for i := range results {
		km := location.DistanceKm(origin, results[i].Shop.Location)
		minutes := location.TravelMinutes(km)
		results[i].DistanceKm = &km
		results[i].TravelMinutes = &minutes
	}
	location.SortByDistance(results, func(r Result) float64 { return *r.DistanceKm })
}

func (s *Service) withinRadius(ctx context.Context, results []Result, origin types.Point, radiusKm float64) ([]Result, error) {
	near, err := s.index.Within(ctx, origin, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("geo index: %w", err)
	}
	keep := make(map[types.ID]bool, len(near))
	for _, n := range near {
		keep[n.ID] = true
	}
	out := results[:0]
	for _, r := range results {
		if keep[r.Shop.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) SearchBySymptoms(ctx context.Context, vehicleID types.ID, symptoms []string, origin *types.Point) ([]IssueMatches, error) {
	if vehicleID == "" || len(symptoms) == 0 || !validOrigin(origin) {
		return nil, ErrBadRequest
	}
	v, err := s.vehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	e, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	matches := e.SearchBySymptoms(*v, symptoms)
	if origin != nil {
		for _, m := range matches {
			OrderByDistance(m.Results, *origin)
		}
	}
	return matches, nil
}

// CanDiagnose reports whether a symptom extractor is configured.
func (s *Service) CanDiagnose() bool {
	return s.extractor != nil
}

// Diagnose extracts symptoms from a free-text description and runs a
// symptom search with them.
func (s *Service) Diagnose(ctx context.Context, vehicleID types.ID, description string, origin *types.Point) (*Diagnosis, error) {
	if s.extractor == nil {
		return nil, ErrDiagnosisUnavailable
	}
	if vehicleID == "" || description == "" || !validOrigin(origin) {
		return nil, ErrBadRequest
	}
	issues, err := s.issues.List(ctx, garage.IssueFilter{})
	if err != nil {
		return nil, err
	}
	symptoms, err := s.extractor.ExtractSymptoms(ctx, description, KnownSymptoms(issues))
	if err != nil {
		return nil, fmt.Errorf("extract symptoms: %w", err)
	}
	s.log.WithFields(logrus.Fields{"vehicle_id": vehicleID, "symptoms": len(symptoms)}).Info("symptoms extracted")
	d := &Diagnosis{Symptoms: symptoms, Matches: []IssueMatches{}}
	if len(symptoms) == 0 {
		return d, nil
	}
	d.Matches, err = s.SearchBySymptoms(ctx, vehicleID, symptoms, origin)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) FindMechanics(ctx context.Context, specializations []string) ([]MechanicMatch, error) {
	e, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	return e.FindMechanics(specializations), nil
}

// Nearby lists shops within radiusKm of origin, closest first.
func (s *Service) Nearby(ctx context.Context, origin types.Point, radiusKm float64) ([]NearbyShop, error) {
	if radiusKm <= 0 || !validRadius(radiusKm) || !origin.Valid() {
		return nil, ErrBadRequest
	}
	near, err := s.index.Within(ctx, origin, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("geo index: %w", err)
	}
	out := make([]NearbyShop, 0, len(near))
	for _, n := range near {
		shop, err := s.shops.Get(ctx, n.ID)
		if errors.Is(err, garage.ErrNotFound) {
			// index entry outlived the shop
			continue
		}
		if err != nil {
			return nil, err
		}
		km := location.DistanceKm(origin, shop.Location)
		out = append(out, NearbyShop{Shop: *shop, DistanceKm: km, TravelMinutes: location.TravelMinutes(km)})
	}
	location.SortByDistance(out, func(n NearbyShop) float64 { return n.DistanceKm })
	return out, nil
}

// KnownSymptoms returns the catalog's distinct symptoms, sorted.
func KnownSymptoms(issues []garage.Issue) []string {
	seen := make(map[string]bool)
	var out []string
	for _, i := range issues {
		for _, s := range i.Symptoms {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}

// validRadius accepts zero (no radius) and any finite positive distance.
func validRadius(km float64) bool {
	return km >= 0 && !math.IsInf(km, 1)
}

func validOrigin(p *types.Point) bool {
	return p == nil || p.Valid()
}
