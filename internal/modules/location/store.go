// README: Shop geo index backed by Redis GEO.
package location

import (
	"context"

	"github.com/redis/go-redis/v9"

	"garagehub/internal/types"
)

const shopGeoKey = "garagehub:shops:geo"

// Index keeps shop coordinates for radius queries.
type Index interface {
	Add(ctx context.Context, id types.ID, p types.Point) error
	Remove(ctx context.Context, id types.ID) error
	Within(ctx context.Context, origin types.Point, radiusKm float64) ([]Nearby, error)
}

// Store is the Redis GEO implementation of Index.
type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) Add(ctx context.Context, id types.ID, p types.Point) error {
	return s.redis.GeoAdd(ctx, shopGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
}

func (s *Store) Remove(ctx context.Context, id types.ID) error {
	return s.redis.ZRem(ctx, shopGeoKey, string(id)).Err()
}

// Within returns members inside radiusKm of origin, closest first. Distances
// come from Redis and are only used for the radius cut; callers recompute with
// DistanceKm for display.
func (s *Store) Within(ctx context.Context, origin types.Point, radiusKm float64) ([]Nearby, error) {
	results, err := s.redis.GeoSearchLocation(ctx, shopGeoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  origin.Lng,
			Latitude:   origin.Lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithDist: true,
	}).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Nearby, len(results))
	for i, r := range results {
		out[i] = Nearby{ID: types.ID(r.Name), Distance: r.Dist}
	}
	return out, nil
}
