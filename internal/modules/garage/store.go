// README: Catalog stores backed by PostgreSQL. Tag sets are text[]; nested
// mechanics and opening hours are jsonb.
package garage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"garagehub/internal/modules/vehicle"
	"garagehub/internal/types"
)

type ShopStore struct {
	db *pgxpool.Pool
}

func NewShopStore(db *pgxpool.Pool) *ShopStore {
	return &ShopStore{db: db}
}

const selectShop = `
	SELECT id, name, address, city, state, zip, phone, email, website,
	       lat, lng, rating, review_count, services, mechanics,
	       price_tier, features, hours
	FROM shops`

func (s *ShopStore) List(ctx context.Context, f ShopFilter) ([]Shop, error) {
	rows, err := s.db.Query(ctx, selectShop+`
	WHERE ($1 = '' OR lower(city) = lower($1))
	ORDER BY position, id`, f.City)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *shop)
	}
	return out, rows.Err()
}

func (s *ShopStore) Get(ctx context.Context, id types.ID) (*Shop, error) {
	shop, err := scanShop(s.db.QueryRow(ctx, selectShop+` WHERE id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return shop, err
}

func (s *ShopStore) Upsert(ctx context.Context, shop *Shop) error {
	mechanics, err := json.Marshal(shop.Mechanics)
	if err != nil {
		return err
	}
	hours, err := json.Marshal(shop.Hours)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO shops (
			id, name, address, city, state, zip, phone, email, website,
			lat, lng, rating, review_count, services, mechanics,
			price_tier, features, hours
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15,
			$16, $17, $18
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip = EXCLUDED.zip,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			website = EXCLUDED.website,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			rating = EXCLUDED.rating,
			review_count = EXCLUDED.review_count,
			services = EXCLUDED.services,
			mechanics = EXCLUDED.mechanics,
			price_tier = EXCLUDED.price_tier,
			features = EXCLUDED.features,
			hours = EXCLUDED.hours`,
		string(shop.ID), shop.Name, shop.Address, shop.City, shop.State, shop.Zip,
		shop.Phone, shop.Email, shop.Website,
		shop.Location.Lat, shop.Location.Lng, shop.Rating, shop.ReviewCount,
		nonNil(shop.Services), mechanics,
		string(shop.PriceTier), nonNil(shop.Features), hours,
	)
	return err
}

func (s *ShopStore) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM shops WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShop(row pgx.Row) (*Shop, error) {
	var shop Shop
	var tier string
	var mechanics, hours []byte
	err := row.Scan(
		&shop.ID, &shop.Name, &shop.Address, &shop.City, &shop.State, &shop.Zip,
		&shop.Phone, &shop.Email, &shop.Website,
		&shop.Location.Lat, &shop.Location.Lng, &shop.Rating, &shop.ReviewCount,
		&shop.Services, &mechanics, &tier, &shop.Features, &hours,
	)
	if err != nil {
		return nil, err
	}
	shop.PriceTier = PriceTier(tier)
	if err := json.Unmarshal(mechanics, &shop.Mechanics); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hours, &shop.Hours); err != nil {
		return nil, err
	}
	return &shop, nil
}

type IssueStore struct {
	db *pgxpool.Pool
}

func NewIssueStore(db *pgxpool.Pool) *IssueStore {
	return &IssueStore{db: db}
}

const selectIssue = `
	SELECT id, name, description, symptoms, urgency, cost_min, cost_max,
	       estimated_hours, required_specializations, compatible_fuels
	FROM issues`

func (s *IssueStore) List(ctx context.Context, f IssueFilter) ([]Issue, error) {
	rows, err := s.db.Query(ctx, selectIssue+`
	WHERE ($1 = '' OR $1 = ANY(compatible_fuels))
	ORDER BY position, id`, string(f.Fuel))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *issue)
	}
	return out, rows.Err()
}

func (s *IssueStore) Get(ctx context.Context, id types.ID) (*Issue, error) {
	issue, err := scanIssue(s.db.QueryRow(ctx, selectIssue+` WHERE id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return issue, err
}

func (s *IssueStore) Upsert(ctx context.Context, i *Issue) error {
	fuels := make([]string, len(i.CompatibleFuels))
	for n, f := range i.CompatibleFuels {
		fuels[n] = string(f)
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO issues (
			id, name, description, symptoms, urgency, cost_min, cost_max,
			estimated_hours, required_specializations, compatible_fuels
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			symptoms = EXCLUDED.symptoms,
			urgency = EXCLUDED.urgency,
			cost_min = EXCLUDED.cost_min,
			cost_max = EXCLUDED.cost_max,
			estimated_hours = EXCLUDED.estimated_hours,
			required_specializations = EXCLUDED.required_specializations,
			compatible_fuels = EXCLUDED.compatible_fuels`,
		string(i.ID), i.Name, i.Description, nonNil(i.Symptoms), string(i.Urgency),
		i.EstimatedCost.Min, i.EstimatedCost.Max, i.EstimatedHours,
		nonNil(i.RequiredSpecializations), fuels,
	)
	return err
}

func (s *IssueStore) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM issues WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanIssue(row pgx.Row) (*Issue, error) {
	var i Issue
	var urgency string
	var fuels []string
	err := row.Scan(
		&i.ID, &i.Name, &i.Description, &i.Symptoms, &urgency,
		&i.EstimatedCost.Min, &i.EstimatedCost.Max, &i.EstimatedHours,
		&i.RequiredSpecializations, &fuels,
	)
	if err != nil {
		return nil, err
	}
	i.Urgency = Urgency(urgency)
	for _, f := range fuels {
		i.CompatibleFuels = append(i.CompatibleFuels, vehicle.FuelType(f))
	}
	return &i, nil
}

// nonNil keeps NOT NULL text[] columns happy when a slice was never set.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
