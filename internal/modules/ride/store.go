// README: Ride store backed by PostgreSQL.
package ride

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"garagehub/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const selectRide = `
	SELECT id, rider_id, date, pickup, dropoff, distance_km, fare,
	       driver_name, vehicle_number, rating, points_earned
	FROM rides`

func (s *Store) List(ctx context.Context, f Filter) ([]Ride, error) {
	rows, err := s.db.Query(ctx, selectRide+`
	WHERE ($1 = '' OR rider_id = $1)
	ORDER BY date DESC, id`, string(f.RiderID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ride
	for rows.Next() {
		r, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Ride, error) {
	r, err := scanRide(s.db.QueryRow(ctx, selectRide+` WHERE id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

func (s *Store) Upsert(ctx context.Context, r *Ride) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO rides (
			id, rider_id, date, pickup, dropoff, distance_km, fare,
			driver_name, vehicle_number, rating, points_earned
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			rating = EXCLUDED.rating`,
		string(r.ID), string(r.RiderID), r.Date, r.Pickup, r.Dropoff, r.DistanceKm, r.Fare,
		r.DriverName, r.VehicleNumber, r.Rating, r.PointsEarned,
	)
	return err
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM rides WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRide(row pgx.Row) (*Ride, error) {
	var r Ride
	err := row.Scan(
		&r.ID, &r.RiderID, &r.Date, &r.Pickup, &r.Dropoff, &r.DistanceKm, &r.Fare,
		&r.DriverName, &r.VehicleNumber, &r.Rating, &r.PointsEarned,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
