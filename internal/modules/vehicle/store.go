// README: Vehicle store backed by PostgreSQL.
package vehicle

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"garagehub/internal/types"
)

const uniqueViolation = "23505"

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const selectVehicle = `
	SELECT id, owner_id, make, model, year, fuel_type,
	       license_plate, vin, mileage, color, created_at
	FROM vehicles`

func (s *Store) List(ctx context.Context, f Filter) ([]Vehicle, error) {
	rows, err := s.db.Query(ctx, selectVehicle+`
	WHERE ($1 = '' OR owner_id = $1)
	ORDER BY created_at, id`, string(f.OwnerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Vehicle, error) {
	v, err := scanVehicle(s.db.QueryRow(ctx, selectVehicle+` WHERE id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *Store) Upsert(ctx context.Context, v *Vehicle) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO vehicles (
			id, owner_id, make, model, year, fuel_type,
			license_plate, vin, mileage, color, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			make = EXCLUDED.make,
			model = EXCLUDED.model,
			year = EXCLUDED.year,
			fuel_type = EXCLUDED.fuel_type,
			license_plate = EXCLUDED.license_plate,
			vin = EXCLUDED.vin,
			mileage = EXCLUDED.mileage,
			color = EXCLUDED.color`,
		string(v.ID), string(v.OwnerID), v.Make, v.Model, v.Year, string(v.FuelType),
		v.LicensePlate, v.VIN, v.Mileage, v.Color, v.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "vehicles_plate_key":
			return ErrDuplicatePlate
		case "vehicles_vin_key":
			return ErrDuplicateVIN
		}
	}
	return err
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanVehicle(row pgx.Row) (*Vehicle, error) {
	var v Vehicle
	var fuel string
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &fuel,
		&v.LicensePlate, &v.VIN, &v.Mileage, &v.Color, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.FuelType = FuelType(fuel)
	return &v, nil
}
