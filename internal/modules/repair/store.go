// README: Repair store backed by PostgreSQL; parts are jsonb.
package repair

import (
	"context"
	"encoding/json"
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

const selectRepair = `
	SELECT id, vehicle_id, service_type, description, labor_cost, parts, total_cost,
	       date, status, estimated_hours, actual_hours,
	       mechanic_id, mechanic_points, mechanic_rating, mechanic_review,
	       owner_id, owner_points, owner_rating, owner_review
	FROM repairs`

func (s *Store) List(ctx context.Context, f Filter) ([]Transaction, error) {
	rows, err := s.db.Query(ctx, selectRepair+`
	WHERE ($1 = '' OR mechanic_id = $1)
	  AND ($2 = '' OR owner_id = $2)
	  AND ($3 = '' OR vehicle_id = $3)
	ORDER BY date DESC, id`,
		string(f.MechanicID), string(f.OwnerID), string(f.VehicleID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanRepair(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Transaction, error) {
	t, err := scanRepair(s.db.QueryRow(ctx, selectRepair+` WHERE id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *Store) Upsert(ctx context.Context, t *Transaction) error {
	parts, err := json.Marshal(t.Parts)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO repairs (
			id, vehicle_id, service_type, description, labor_cost, parts, total_cost,
			date, status, estimated_hours, actual_hours,
			mechanic_id, mechanic_points, mechanic_rating, mechanic_review,
			owner_id, owner_points, owner_rating, owner_review
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18, $19
		)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			actual_hours = EXCLUDED.actual_hours,
			mechanic_rating = EXCLUDED.mechanic_rating,
			mechanic_review = EXCLUDED.mechanic_review,
			owner_rating = EXCLUDED.owner_rating,
			owner_review = EXCLUDED.owner_review`,
		string(t.ID), string(t.VehicleID), t.ServiceType, t.Description, t.LaborCost, parts, t.TotalCost,
		t.Date, string(t.Status), t.EstimatedHours, t.ActualHours,
		string(t.Provider.MechanicID), t.Provider.Points, t.Provider.Rating, t.Provider.Review,
		string(t.Counterparty.OwnerID), t.Counterparty.Points, t.Counterparty.Rating, t.Counterparty.Review,
	)
	return err
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM repairs WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRepair(row pgx.Row) (*Transaction, error) {
	var t Transaction
	var status string
	var parts []byte
	err := row.Scan(
		&t.ID, &t.VehicleID, &t.ServiceType, &t.Description, &t.LaborCost, &parts, &t.TotalCost,
		&t.Date, &status, &t.EstimatedHours, &t.ActualHours,
		&t.Provider.MechanicID, &t.Provider.Points, &t.Provider.Rating, &t.Provider.Review,
		&t.Counterparty.OwnerID, &t.Counterparty.Points, &t.Counterparty.Rating, &t.Counterparty.Review,
	)
	if err != nil {
		return nil, err
	}
	t.Status = Status(status)
	if err := json.Unmarshal(parts, &t.Parts); err != nil {
		return nil, err
	}
	return &t, nil
}
