// README: Appointment store backed by PostgreSQL.
package appointment

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

const selectAppointment = `
	SELECT id, vehicle_id, mechanic_id, owner_id, scheduled_at, service_type,
	       description, status, status_version, estimated_cost, estimated_hours, created_at
	FROM appointments`

func (s *Store) Create(ctx context.Context, a *Appointment) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO appointments (
			id, vehicle_id, mechanic_id, owner_id, scheduled_at, service_type,
			description, status, status_version, estimated_cost, estimated_hours, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		string(a.ID), string(a.VehicleID), string(a.MechanicID), string(a.OwnerID),
		a.ScheduledAt, a.ServiceType, a.Description, string(a.Status), a.StatusVersion,
		a.EstimatedCost, a.EstimatedHours, a.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Appointment, error) {
	a, err := scanAppointment(s.db.QueryRow(ctx, selectAppointment+` WHERE id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *Store) List(ctx context.Context, f Filter) ([]Appointment, error) {
	rows, err := s.db.Query(ctx, selectAppointment+`
	WHERE ($1 = '' OR mechanic_id = $1)
	  AND ($2 = '' OR owner_id = $2)
	ORDER BY scheduled_at, id`, string(f.MechanicID), string(f.OwnerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE appointments
		SET status = $1,
		    status_version = status_version + 1
		WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to), string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO appointment_events (appointment_id, from_status, to_status, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		string(e.AppointmentID), string(e.FromStatus), string(e.ToStatus), toStringPtr(e.ActorID), e.CreatedAt,
	)
	return err
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var status string
	err := row.Scan(
		&a.ID, &a.VehicleID, &a.MechanicID, &a.OwnerID, &a.ScheduledAt, &a.ServiceType,
		&a.Description, &status, &a.StatusVersion, &a.EstimatedCost, &a.EstimatedHours, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Status = Status(status)
	return &a, nil
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
