// README: User store backed by PostgreSQL.
package user

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"garagehub/internal/modules/points"
	"garagehub/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const userColumns = `id, name, email, phone, role, total_points, member_since, profile`

func (s *Store) List(ctx context.Context, f Filter) ([]User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users
		WHERE ($1 = '' OR role = $1)
		ORDER BY member_since, id`, string(f.Role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id types.ID) (*User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *Store) Upsert(ctx context.Context, u *User) error {
	var profile []byte
	if u.Profile != nil {
		b, err := json.Marshal(u.Profile)
		if err != nil {
			return err
		}
		profile = b
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, name, email, phone, role, total_points, member_since, profile)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			role = EXCLUDED.role,
			total_points = EXCLUDED.total_points,
			profile = EXCLUDED.profile`,
		string(u.ID), u.Name, u.Email, u.Phone, string(u.Role), u.TotalPoints, u.MemberSince, profile,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

// AddPoints updates the balance in one statement so concurrent awards do not
// overwrite each other.
func (s *Store) AddPoints(ctx context.Context, id types.ID, delta int) (*User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `
		UPDATE users SET total_points = GREATEST(0, total_points + $2)
		WHERE id = $1
		RETURNING `+userColumns, string(id), delta))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var role string
	var profile []byte
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &role, &u.TotalPoints, &u.MemberSince, &profile); err != nil {
		return nil, err
	}
	u.Role = points.Role(role)
	if len(profile) > 0 {
		u.Profile = &MechanicProfile{}
		if err := json.Unmarshal(profile, u.Profile); err != nil {
			return nil, err
		}
	}
	return &u, nil
}
