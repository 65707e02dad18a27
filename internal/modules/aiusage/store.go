package aiusage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"garagehub/internal/types"
)

// Store handles ai_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseToken checks and deducts in one statement so concurrent requests cannot
// overdraw the allowance.
func (s *Store) UseToken(ctx context.Context, uid types.ID, month string, allowance int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, month, allowance, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

func (s *Store) EnsureUser(ctx context.Context, uid types.ID, month string, allowance int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, allowance, month)
	return err
}

func (s *Store) Remaining(ctx context.Context, uid types.ID) (int, string, bool, error) {
	var (
		tokens int
		month  string
	)
	err := s.db.QueryRow(ctx,
		"SELECT tokens_remaining, last_reset_month FROM ai_usage WHERE uid = $1", uid,
	).Scan(&tokens, &month)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, err
	}
	return tokens, month, true, nil
}
