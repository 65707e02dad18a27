// README: AI diagnosis allowance; each user gets a monthly number of model-backed diagnoses.
package aiusage

import (
	"context"
	"errors"

	"garagehub/internal/types"
)

// ErrInsufficientTokens is returned when a user has no diagnoses left for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of diagnoses granted per month.
const DefaultTokens = 100

// monthLayout keys allowances by calendar month ("2026-03").
const monthLayout = "2006-01"

// Repository persists per-user allowances. month is always in monthLayout.
type Repository interface {
	// UseToken deducts one token, resetting to allowance first when the row
	// belongs to an earlier month. Returns ErrInsufficientTokens when nothing
	// was deducted, which includes a missing row.
	UseToken(ctx context.Context, uid types.ID, month string, allowance int) error
	// EnsureUser creates the row with a full allowance; an existing row is kept.
	EnsureUser(ctx context.Context, uid types.ID, month string, allowance int) error
	// Remaining reports tokens left and the month they belong to.
	Remaining(ctx context.Context, uid types.ID) (tokens int, month string, found bool, err error)
}
