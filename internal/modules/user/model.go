// README: User accounts, mechanic profiles and the rendered view with derived rank.
package user

import (
	"context"
	"time"

	"garagehub/internal/modules/points"
	"garagehub/internal/types"
)

type MechanicProfile struct {
	Specializations []string `json:"specializations"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0"`
	Certifications  []string `json:"certifications"`
}

// User never stores its rank; see View.
type User struct {
	ID          types.ID         `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone,omitempty"`
	Role        points.Role      `json:"role"`
	TotalPoints int              `json:"total_points"`
	MemberSince time.Time        `json:"member_since"`
	Profile     *MechanicProfile `json:"profile,omitempty"`
}

// View is a user as rendered to clients, with rank fields computed from the
// current point total.
type View struct {
	User
	points.Standing
}

func NewView(u User) View {
	return View{User: u, Standing: points.StandingFor(u.TotalPoints, u.Role)}
}

func NewViews(users []User) []View {
	out := make([]View, len(users))
	for i, u := range users {
		out[i] = NewView(u)
	}
	return out
}

type Filter struct {
	Role points.Role
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]User, error)
	Get(ctx context.Context, id types.ID) (*User, error)
	Upsert(ctx context.Context, u *User) error
	// AddPoints applies delta to the user's total, flooring it at zero, and
	// returns the updated user.
	AddPoints(ctx context.Context, id types.ID, delta int) (*User, error)
	Delete(ctx context.Context, id types.ID) error
}

type LeaderboardEntry struct {
	UserID types.ID
	Points int
}

// Leaderboard orders users of one role by points.
type Leaderboard interface {
	Set(ctx context.Context, role points.Role, id types.ID, total int) error
	Top(ctx context.Context, role points.Role, limit int) ([]LeaderboardEntry, error)
}
