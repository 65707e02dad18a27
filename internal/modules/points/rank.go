package points

type tier struct {
	min   int
	title string
}

var (
	mechanicTiers = []tier{
		{2000, "Master Mechanic"},
		{1500, "Expert Mechanic"},
		{1000, "Senior Mechanic"},
		{500, "Skilled Mechanic"},
		{200, "Junior Mechanic"},
		{0, "Apprentice"},
	}
	ownerTiers = []tier{
		{500, "VIP Customer"},
		{300, "Premium Customer"},
		{150, "Regular Customer"},
		{50, "Valued Customer"},
		{0, "New Customer"},
	}
	rankColors = []string{"gold", "silver", "bronze", "blue", "green"}
)

const (
	mechanicTopLevel = "Master Level"
	ownerTopLevel    = "VIP Level"
	fallbackColor    = "gray"
)

func tiersFor(role Role) []tier {
	if role == RoleMechanic {
		return mechanicTiers
	}
	return ownerTiers
}

// Rank is the 1-based tier for total points, 1 being the best. Thresholds are
// inclusive. Roles other than mechanic use the vehicle owner table.
func Rank(total int, role Role) int {
	tiers := tiersFor(role)
	for i, t := range tiers {
		if total >= t.min {
			return i + 1
		}
	}
	return len(tiers)
}

// RankTitle names a rank. Out-of-range ranks get the lowest tier's title.
func RankTitle(rank int, role Role) string {
	tiers := tiersFor(role)
	if rank < 1 || rank > len(tiers) {
		return tiers[len(tiers)-1].title
	}
	return tiers[rank-1].title
}

// RankColor is the presentation token for a rank; anything past the fifth
// rank renders gray.
func RankColor(rank int) string {
	if rank < 1 || rank > len(rankColors) {
		return fallbackColor
	}
	return rankColors[rank-1]
}

// Next describes the closest tier above the current total.
type Next struct {
	Name         string `json:"name"`
	PointsNeeded int    `json:"points_needed"`
}

// NextRank walks the tier table upward from the entry tier. At the top tier
// PointsNeeded is 0 and Name is the role's max-level sentinel.
func NextRank(total int, role Role) Next {
	tiers := tiersFor(role)
	for i := len(tiers) - 2; i >= 0; i-- {
		if total < tiers[i].min {
			return Next{Name: tiers[i].title, PointsNeeded: tiers[i].min - total}
		}
	}
	if role == RoleMechanic {
		return Next{Name: mechanicTopLevel}
	}
	return Next{Name: ownerTopLevel}
}

// Standing bundles every derived rank value for display.
type Standing struct {
	Rank  int    `json:"rank"`
	Title string `json:"rank_title"`
	Color string `json:"rank_color"`
	Next  Next   `json:"next_rank"`
}

// StandingFor derives the full standing from total points.
func StandingFor(total int, role Role) Standing {
	r := Rank(total, role)
	return Standing{
		Rank:  r,
		Title: RankTitle(r, role),
		Color: RankColor(r),
		Next:  NextRank(total, role),
	}
}
