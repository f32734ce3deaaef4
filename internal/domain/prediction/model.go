package prediction

import "time"

// Category names match the upstream stat feeds they are ranked from.
const (
	CategoryPenaltyMinutes = "penaltyMinutes"
	CategoryGoals          = "goals"
	CategoryDefensePoints  = "defensePoints"
	CategoryU23Points      = "U23Points"
	CategoryGoalieWins     = "goalieWins"
	CategoryFinnishPoints  = "finnishPoints"
)

var Categories = []string{
	CategoryPenaltyMinutes,
	CategoryGoals,
	CategoryDefensePoints,
	CategoryU23Points,
	CategoryGoalieWins,
	CategoryFinnishPoints,
}

// PicksPerCategory is both the pick count and the depth of the live
// leader list each pick is checked against.
const PicksPerCategory = 3

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Sheet holds a user's category picks, each a list of player ids.
// Resubmission replaces the sheet wholesale.
type Sheet struct {
	UserID      string
	Picks       map[string][]string
	SubmittedAt time.Time
}

func (s Sheet) Clone() Sheet {
	out := s
	out.Picks = make(map[string][]string, len(s.Picks))
	for category, ids := range s.Picks {
		out.Picks[category] = append([]string(nil), ids...)
	}
	return out
}
