package gamelog

import "time"

// Entry is one player's line from one playoff game. Skater fields and
// goalie fields share the struct; the player's position decides which set
// is meaningful, matching the upstream feed.
type Entry struct {
	GameID    int64
	PlayerID  string
	GameStart time.Time

	Goals     int
	Assists   int
	PlusMinus int

	Win     bool
	Shutout bool
	Shots   int
	Saves   int
}

// SavePct is saves over shots for a goalie entry; zero when the goalie
// faced no shots.
func (e Entry) SavePct() float64 {
	if e.Shots <= 0 {
		return 0
	}
	return float64(e.Saves) / float64(e.Shots)
}
