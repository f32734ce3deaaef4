package player

import "time"

// Position codes follow the NHL feed: L/C/R forwards, D defense, G goalie.
type Position string

const (
	PositionLeftWing  Position = "L"
	PositionCenter    Position = "C"
	PositionRightWing Position = "R"
	PositionDefense   Position = "D"
	PositionGoalie    Position = "G"
)

func (p Position) IsForward() bool {
	return p == PositionLeftWing || p == PositionCenter || p == PositionRightWing
}

func (p Position) IsSkater() bool {
	return p.IsForward() || p == PositionDefense
}

func (p Position) IsGoalie() bool {
	return p == PositionGoalie
}

// Market price bounds in whole currency units. Goalies top out lower than
// skaters.
const (
	SkaterMinPrice = 100_000
	SkaterMaxPrice = 700_000
	GoalieMinPrice = 100_000
	GoalieMaxPrice = 650_000
)

func PriceBounds(position Position) (min, max int) {
	if position.IsGoalie() {
		return GoalieMinPrice, GoalieMaxPrice
	}
	return SkaterMinPrice, SkaterMaxPrice
}

// SeasonStats are the regular-season aggregates valuations and prediction
// categories are computed from.
type SeasonStats struct {
	GamesPlayed    int
	Goals          int
	Assists        int
	PlusMinus      int
	PenaltyMinutes int
	Wins           int
	Shutouts       int
	SavePct        float64
}

// Player is static metadata plus season aggregates and the current market
// valuation. LastPricedGameID is the incremental repricer's watermark.
type Player struct {
	ID           string
	Name         string
	Team         string
	Position     Position
	BirthDate    time.Time
	BirthCountry string

	Stats SeasonStats

	Price            int
	LastPricedGameID int64
}

func (p Player) ClampPrice(price int) int {
	min, max := PriceBounds(p.Position)
	if price < min {
		return min
	}
	if price > max {
		return max
	}
	return price
}
