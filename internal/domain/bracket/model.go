package bracket

// Round numbers of the four-round playoff bracket.
const (
	RoundFirst      = 1
	RoundSemifinals = 2
	RoundConfFinals = 3
	RoundFinal      = 4
)

// A best-of-seven series is decided in four to seven games.
const (
	GamesMin = 4
	GamesMax = 7
)

const (
	ConferenceWest  = "west"
	ConferenceEast  = "east"
	ConferenceFinal = "final"
)

// State is the coarse progression of the bracket, derived from which
// rounds already have full result coverage.
type State string

const (
	StateRound1Open State = "round1_open"
	StateRound2Open State = "round2_open"
	StateRound3Open State = "round3_open"
	StateFinalOpen  State = "final_open"
	StateComplete   State = "complete"
)

// Matchup is one bracket slot: two teams playing a series identified by a
// stable code. Matchups for round n+1 are rebuilt wholesale whenever round
// n results are submitted.
type Matchup struct {
	Round      int
	Conference string
	Code       string
	Team1      string
	Team2      string
}

func (m Matchup) HasTeam(team string) bool {
	return team != "" && (team == m.Team1 || team == m.Team2)
}

// Result records the decided winner of a series and the number of games
// it took. One result per code, upserted on resubmission.
type Result struct {
	Code   string
	Winner string
	Games  int
}

// Pairing describes how the winners of two series feed a series in the
// following round.
type Pairing struct {
	Round      int    // round of the produced matchup
	Code       string // code of the produced matchup
	Conference string
	Feeds      [2]string // predecessor codes, one winner each
}

// RoundSpec ties a round to its pick weight and its slot codes. Adding a
// round or renaming a slot is a data change here, not a new branch in the
// state machine.
type RoundSpec struct {
	Round  int
	Weight int
	Codes  []string
}

var Rounds = []RoundSpec{
	{Round: RoundFirst, Weight: 2, Codes: []string{"W1", "W2", "W3", "W4", "E1", "E2", "E3", "E4"}},
	{Round: RoundSemifinals, Weight: 4, Codes: []string{"w-semi", "w-semi2", "e-semi", "e-semi2"}},
	{Round: RoundConfFinals, Weight: 8, Codes: []string{"west-final", "east-final"}},
	{Round: RoundFinal, Weight: 16, Codes: []string{"cup"}},
}

var Pairings = []Pairing{
	{Round: RoundSemifinals, Code: "w-semi", Conference: ConferenceWest, Feeds: [2]string{"W1", "W2"}},
	{Round: RoundSemifinals, Code: "w-semi2", Conference: ConferenceWest, Feeds: [2]string{"W3", "W4"}},
	{Round: RoundSemifinals, Code: "e-semi", Conference: ConferenceEast, Feeds: [2]string{"E1", "E2"}},
	{Round: RoundSemifinals, Code: "e-semi2", Conference: ConferenceEast, Feeds: [2]string{"E3", "E4"}},
	{Round: RoundConfFinals, Code: "west-final", Conference: ConferenceWest, Feeds: [2]string{"w-semi", "w-semi2"}},
	{Round: RoundConfFinals, Code: "east-final", Conference: ConferenceEast, Feeds: [2]string{"e-semi", "e-semi2"}},
	{Round: RoundFinal, Code: "cup", Conference: ConferenceFinal, Feeds: [2]string{"west-final", "east-final"}},
}

func RoundByNumber(round int) (RoundSpec, bool) {
	for _, spec := range Rounds {
		if spec.Round == round {
			return spec, true
		}
	}
	return RoundSpec{}, false
}

// RoundOfCode reports which round a slot code belongs to.
func RoundOfCode(code string) (int, bool) {
	for _, spec := range Rounds {
		for _, c := range spec.Codes {
			if c == code {
				return spec.Round, true
			}
		}
	}
	return 0, false
}

// WeightOfCode returns the pick weight for a slot code.
func WeightOfCode(code string) (int, bool) {
	round, ok := RoundOfCode(code)
	if !ok {
		return 0, false
	}
	spec, ok := RoundByNumber(round)
	if !ok {
		return 0, false
	}
	return spec.Weight, true
}

// PairingsInto lists the pairings that produce matchups of the given round.
func PairingsInto(round int) []Pairing {
	out := make([]Pairing, 0, 4)
	for _, p := range Pairings {
		if p.Round == round {
			out = append(out, p)
		}
	}
	return out
}

func ValidGames(games int) bool {
	return games >= GamesMin && games <= GamesMax
}
