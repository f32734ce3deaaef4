package pick

import "time"

// Prediction is a user's call on one series: who wins and in how many games.
type Prediction struct {
	Winner string
	Games  int
}

// Sheet is a user's full set of series predictions, keyed by matchup code.
// Resubmission replaces the sheet wholesale.
type Sheet struct {
	UserID      string
	Predictions map[string]Prediction
	SubmittedAt time.Time
}

func (s Sheet) Clone() Sheet {
	out := s
	out.Predictions = make(map[string]Prediction, len(s.Predictions))
	for code, p := range s.Predictions {
		out.Predictions[code] = p
	}
	return out
}
