package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mtkallio/playoff-pool/internal/domain/gamelog"
	"github.com/mtkallio/playoff-pool/internal/domain/player"
)

const (
	goalieSaveBonusThreshold = 0.92
	goalieSaveMalusThreshold = 0.83

	// Players with fewer games than this are floored, not scaled.
	scalingMinGames = 5

	priceRoundingUnit = 1000
)

// priceStep maps a per-game performance delta to a percentage price
// move. Tables are scanned top-down; the first row whose threshold the
// delta reaches wins, and deltas below every row take the fallback.
type priceStep struct {
	MinDelta int
	Pct      float64
}

var skaterPriceSteps = []priceStep{
	{MinDelta: 4, Pct: 0.06},
	{MinDelta: 3, Pct: 0.035},
	{MinDelta: 2, Pct: 0.027},
	{MinDelta: 1, Pct: 0.012},
	{MinDelta: 0, Pct: 0},
	{MinDelta: -1, Pct: -0.01},
	{MinDelta: -2, Pct: -0.03},
}

const skaterPriceFloorPct = -0.05

var goaliePriceSteps = []priceStep{
	{MinDelta: 4, Pct: 0.05},
	{MinDelta: 3, Pct: 0.025},
	{MinDelta: 2, Pct: 0},
	{MinDelta: 1, Pct: -0.025},
}

const goaliePriceFloorPct = -0.05

func pctForDelta(steps []priceStep, fallback float64, delta int) float64 {
	for _, step := range steps {
		if delta >= step.MinDelta {
			return step.Pct
		}
	}
	return fallback
}

// PricingService derives market valuations from season performance and
// nudges them per newly ingested game log. Each player's
// LastPricedGameID watermark makes the incremental pass safe to rerun.
type PricingService struct {
	players  player.Repository
	gamelogs gamelog.Repository
	now      func() time.Time
}

func NewPricingService(players player.Repository, gamelogs gamelog.Repository) *PricingService {
	return &PricingService{
		players:  players,
		gamelogs: gamelogs,
		now:      time.Now,
	}
}

type InitialValuationReport struct {
	PlayerCount  int `json:"player_count"`
	ScaledCount  int `json:"scaled_count"`
	FlooredCount int `json:"floored_count"`
}

// RunInitialValuation prices the whole pool from season aggregates:
// min-max scale each population's performance scores into its price
// bounds, round to the nearest thousand, then discount thin
// games-played samples.
func (s *PricingService) RunInitialValuation(ctx context.Context) (InitialValuationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PricingService.RunInitialValuation")
	defer span.End()

	if s.players == nil {
		return InitialValuationReport{}, fmt.Errorf("%w: player repository is not configured", ErrDependencyUnavailable)
	}

	all, err := s.players.ListPlayers(ctx)
	if err != nil {
		return InitialValuationReport{}, fmt.Errorf("list players: %w", err)
	}

	skaters := make([]player.Player, 0, len(all))
	goalies := make([]player.Player, 0, 8)
	for _, p := range all {
		if p.Position.IsGoalie() {
			goalies = append(goalies, p)
			continue
		}
		skaters = append(skaters, p)
	}

	report := InitialValuationReport{PlayerCount: len(all)}
	for _, population := range [][]player.Player{skaters, goalies} {
		scaled, floored, err := s.valuePopulation(ctx, population)
		if err != nil {
			return InitialValuationReport{}, err
		}
		report.ScaledCount += scaled
		report.FlooredCount += floored
	}
	return report, nil
}

func (s *PricingService) valuePopulation(ctx context.Context, population []player.Player) (scaled, floored int, err error) {
	if len(population) == 0 {
		return 0, 0, nil
	}

	scores := make(map[string]float64, len(population))
	minScore := math.Inf(1)
	maxScore := math.Inf(-1)
	for _, p := range population {
		if p.Stats.GamesPlayed < scalingMinGames {
			continue
		}
		score := seasonPerformanceScore(p)
		scores[p.ID] = score
		minScore = math.Min(minScore, score)
		maxScore = math.Max(maxScore, score)
	}

	for _, p := range population {
		minPrice, maxPrice := player.PriceBounds(p.Position)

		score, inPopulation := scores[p.ID]
		price := minPrice
		if inPopulation && maxScore > minScore {
			normalized := (score - minScore) / (maxScore - minScore)
			price = roundToUnit(float64(minPrice)+normalized*float64(maxPrice-minPrice), priceRoundingUnit)
		}

		switch {
		case p.Stats.GamesPlayed < 10:
			price = int(math.Round(float64(price) * 0.8))
		case p.Stats.GamesPlayed < 20:
			price = int(math.Round(float64(price) * 0.85))
		}
		price = p.ClampPrice(price)

		if err := s.players.UpdatePrice(ctx, p.ID, price, p.LastPricedGameID); err != nil {
			return scaled, floored, fmt.Errorf("update price player=%s: %w", p.ID, err)
		}
		if inPopulation {
			scaled++
		} else {
			floored++
		}
	}
	return scaled, floored, nil
}

// seasonPerformanceScore is the per-position season score the initial
// valuation scales from.
func seasonPerformanceScore(p player.Player) float64 {
	gp := float64(p.Stats.GamesPlayed)
	if gp <= 0 {
		return 0
	}
	switch {
	case p.Position.IsForward():
		return float64(2*p.Stats.Goals+p.Stats.Assists+p.Stats.PlusMinus) / gp
	case p.Position == player.PositionDefense:
		return float64(3*p.Stats.Goals+p.Stats.Assists+p.Stats.PlusMinus) / gp
	case p.Position.IsGoalie():
		return float64(p.Stats.Wins+p.Stats.Shutouts+p.Stats.GamesPlayed) * p.Stats.SavePct
	default:
		return 0
	}
}

type PlayerFailure struct {
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

type RepriceReport struct {
	PlayerCount   int             `json:"player_count"`
	RepricedCount int             `json:"repriced_count"`
	SkippedCount  int             `json:"skipped_count"`
	Failures      []PlayerFailure `json:"failures,omitempty"`
}

// RepriceFromNewLogs applies the step tables to every game log newer
// than each player's watermark. Already-priced logs are skipped, so
// re-running after a partial failure converges.
func (s *PricingService) RepriceFromNewLogs(ctx context.Context) (RepriceReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PricingService.RepriceFromNewLogs")
	defer span.End()

	if s.players == nil || s.gamelogs == nil {
		return RepriceReport{}, fmt.Errorf("%w: pricing is not fully configured", ErrDependencyUnavailable)
	}

	all, err := s.players.ListPlayers(ctx)
	if err != nil {
		return RepriceReport{}, fmt.Errorf("list players: %w", err)
	}

	report := RepriceReport{PlayerCount: len(all)}
	for _, p := range all {
		applied, err := s.repricePlayer(ctx, p)
		if err != nil {
			report.Failures = append(report.Failures, PlayerFailure{PlayerID: p.ID, Message: err.Error()})
			continue
		}
		if applied {
			report.RepricedCount++
		} else {
			report.SkippedCount++
		}
	}

	sort.SliceStable(report.Failures, func(i, j int) bool {
		return report.Failures[i].PlayerID < report.Failures[j].PlayerID
	})
	return report, nil
}

func (s *PricingService) repricePlayer(ctx context.Context, p player.Player) (bool, error) {
	logs, err := s.gamelogs.ListByPlayerAfterGame(ctx, p.ID, p.LastPricedGameID)
	if err != nil {
		return false, fmt.Errorf("list game logs player=%s: %w", p.ID, err)
	}
	if len(logs) == 0 {
		return false, nil
	}

	price := p.Price
	watermark := p.LastPricedGameID
	for _, entry := range logs {
		pct := priceChangePct(p.Position, entry)
		price = p.ClampPrice(int(math.Round(float64(price) * (1 + pct))))
		watermark = entry.GameID
	}

	if err := s.players.UpdatePrice(ctx, p.ID, price, watermark); err != nil {
		return false, fmt.Errorf("update price player=%s: %w", p.ID, err)
	}
	return true, nil
}

func priceChangePct(position player.Position, entry gamelog.Entry) float64 {
	if position.IsGoalie() {
		return pctForDelta(goaliePriceSteps, goaliePriceFloorPct, goalieGameDelta(entry))
	}

	delta := 2*entry.Goals + entry.Assists + entry.PlusMinus
	if position == player.PositionDefense {
		delta = 3*entry.Goals + entry.Assists + entry.PlusMinus
	}
	return pctForDelta(skaterPriceSteps, skaterPriceFloorPct, delta)
}

// goalieGameDelta rates one goalie appearance: base point for playing,
// win and shutout on top, a save-percentage bonus or malus at the 0.92
// and 0.83 marks.
func goalieGameDelta(entry gamelog.Entry) int {
	delta := 1
	if entry.Win {
		delta++
	}
	if entry.Shutout {
		delta++
	}
	if entry.Shots > 0 {
		switch savePct := entry.SavePct(); {
		case savePct > goalieSaveBonusThreshold:
			delta++
		case savePct < goalieSaveMalusThreshold:
			delta--
		}
	}
	return delta
}

func roundToUnit(value float64, unit int) int {
	return int(math.Round(value/float64(unit))) * unit
}
