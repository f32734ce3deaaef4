package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/mtkallio/playoff-pool/internal/domain/gamelog"
	"github.com/mtkallio/playoff-pool/internal/domain/player"
	"github.com/mtkallio/playoff-pool/internal/platform/logging"
	"github.com/mtkallio/playoff-pool/internal/platform/resilience"
)

// GameLogFeed is the upstream NHL data source: refreshed player rows and
// game logs newer than the given watermark, already parsed.
type GameLogFeed interface {
	FetchPlayers(ctx context.Context) ([]player.Player, error)
	FetchGameLogs(ctx context.Context, afterGameID int64) ([]gamelog.Entry, error)
}

const (
	updateStatusSuccess = "success"
	updateStatusFailed  = "failed"

	updateStageLineups     = "lineup_scores"
	updateStageBrackets    = "bracket_scores"
	updateStagePredictions = "prediction_scores"

	dailyUpdateKey = "daily-update"
)

type UpdateStageReport struct {
	Stage      string `json:"stage"`
	Status     string `json:"status"`
	Scored     int    `json:"scored"`
	Failed     int    `json:"failed"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type DailyUpdateReport struct {
	Shared           bool                `json:"shared"`
	RefreshedPlayers int                 `json:"refreshed_players"`
	IngestedLogs     int                 `json:"ingested_logs"`
	Reprice          RepriceReport       `json:"reprice"`
	Stages           []UpdateStageReport `json:"stages"`
	WorkerCount      int                 `json:"worker_count"`
}

// UpdateService is the daily orchestrator: pull fresh data from the
// feed, reprice, then rescore every engine. Overlapping triggers
// coalesce onto one run.
type UpdateService struct {
	feed            GameLogFeed
	gamelogs        gamelog.Repository
	players         player.Repository
	pricing         *PricingService
	lineupScores    *LineupScoringService
	bracketScores   *BracketScoringService
	predictScores   *PredictionScoringService
	group           *resilience.SingleFlight
	logger          *logging.Logger
	maxStageWorkers int
}

func NewUpdateService(
	feed GameLogFeed,
	gamelogs gamelog.Repository,
	players player.Repository,
	pricing *PricingService,
	lineupScores *LineupScoringService,
	bracketScores *BracketScoringService,
	predictScores *PredictionScoringService,
	logger *logging.Logger,
	maxStageWorkers int,
) *UpdateService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxStageWorkers < 1 {
		maxStageWorkers = 1
	}
	return &UpdateService{
		feed:            feed,
		gamelogs:        gamelogs,
		players:         players,
		pricing:         pricing,
		lineupScores:    lineupScores,
		bracketScores:   bracketScores,
		predictScores:   predictScores,
		group:           &resilience.SingleFlight{},
		logger:          logger,
		maxStageWorkers: maxStageWorkers,
	}
}

// RunDailyUpdate ingests, reprices and rescores. A trigger that arrives
// while a run is in flight waits for that run and gets its report back
// marked shared.
func (s *UpdateService) RunDailyUpdate(ctx context.Context) (DailyUpdateReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UpdateService.RunDailyUpdate")
	defer span.End()

	// The run is shared by every coalesced caller, so it must not die
	// with the caller that happened to start it.
	runCtx := context.WithoutCancel(ctx)
	val, err, shared := s.group.Do(dailyUpdateKey, func() (any, error) {
		return s.runDailyUpdate(runCtx)
	})
	if err != nil {
		return DailyUpdateReport{}, err
	}

	report, ok := val.(DailyUpdateReport)
	if !ok {
		return DailyUpdateReport{}, fmt.Errorf("%w: unexpected daily update result", ErrDependencyUnavailable)
	}
	report.Shared = shared
	return report, nil
}

func (s *UpdateService) runDailyUpdate(ctx context.Context) (DailyUpdateReport, error) {
	if s.gamelogs == nil || s.players == nil || s.pricing == nil ||
		s.lineupScores == nil || s.bracketScores == nil || s.predictScores == nil {
		return DailyUpdateReport{}, fmt.Errorf("%w: daily update is not fully configured", ErrDependencyUnavailable)
	}

	report := DailyUpdateReport{WorkerCount: s.maxStageWorkers}
	started := time.Now()

	if s.feed != nil {
		refreshed, ingested, err := s.ingestFromFeed(ctx)
		if err != nil {
			return DailyUpdateReport{}, err
		}
		report.RefreshedPlayers = refreshed
		report.IngestedLogs = ingested
	}

	reprice, err := s.pricing.RepriceFromNewLogs(ctx)
	if err != nil {
		return DailyUpdateReport{}, err
	}
	report.Reprice = reprice

	stages, err := s.runScoringStages(ctx)
	if err != nil {
		return DailyUpdateReport{}, err
	}
	report.Stages = stages

	failedStages := 0
	for _, stage := range stages {
		if stage.Status == updateStatusFailed {
			failedStages++
		}
	}
	s.logger.InfoContext(ctx, "daily update finished",
		"refreshed_players", report.RefreshedPlayers,
		"ingested_logs", report.IngestedLogs,
		"repriced", report.Reprice.RepricedCount,
		"failed_stages", failedStages,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return report, nil
}

func (s *UpdateService) ingestFromFeed(ctx context.Context) (refreshed, ingested int, err error) {
	players, err := s.feed.FetchPlayers(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: fetch players: %v", ErrDependencyUnavailable, err)
	}
	if len(players) > 0 {
		if err := s.players.UpsertPlayers(ctx, players); err != nil {
			return 0, 0, fmt.Errorf("upsert players: %w", err)
		}
	}

	watermark, err := s.latestKnownGameID(ctx)
	if err != nil {
		return 0, 0, err
	}
	entries, err := s.feed.FetchGameLogs(ctx, watermark)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: fetch game logs: %v", ErrDependencyUnavailable, err)
	}
	if len(entries) > 0 {
		if err := s.gamelogs.UpsertEntries(ctx, entries); err != nil {
			return 0, 0, fmt.Errorf("upsert game logs: %w", err)
		}
	}
	return len(players), len(entries), nil
}

func (s *UpdateService) latestKnownGameID(ctx context.Context) (int64, error) {
	entries, err := s.gamelogs.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list game logs: %w", err)
	}
	var latest int64
	for _, entry := range entries {
		if entry.GameID > latest {
			latest = entry.GameID
		}
	}
	return latest, nil
}

// runScoringStages fans the three rescoring passes out over a worker
// pool. A failing stage is reported, not fatal; the remaining stages
// still run.
func (s *UpdateService) runScoringStages(ctx context.Context) ([]UpdateStageReport, error) {
	type stage struct {
		name string
		run  func(context.Context) (BulkScoreReport, error)
	}
	stages := []stage{
		{name: updateStageLineups, run: s.lineupScores.ScoreAllUsers},
		{name: updateStageBrackets, run: s.bracketScores.ScoreAllUsers},
		{name: updateStagePredictions, run: s.predictScores.ScoreAllUsers},
	}

	pool, err := ants.NewPool(s.maxStageWorkers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan UpdateStageReport, len(stages))
	var failedCount atomic.Int32
	var workers sync.WaitGroup
	for _, item := range stages {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := UpdateStageReport{Stage: item.name, Status: updateStatusSuccess}
			bulk, err := item.run(ctx)
			if err != nil {
				row.Status = updateStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Scored = bulk.ScoredCount
				row.Failed = bulk.FailedCount
			}
			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit stage to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]UpdateStageReport, 0, len(stages))
	for row := range results {
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stage < out[j].Stage })
	return out, nil
}
