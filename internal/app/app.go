package app

import (
	"context"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/mtkallio/playoff-pool/external/nhlfeed"
	"github.com/mtkallio/playoff-pool/internal/config"
	"github.com/mtkallio/playoff-pool/internal/domain/bracket"
	"github.com/mtkallio/playoff-pool/internal/domain/gamelog"
	"github.com/mtkallio/playoff-pool/internal/domain/pick"
	"github.com/mtkallio/playoff-pool/internal/domain/player"
	"github.com/mtkallio/playoff-pool/internal/domain/points"
	"github.com/mtkallio/playoff-pool/internal/domain/prediction"
	"github.com/mtkallio/playoff-pool/internal/domain/roster"
	"github.com/mtkallio/playoff-pool/internal/domain/user"
	"github.com/mtkallio/playoff-pool/internal/infrastructure/repository/memory"
	"github.com/mtkallio/playoff-pool/internal/infrastructure/repository/postgres"
	"github.com/mtkallio/playoff-pool/internal/interfaces/httpapi"
	idgen "github.com/mtkallio/playoff-pool/internal/platform/id"
	"github.com/mtkallio/playoff-pool/internal/platform/logging"
	"github.com/mtkallio/playoff-pool/internal/usecase"
)

type repositories struct {
	brackets    bracket.Repository
	picks       pick.Repository
	rosters     roster.Repository
	gamelogs    gamelog.Repository
	players     player.Repository
	points      points.Repository
	predictions prediction.Repository
	users       user.Repository
}

// NewHTTPServer wires repositories, services and the HTTP surface into a
// ready-to-run server. With DB_URL unset the pool runs against seeded
// in-memory stores, which is the local development mode.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	bracketSvc := usecase.NewBracketService(repos.brackets)
	pickSvc := usecase.NewPickService(repos.picks)
	playerSvc := usecase.NewPlayerService(repos.players)
	pricingSvc := usecase.NewPricingService(repos.players, repos.gamelogs)
	rosterSvc := usecase.NewRosterService(repos.rosters, repos.players, idgen.NewRandomGenerator())
	standingsSvc := usecase.NewStandingsService(repos.points, repos.users)
	userSvc := usecase.NewUserService(repos.users, idgen.NewRandomGenerator())

	bracketScores := usecase.NewBracketScoringService(repos.brackets, repos.picks, repos.points, repos.users)
	lineupScores := usecase.NewLineupScoringService(repos.rosters, repos.gamelogs, repos.players, repos.points, repos.users)
	predictScores := usecase.NewPredictionScoringService(repos.predictions, repos.players, repos.points, repos.users, cfg.SeasonYear)

	var updateSvc *usecase.UpdateService
	if cfg.NHLFeedEnabled {
		feed := nhlfeed.NewClient(nhlfeed.ClientConfig{
			BaseURL:          cfg.NHLFeedBaseURL,
			Timeout:          cfg.NHLFeedTimeout,
			MaxRetries:       2,
			Logger:           logger,
			CircuitEnabled:   cfg.NHLFeedCircuitEnabled,
			FailureThreshold: cfg.NHLFeedCircuitFailureCount,
			OpenTimeout:      cfg.NHLFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLFeedCircuitHalfOpenMaxReq,
		})
		updateSvc = usecase.NewUpdateService(
			feed,
			repos.gamelogs,
			repos.players,
			pricingSvc,
			lineupScores,
			bracketScores,
			predictScores,
			logger,
			cfg.UpdateMaxWorkers,
		)
	} else {
		logger.Info("nhl feed disabled, daily update job unavailable", "reason", "NHL_FEED_ENABLED=false")
	}

	handler := httpapi.NewHandler(
		bracketSvc,
		pickSvc,
		predictScores,
		rosterSvc,
		standingsSvc,
		playerSvc,
		userSvc,
		pricingSvc,
		updateSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		stores := memory.NewStores()
		if err := stores.SeedDemoData(context.Background()); err != nil {
			return repositories{}, fmt.Errorf("seed demo data: %w", err)
		}
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")

		return repositories{
			brackets:    stores.Brackets,
			picks:       stores.Picks,
			rosters:     stores.Rosters,
			gamelogs:    stores.GameLogs,
			players:     stores.Players,
			points:      stores.Points,
			predictions: stores.Predictions,
			users:       stores.Users,
		}, nil
	}

	db, err := otelsqlx.Connect("postgres", cfg.DBURL)
	if err != nil {
		return repositories{}, fmt.Errorf("connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	logger.Info("using postgres repositories")

	return repositories{
		brackets:    postgres.NewBracketRepository(db),
		picks:       postgres.NewPickRepository(db),
		rosters:     postgres.NewRosterRepository(db),
		gamelogs:    postgres.NewGameLogRepository(db),
		players:     postgres.NewPlayerRepository(db),
		points:      postgres.NewPointsRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		users:       postgres.NewUserRepository(db),
	}, nil
}
