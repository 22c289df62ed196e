package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/domain/utilization"
	cacherepo "github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/resilient"
	"github.com/riskibarqy/fantasy-coach/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-coach/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-coach/internal/platform/id"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// App is the assembled HTTP service. Close releases the store.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	baseRepo, db, err := openLeagueStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	out := &App{db: db}

	var leagueRepo league.Repository = baseRepo
	if cfg.StoreBackend == config.StorePostgres {
		leagueRepo = resilient.WrapLeagueRepository(leagueRepo, resilience.BreakerSettings{
			Enabled:          cfg.DBCircuitEnabled,
			FailureThreshold: cfg.DBCircuitFailureCount,
			OpenTimeout:      cfg.DBCircuitOpenTimeout,
			HalfOpenProbes:   cfg.DBCircuitHalfOpenMaxReq,
		}, logger.Named("resilient"))
	}

	var reports *cache.Store[utilization.Report]
	if cfg.CacheEnabled {
		leagueRepo = cacherepo.NewLeagueRepository(leagueRepo, cfg.CacheTTL)
		reports = cache.NewStore[utilization.Report](cfg.CacheTTL)
	}

	utilizationSvc := usecase.NewUtilizationService(leagueRepo, reports, cfg.UtilizationMaxWorkers, logger.Named("utilization"))
	leagueSvc := usecase.NewLeagueService(
		leagueRepo,
		idgen.NewUUIDGenerator(),
		cfg.ScheduleLocation,
		logger.Named("league"),
		utilizationSvc,
	)
	lineupSvc := usecase.NewLineupService(leagueRepo, logger.Named("lineup"))

	if err := seed(ctx, cfg, leagueSvc, leagueRepo, db, logger); err != nil {
		_ = out.Close()
		return nil, err
	}

	handler := httpapi.NewHandler(leagueSvc, lineupSvc, utilizationSvc, cfg.ScheduleLocation, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	out.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return out, nil
}

func openLeagueStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (league.Repository, *sqlx.DB, error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := sqlx.Open("postgres", postgres.NormalizeDSN(cfg.DBURL, cfg.DBDisablePreparedBinary))
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}

		logger.InfoContext(ctx, "league store ready", "backend", cfg.StoreBackend, "db_name", postgres.DatabaseName(cfg.DBURL))
		return postgres.NewLeagueRepository(db), db, nil
	default:
		logger.InfoContext(ctx, "league store ready", "backend", config.StoreMemory)
		return memory.NewLeagueRepository(), nil, nil
	}
}

// seed imports SEED_SCHEDULE_PATHS when set, otherwise stores the bundled
// demo league. Existing leagues are left alone either way.
func seed(ctx context.Context, cfg config.Config, leagueSvc *usecase.LeagueService, repo league.Repository, db *sqlx.DB, logger *logging.Logger) error {
	if len(cfg.SeedSchedulePaths) > 0 {
		imported, err := leagueSvc.ImportScheduleFiles(ctx, cfg.SeedSchedulePaths...)
		if err != nil {
			return fmt.Errorf("import seed schedules: %w", err)
		}
		logger.InfoContext(ctx, "seed schedules imported", "files", len(cfg.SeedSchedulePaths), "leagues", len(imported))
		return nil
	}

	demo, err := memory.SeedLeague()
	if err != nil {
		return fmt.Errorf("build demo league: %w", err)
	}

	if db != nil {
		if err := postgres.BootstrapSeed(ctx, db, demo); err != nil {
			return fmt.Errorf("bootstrap seed: %w", err)
		}
		return nil
	}

	if err := repo.Add(ctx, demo); err != nil {
		return fmt.Errorf("store demo league: %w", err)
	}
	logger.InfoContext(ctx, "demo league stored", "league_id", demo.ID)
	return nil
}
