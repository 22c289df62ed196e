package usecase

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/game"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/utilization"
	"github.com/riskibarqy/fantasy-coach/internal/platform/cache"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

// MaxUtilizationRangeDays caps how many calendar days one report may span.
const MaxUtilizationRangeDays = 366

const utilizationCachePrefix = "utilization"

type UtilizationInput struct {
	LeagueID  string
	Start     time.Time
	End       time.Time
	PlayerIDs []string
}

// UtilizationService builds one lineup per game day on a bounded worker
// pool and aggregates them into a report. The league and the candidate
// players are only read while days are built.
type UtilizationService struct {
	leagueRepo league.Repository
	reports    *cache.Store[utilization.Report]
	maxWorkers int
	logger     *logging.Logger
}

// NewUtilizationService caches reports in reports when it is non-nil.
func NewUtilizationService(leagueRepo league.Repository, reports *cache.Store[utilization.Report], maxWorkers int, logger *logging.Logger) *UtilizationService {
	if maxWorkers <= 0 {
		maxWorkers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &UtilizationService{
		leagueRepo: leagueRepo,
		reports:    reports,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (s *UtilizationService) Compute(ctx context.Context, input UtilizationInput) (utilization.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UtilizationService.Compute")
	defer span.End()

	if input.Start.IsZero() || input.End.IsZero() {
		return utilization.Report{}, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if input.Start.After(input.End) {
		return utilization.Report{}, classify("compute utilization",
			domainerr.InvalidRangef("start %s is after end %s", input.Start.Format(time.DateOnly), input.End.Format(time.DateOnly)))
	}
	if days := game.Day(input.End).Sub(game.Day(input.Start)).Hours() / 24; days >= MaxUtilizationRangeDays {
		return utilization.Report{}, fmt.Errorf("%w: range spans more than %d days", ErrInvalidInput, MaxUtilizationRangeDays)
	}

	if s.reports == nil {
		return s.compute(ctx, input)
	}
	return s.reports.GetOrLoad(ctx, utilizationKey(input), func(ctx context.Context) (utilization.Report, error) {
		return s.compute(ctx, input)
	})
}

// InvalidateLeague drops cached reports for leagueID.
func (s *UtilizationService) InvalidateLeague(ctx context.Context, leagueID string) {
	if s.reports == nil {
		return
	}
	s.reports.DeletePrefix(ctx, cache.Key(utilizationCachePrefix, leagueID)+":")
}

func (s *UtilizationService) compute(ctx context.Context, input UtilizationInput) (utilization.Report, error) {
	lg, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return utilization.Report{}, err
	}
	candidates, err := selectCandidates(lg, input.PlayerIDs)
	if err != nil {
		return utilization.Report{}, err
	}

	days := lg.GameDays(input.Start, input.End)
	lineups, err := s.buildDays(ctx, lg, days, candidates)
	if err != nil {
		return utilization.Report{}, err
	}

	report, err := utilization.FromLineups(lg, input.Start, input.End, lineups)
	if err != nil {
		return utilization.Report{}, classify("aggregate utilization", err)
	}

	s.logger.InfoContext(ctx, "utilization computed",
		"league_id", lg.ID,
		"game_days", report.GameDays,
		"filled_slots", report.FilledSlots,
		"available_slots", report.AvailableSlots,
		"ratio", report.Ratio,
	)
	return report, nil
}

func (s *UtilizationService) buildDays(ctx context.Context, lg *league.League, days []time.Time, candidates []*player.Player) ([]*lineup.Lineup, error) {
	lineups := make([]*lineup.Lineup, len(days))
	if len(days) == 0 {
		return lineups, nil
	}

	pool, err := ants.NewPool(min(s.maxWorkers, len(days)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers  sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for idx, day := range days {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			built, err := lineup.Build(lg, day, candidates)
			if err != nil {
				fail(fmt.Errorf("build lineup for %s: %w", day.Format(time.DateOnly), err))
				return
			}
			lineups[idx] = built
		}); err != nil {
			workers.Done()
			fail(fmt.Errorf("submit day to worker pool: %w", err))
			break
		}
	}

	workers.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	return lineups, nil
}

func utilizationKey(input UtilizationInput) string {
	// Candidate order drives tie-breaks, so ids keep request order.
	ids := make([]string, 0, len(input.PlayerIDs))
	for _, raw := range input.PlayerIDs {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || slices.Contains(ids, trimmed) {
			continue
		}
		ids = append(ids, trimmed)
	}

	players := "*"
	if len(ids) > 0 {
		players = strings.Join(ids, ",")
	}

	return cache.Key(
		utilizationCachePrefix,
		strings.TrimSpace(input.LeagueID),
		input.Start.Format(time.RFC3339),
		input.End.Format(time.RFC3339),
		players,
	)
}
