// Package resilient puts a circuit breaker in front of a remote record
// store so a failing database sheds load instead of piling up requests.
package resilient

import (
	"context"
	"errors"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/platform/resilience"
)

type LeagueRepository struct {
	next    league.Repository
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

// WrapLeagueRepository returns next unchanged when the breaker is disabled.
func WrapLeagueRepository(next league.Repository, cfg resilience.BreakerSettings, logger *logging.Logger) league.Repository {
	if !cfg.Enabled {
		return next
	}
	return NewLeagueRepository(next, resilience.NewCircuitBreaker(cfg), logger)
}

func NewLeagueRepository(next league.Repository, breaker *resilience.CircuitBreaker, logger *logging.Logger) *LeagueRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueRepository{next: next, breaker: breaker, logger: logger}
}

func (r *LeagueRepository) List(ctx context.Context) ([]*league.League, error) {
	var out []*league.League
	err := r.do(ctx, "list", func(ctx context.Context) error {
		items, err := r.next.List(ctx)
		out = items
		return err
	})
	return out, err
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (*league.League, bool, error) {
	var (
		out    *league.League
		exists bool
	)
	err := r.do(ctx, "get_by_id", func(ctx context.Context) error {
		item, ok, err := r.next.GetByID(ctx, leagueID)
		out, exists = item, ok
		return err
	})
	return out, exists, err
}

func (r *LeagueRepository) Add(ctx context.Context, item *league.League) error {
	return r.do(ctx, "add", func(ctx context.Context) error {
		return r.next.Add(ctx, item)
	})
}

func (r *LeagueRepository) Update(ctx context.Context, item *league.League) error {
	return r.do(ctx, "update", func(ctx context.Context) error {
		return r.next.Update(ctx, item)
	})
}

// do runs fn through the breaker. Domain outcomes such as conflicts or a
// missing league mean the store answered, so they count as successes.
func (r *LeagueRepository) do(ctx context.Context, op string, fn func(context.Context) error) error {
	var domainErr error
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if isDomainError(err) {
			domainErr = err
			return nil
		}
		return err
	})
	if domainErr != nil {
		return domainErr
	}
	if errors.Is(err, resilience.ErrCircuitOpen) {
		r.logger.WarnContext(ctx, "league store circuit open", "operation", op, "state", string(r.breaker.State()))
	}
	return err
}

func isDomainError(err error) bool {
	return errors.Is(err, domainerr.ErrKeyConflict) ||
		errors.Is(err, domainerr.ErrConstruction) ||
		errors.Is(err, league.ErrNotFound)
}
