package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	basecache "github.com/riskibarqy/fantasy-coach/internal/platform/cache"
)

const (
	keyLeagueList = "league:list"
	keyLeagueByID = "league:id:"
)

// LeagueRepository caches reads from next. Writes go straight through and
// drop every cached league, whether or not next succeeds, so a failed write
// never leaves a half-applied aggregate in the cache.
type LeagueRepository struct {
	next  league.Repository
	lists *basecache.Store[[]*league.League]
	byID  *basecache.Store[cachedLeagueByID]
}

type cachedLeagueByID struct {
	value  *league.League
	exists bool
}

func NewLeagueRepository(next league.Repository, ttl time.Duration) *LeagueRepository {
	return &LeagueRepository{
		next:  next,
		lists: basecache.NewStore[[]*league.League](ttl),
		byID:  basecache.NewStore[cachedLeagueByID](ttl),
	}
}

func (r *LeagueRepository) List(ctx context.Context) ([]*league.League, error) {
	items, err := r.lists.GetOrLoad(ctx, keyLeagueList, func(ctx context.Context) ([]*league.League, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]*league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]*league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (*league.League, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, keyLeagueByID+leagueID, func(ctx context.Context) (cachedLeagueByID, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return cachedLeagueByID{}, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return nil, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) Add(ctx context.Context, item *league.League) error {
	defer r.invalidate(ctx, item)
	return r.next.Add(ctx, item)
}

func (r *LeagueRepository) Update(ctx context.Context, item *league.League) error {
	defer r.invalidate(ctx, item)
	return r.next.Update(ctx, item)
}

func (r *LeagueRepository) invalidate(ctx context.Context, item *league.League) {
	r.lists.Delete(ctx, keyLeagueList)
	if item != nil {
		r.byID.Delete(ctx, keyLeagueByID+item.ID)
	}
}
