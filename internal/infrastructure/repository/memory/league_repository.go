package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
)

// LeagueRepository keeps league aggregates in process. Stored leagues are
// shared by pointer with callers.
type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[string]*league.League
	orders []string
}

func NewLeagueRepository(leagues ...*league.League) *LeagueRepository {
	items := make(map[string]*league.League, len(leagues))
	orders := make([]string, 0, len(leagues))

	for _, l := range leagues {
		if l == nil {
			continue
		}
		if _, exists := items[l.ID]; exists {
			continue
		}
		items[l.ID] = l
		orders = append(orders, l.ID)
	}

	return &LeagueRepository{
		items:  items,
		orders: orders,
	}
}

func (r *LeagueRepository) List(_ context.Context) ([]*league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*league.League, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (*league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return nil, false, nil
	}

	return l, true, nil
}

func (r *LeagueRepository) Add(_ context.Context, item *league.League) error {
	if item == nil {
		return domainerr.Constructionf("league is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return domainerr.KeyConflictf("league %q already exists", item.ID)
	}
	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *LeagueRepository) Update(_ context.Context, item *league.League) error {
	if item == nil {
		return domainerr.Constructionf("league is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return league.ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}
