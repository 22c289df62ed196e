package league

import (
	"context"

	crerr "github.com/cockroachdb/errors"
)

// ErrNotFound is returned by Update when no league has the given id.
var ErrNotFound = crerr.New("league not found")

// Repository is the record store for league aggregates.
type Repository interface {
	List(ctx context.Context) ([]*League, error)
	GetByID(ctx context.Context, leagueID string) (*League, bool, error)
	// Add fails with domainerr.ErrKeyConflict when the id is taken.
	Add(ctx context.Context, item *League) error
	Update(ctx context.Context, item *League) error
}
