package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
)

// BootstrapSeed stores the given leagues when the leagues table is empty.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, leagues ...*league.League) error {
	var count int
	query := `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`
	if err := getTraced(ctx, db, &count, "leagues", query, nil); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	repo := NewLeagueRepository(db)
	for _, lg := range leagues {
		if err := repo.Add(ctx, lg); err != nil {
			return fmt.Errorf("seed league %s: %w", lg.ID, err)
		}
	}
	return nil
}
