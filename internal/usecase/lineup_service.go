package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

type LineupService struct {
	leagueRepo league.Repository
	logger     *logging.Logger
}

func NewLineupService(leagueRepo league.Repository, logger *logging.Logger) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{leagueRepo: leagueRepo, logger: logger}
}

// BuildForDate fills the league's template for date from the given players,
// or from the whole roster when playerIDs is empty.
func (s *LineupService) BuildForDate(ctx context.Context, leagueID string, date time.Time, playerIDs []string) (*lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.BuildForDate")
	defer span.End()

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	candidates, err := selectCandidates(lg, playerIDs)
	if err != nil {
		return nil, err
	}

	built, err := lineup.Build(lg, date, candidates)
	if err != nil {
		return nil, fmt.Errorf("build lineup: %w", err)
	}

	s.logger.DebugContext(ctx, "lineup built",
		"league_id", lg.ID,
		"date", built.Date().Format(time.DateOnly),
		"candidates", len(candidates),
		"filled", built.Len(),
	)
	return built, nil
}

// selectCandidates resolves ids against the league roster in request order.
// Repeated ids are kept once; an unknown id is an input error.
func selectCandidates(lg *league.League, playerIDs []string) ([]*player.Player, error) {
	if len(playerIDs) == 0 {
		return lg.Players(), nil
	}

	seen := make(map[string]struct{}, len(playerIDs))
	out := make([]*player.Player, 0, len(playerIDs))
	for _, raw := range playerIDs {
		playerID := strings.TrimSpace(raw)
		if playerID == "" {
			continue
		}
		if _, ok := seen[playerID]; ok {
			continue
		}
		seen[playerID] = struct{}{}

		p, ok := lg.PlayerByID(playerID)
		if !ok {
			return nil, fmt.Errorf("%w: player %q is not in league %s", ErrInvalidInput, playerID, lg.ID)
		}
		out = append(out, p)
	}
	return out, nil
}
