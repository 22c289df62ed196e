package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/schedulecsv"
	"github.com/riskibarqy/fantasy-coach/internal/platform/id"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// maxConcurrentImports bounds how many schedule files are parsed at once.
const maxConcurrentImports = 4

// LeagueInvalidator is told after a league changes so derived results
// (cached utilization reports) can be dropped.
type LeagueInvalidator interface {
	InvalidateLeague(ctx context.Context, leagueID string)
}

type CreateLeagueInput struct {
	ID     string
	Name   string
	Season string
	// Slots lists position codes for the daily template; empty selects the
	// default template.
	Slots []string
}

type ImportScheduleInput struct {
	ID     string
	Name   string
	Season string
	Body   io.Reader
}

type AddPlayerInput struct {
	LeagueID  string
	ID        string
	Name      string
	TeamName  string
	Positions []string
}

// LeagueService owns league writes. Mutations run on a clone that replaces
// the stored league through Update, so lineups being built from the
// previous snapshot are never raced.
type LeagueService struct {
	leagueRepo   league.Repository
	ids          id.Generator
	location     *time.Location
	logger       *logging.Logger
	invalidators []LeagueInvalidator

	mu sync.Mutex
}

func NewLeagueService(leagueRepo league.Repository, ids id.Generator, location *time.Location, logger *logging.Logger, invalidators ...LeagueInvalidator) *LeagueService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		leagueRepo:   leagueRepo,
		ids:          ids,
		location:     location,
		logger:       logger,
		invalidators: invalidators,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]*league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, classify("list leagues", err)
	}

	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (*league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	return loadLeague(ctx, s.leagueRepo, leagueID)
}

func (s *LeagueService) ListTeams(ctx context.Context, leagueID string) ([]*team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListTeams")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	return lg.Teams(), nil
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (*league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	var slots []player.Position
	for idx, raw := range input.Slots {
		pos, err := player.ParsePosition(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d: %w", ErrInvalidInput, idx, err)
		}
		slots = append(slots, pos)
	}

	leagueID, err := s.resolveID(input.ID, name)
	if err != nil {
		return nil, err
	}

	lg, err := league.New(leagueID, name, slots)
	if err != nil {
		return nil, classify("create league", err)
	}
	lg.Season = strings.TrimSpace(input.Season)

	if err := s.store(ctx, lg); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "league created", "league_id", lg.ID, "slots", len(lg.StartingLineupPositions()))
	return lg, nil
}

// ImportSchedule parses a CSV schedule into a new league.
func (s *LeagueService) ImportSchedule(ctx context.Context, input ImportScheduleInput) (*league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ImportSchedule")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.Body == nil {
		return nil, fmt.Errorf("%w: schedule body is required", ErrInvalidInput)
	}

	leagueID, err := s.resolveID(input.ID, name)
	if err != nil {
		return nil, err
	}

	lg, err := schedulecsv.Load(input.Body, schedulecsv.Options{
		LeagueID: leagueID,
		Name:     name,
		Season:   input.Season,
		Location: s.location,
	})
	if err != nil {
		return nil, s.scheduleError(err)
	}

	if err := s.store(ctx, lg); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "schedule imported",
		"league_id", lg.ID,
		"teams", len(lg.Teams()),
		"games", len(lg.Games()),
	)
	return lg, nil
}

// ImportScheduleFiles parses every path concurrently and then stores the
// leagues in path order. A league id is the slug of the file name; ids that
// already exist are skipped so re-running a seed is harmless. Any parse
// failure aborts before anything is stored.
func (s *LeagueService) ImportScheduleFiles(ctx context.Context, paths ...string) ([]*league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ImportScheduleFiles")
	defer span.End()

	if len(paths) == 0 {
		return nil, nil
	}

	type parsed struct {
		index  int
		league *league.League
	}

	p := pool.NewWithResults[parsed]().
		WithContext(ctx).
		WithMaxGoroutines(min(maxConcurrentImports, len(paths)))
	for idx, path := range paths {
		p.Go(func(ctx context.Context) (parsed, error) {
			if err := ctx.Err(); err != nil {
				return parsed{}, err
			}
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			leagueID := id.Slug(base)
			if leagueID == "" {
				return parsed{}, fmt.Errorf("%w: cannot derive league id from %s", ErrInvalidInput, path)
			}
			lg, err := schedulecsv.LoadFile(path, schedulecsv.Options{
				LeagueID: leagueID,
				Name:     base,
				Location: s.location,
			})
			if err != nil {
				return parsed{}, s.scheduleError(err)
			}
			return parsed{index: idx, league: lg}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	out := make([]*league.League, 0, len(results))
	for _, res := range results {
		if err := s.store(ctx, res.league); err != nil {
			if errors.Is(err, ErrConflict) {
				s.logger.WarnContext(ctx, "schedule import skipped, league exists", "league_id", res.league.ID, "path", paths[res.index])
				continue
			}
			return out, err
		}
		s.logger.InfoContext(ctx, "schedule file imported", "league_id", res.league.ID, "path", paths[res.index], "games", len(res.league.Games()))
		out = append(out, res.league)
	}

	return out, nil
}

func (s *LeagueService) AddPlayer(ctx context.Context, input AddPlayerInput) (*player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.AddPlayer")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	positions, err := player.ParsePositionSet(input.Positions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if positions.Len() == 0 {
		return nil, fmt.Errorf("%w: at least one position is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return nil, err
	}

	teamName := strings.TrimSpace(input.TeamName)
	if teamName != "" {
		if _, ok := current.Team(teamName); !ok {
			return nil, fmt.Errorf("%w: team %q is not in league %s", ErrInvalidInput, teamName, current.ID)
		}
	}

	playerID, err := s.resolveID(input.ID, name)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	p := player.New(playerID, name, teamName, positions.Positions()...)
	if err := next.AddPlayer(p); err != nil {
		return nil, classify("add player", err)
	}
	if err := s.leagueRepo.Update(ctx, next); err != nil {
		return nil, classify("update league", err)
	}
	s.invalidate(ctx, next.ID)

	s.logger.InfoContext(ctx, "player added", "league_id", next.ID, "player_id", p.ID, "positions", positions.String())
	return p, nil
}

func (s *LeagueService) store(ctx context.Context, lg *league.League) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.leagueRepo.Add(ctx, lg); err != nil {
		return classify("add league", err)
	}
	s.invalidate(ctx, lg.ID)
	return nil
}

func (s *LeagueService) resolveID(explicit, name string) (string, error) {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return trimmed, nil
	}
	generated, err := s.ids.NewID(name)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return generated, nil
}

func (s *LeagueService) scheduleError(err error) error {
	if errors.Is(err, schedulecsv.ErrMalformedRow) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return classify("load schedule", err)
}

func (s *LeagueService) invalidate(ctx context.Context, leagueID string) {
	for _, inv := range s.invalidators {
		inv.InvalidateLeague(ctx, leagueID)
	}
}

// loadLeague fetches a league or fails with ErrNotFound.
func loadLeague(ctx context.Context, repo league.Repository, leagueID string) (*league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	lg, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, classify("get league", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return lg, nil
}
