package league

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/game"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
)

// League owns its teams, games, player roster and the daily starting lineup
// template. Teams and players only hold name keys back into the league.
type League struct {
	ID     string
	Name   string
	Season string

	teams     map[string]*team.Team
	teamOrder []string
	games     []game.Game
	players   []*player.Player
	slots     []player.Position
}

// DefaultStartingLineup is the per-day slot template.
func DefaultStartingLineup() []player.Position {
	return []player.Position{
		player.PositionCenter, player.PositionCenter,
		player.PositionLeftWing, player.PositionLeftWing,
		player.PositionRightWing, player.PositionRightWing,
		player.PositionDefense, player.PositionDefense, player.PositionDefense, player.PositionDefense,
		player.PositionGoaltender, player.PositionGoaltender,
	}
}

// New builds an empty league. A nil slots template selects
// DefaultStartingLineup; the template cannot be changed afterwards.
func New(id, name string, slots []player.Position) (*League, error) {
	if slots == nil {
		slots = DefaultStartingLineup()
	}
	for idx, pos := range slots {
		if !pos.Valid() {
			return nil, domainerr.Constructionf("starting lineup slot %d has invalid position %s", idx, pos)
		}
	}

	return &League{
		ID:    strings.TrimSpace(id),
		Name:  strings.TrimSpace(name),
		teams: make(map[string]*team.Team),
		slots: append([]player.Position(nil), slots...),
	}, nil
}

func (l *League) StartingLineupPositions() []player.Position {
	return append([]player.Position(nil), l.slots...)
}

// AddTeam inserts t keyed by name. A second team with the same name is
// rejected and the league is left unchanged.
func (l *League) AddTeam(t *team.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, exists := l.teams[t.Name]; exists {
		return domainerr.KeyConflictf("team %q already exists in league %s", t.Name, l.ID)
	}

	t.LeagueID = l.ID
	l.teams[t.Name] = t
	l.teamOrder = append(l.teamOrder, t.Name)
	return nil
}

func (l *League) Team(name string) (*team.Team, bool) {
	t, ok := l.teams[name]
	return t, ok
}

// Teams returns teams in insertion order.
func (l *League) Teams() []*team.Team {
	out := make([]*team.Team, 0, len(l.teamOrder))
	for _, name := range l.teamOrder {
		out = append(out, l.teams[name])
	}
	return out
}

// RemoveTeam drops the team from the keyed collection. Games and players that
// still reference the name are not guarded.
func (l *League) RemoveTeam(name string) bool {
	if _, ok := l.teams[name]; !ok {
		return false
	}
	delete(l.teams, name)
	for idx, existing := range l.teamOrder {
		if existing == name {
			l.teamOrder = append(l.teamOrder[:idx], l.teamOrder[idx+1:]...)
			break
		}
	}
	return true
}

func (l *League) AddGame(g game.Game) {
	l.games = append(l.games, g)
}

func (l *League) Games() []game.Game {
	return append([]game.Game(nil), l.games...)
}

// AddPlayer appends p to the league roster. When p names a team of this
// league the player also joins that team's roster.
func (l *League) AddPlayer(p *player.Player) error {
	if p == nil {
		return domainerr.Constructionf("player is required")
	}
	if p.ID != "" {
		if _, exists := l.PlayerByID(p.ID); exists {
			return domainerr.KeyConflictf("player %q already exists in league %s", p.ID, l.ID)
		}
	}
	if t, ok := l.teams[p.TeamName]; ok {
		if err := t.AddPlayer(p); err != nil {
			return err
		}
	}
	l.players = append(l.players, p)
	return nil
}

func (l *League) Players() []*player.Player {
	return append([]*player.Player(nil), l.players...)
}

func (l *League) PlayerByID(id string) (*player.Player, bool) {
	for _, p := range l.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// GamesBetween returns games whose start time lies in [start, end].
func (l *League) GamesBetween(start, end time.Time) []game.Game {
	out := make([]game.Game, 0)
	for _, g := range l.games {
		if g.StartsAt.Before(start) || g.StartsAt.After(end) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// TeamsPlaying returns the names of teams with a game on day, first seen first.
func (l *League) TeamsPlaying(day time.Time) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, g := range l.games {
		if !g.OnDay(day) {
			continue
		}
		for _, name := range []string{g.HomeTeam, g.VisitingTeam} {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

func (l *League) IsTeamPlaying(name string, day time.Time) bool {
	if name == "" {
		return false
	}
	for _, g := range l.games {
		if g.OnDay(day) && g.Involves(name) {
			return true
		}
	}
	return false
}

// IsPlaying reports whether p's team has a game on day.
func (l *League) IsPlaying(p *player.Player, day time.Time) bool {
	if p == nil {
		return false
	}
	return l.IsTeamPlaying(p.TeamName, day)
}

// GameDays returns the distinct calendar days in [start, end] with at least
// one game, ascending. Days are taken in start's location.
func (l *League) GameDays(start, end time.Time) []time.Time {
	first := game.Day(start)
	last := game.Day(end.In(start.Location()))
	seen := make(map[time.Time]struct{})
	out := make([]time.Time, 0)
	for _, g := range l.games {
		day := game.Day(g.StartsAt.In(start.Location()))
		if day.Before(first) || day.After(last) {
			continue
		}
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Clone returns a deep copy with fresh team and player instances, so the
// copy can be mutated while readers keep using the original.
func (l *League) Clone() *League {
	out := &League{
		ID:        l.ID,
		Name:      l.Name,
		Season:    l.Season,
		teams:     make(map[string]*team.Team, len(l.teams)),
		teamOrder: append([]string(nil), l.teamOrder...),
		games:     append([]game.Game(nil), l.games...),
		players:   make([]*player.Player, 0, len(l.players)),
		slots:     append([]player.Position(nil), l.slots...),
	}
	copies := make(map[*player.Player]*player.Player, len(l.players))
	copyOf := func(p *player.Player) *player.Player {
		if cp, ok := copies[p]; ok {
			return cp
		}
		cp := *p
		copies[p] = &cp
		return &cp
	}

	for _, p := range l.players {
		out.players = append(out.players, copyOf(p))
	}
	for _, name := range l.teamOrder {
		src := l.teams[name]
		roster := src.Players()
		for idx, p := range roster {
			roster[idx] = copyOf(p)
		}
		out.teams[name] = team.Restore(src.Name, src.LeagueID, roster)
	}
	return out
}
