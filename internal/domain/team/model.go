package team

import (
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// Team is a club that plays games in a league. Its roster is for display;
// whether a player plays on a given day comes from the league schedule.
type Team struct {
	Name     string
	LeagueID string
	players  []*player.Player
}

func New(name, leagueID string) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerr.Constructionf("team name is required")
	}

	return &Team{Name: name, LeagueID: leagueID}, nil
}

// Restore rebuilds a team from stored state. players is taken as the roster
// in order and is not re-validated.
func Restore(name, leagueID string, players []*player.Player) *Team {
	return &Team{Name: name, LeagueID: leagueID, players: players}
}

func (t *Team) Validate() error {
	if t == nil {
		return domainerr.Constructionf("team is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return domainerr.Constructionf("team name is required")
	}

	return nil
}

// AddPlayer adds p to the roster and points p back at this team.
func (t *Team) AddPlayer(p *player.Player) error {
	if p == nil {
		return domainerr.Constructionf("player is required for team %s", t.Name)
	}
	for _, existing := range t.players {
		if existing == p {
			return nil
		}
	}

	p.TeamName = t.Name
	t.players = append(t.players, p)
	return nil
}

// RemovePlayer drops p from the roster. Lineups that reference p are not
// touched.
func (t *Team) RemovePlayer(p *player.Player) bool {
	for idx, existing := range t.players {
		if existing != p {
			continue
		}
		t.players = append(t.players[:idx], t.players[idx+1:]...)
		if p.TeamName == t.Name {
			p.TeamName = ""
		}
		return true
	}
	return false
}

func (t *Team) Players() []*player.Player {
	out := make([]*player.Player, 0, len(t.players))
	out = append(out, t.players...)
	return out
}

func (t *Team) String() string {
	if t == nil {
		return ""
	}
	return t.Name
}
