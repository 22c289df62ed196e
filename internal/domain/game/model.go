package game

import (
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
)

// Game is one scheduled meeting between two teams. Teams are referenced by
// name, the league owns the teams themselves.
type Game struct {
	ID           string
	HomeTeam     string
	VisitingTeam string
	StartsAt     time.Time
}

func New(home, visiting *team.Team, startsAt time.Time) (Game, error) {
	if home == nil {
		return Game{}, domainerr.Constructionf("home team is required")
	}
	if visiting == nil {
		return Game{}, domainerr.Constructionf("visiting team is required")
	}

	return Game{
		HomeTeam:     home.Name,
		VisitingTeam: visiting.Name,
		StartsAt:     startsAt,
	}, nil
}

// OnDay reports whether the game starts on the calendar date of day, read in
// day's location.
func (g Game) OnDay(day time.Time) bool {
	return SameDay(g.StartsAt.In(day.Location()), day)
}

func (g Game) Involves(teamName string) bool {
	return teamName != "" && (g.HomeTeam == teamName || g.VisitingTeam == teamName)
}

// Day truncates t to midnight of its calendar date, keeping its location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
