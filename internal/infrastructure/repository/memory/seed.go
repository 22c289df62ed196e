package memory

import (
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/game"
	"github.com/riskibarqy/fantasy-coach/internal/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
)

const SeedLeagueID = "demo-hockey-2025"

type seedPlayer struct {
	id        string
	name      string
	team      string
	positions []player.Position
}

type seedGame struct {
	home     string
	visiting string
	day      int
	hour     int
}

var seedTeams = []string{"Boston Bruins", "Toronto Maple Leafs", "Montreal Canadiens", "Ottawa Senators"}

var seedGames = []seedGame{
	{home: "Boston Bruins", visiting: "Toronto Maple Leafs", day: 0, hour: 19},
	{home: "Montreal Canadiens", visiting: "Ottawa Senators", day: 0, hour: 19},
	{home: "Ottawa Senators", visiting: "Boston Bruins", day: 1, hour: 19},
	{home: "Toronto Maple Leafs", visiting: "Montreal Canadiens", day: 2, hour: 19},
	{home: "Boston Bruins", visiting: "Montreal Canadiens", day: 4, hour: 13},
	{home: "Toronto Maple Leafs", visiting: "Ottawa Senators", day: 4, hour: 19},
}

var seedPlayers = []seedPlayer{
	{id: "bos-c-01", name: "Elias Lindholm", team: "Boston Bruins", positions: []player.Position{player.PositionCenter, player.PositionLeftWing}},
	{id: "bos-rw-01", name: "David Pastrnak", team: "Boston Bruins", positions: []player.Position{player.PositionRightWing}},
	{id: "bos-d-01", name: "Charlie McAvoy", team: "Boston Bruins", positions: []player.Position{player.PositionDefense}},
	{id: "bos-g-01", name: "Jeremy Swayman", team: "Boston Bruins", positions: []player.Position{player.PositionGoaltender}},
	{id: "tor-c-01", name: "Auston Matthews", team: "Toronto Maple Leafs", positions: []player.Position{player.PositionCenter}},
	{id: "tor-rw-01", name: "Mitch Marner", team: "Toronto Maple Leafs", positions: []player.Position{player.PositionRightWing, player.PositionCenter}},
	{id: "tor-d-01", name: "Morgan Rielly", team: "Toronto Maple Leafs", positions: []player.Position{player.PositionDefense}},
	{id: "tor-g-01", name: "Joseph Woll", team: "Toronto Maple Leafs", positions: []player.Position{player.PositionGoaltender}},
	{id: "mtl-c-01", name: "Nick Suzuki", team: "Montreal Canadiens", positions: []player.Position{player.PositionCenter}},
	{id: "mtl-lw-01", name: "Cole Caufield", team: "Montreal Canadiens", positions: []player.Position{player.PositionLeftWing, player.PositionRightWing}},
	{id: "mtl-d-01", name: "Lane Hutson", team: "Montreal Canadiens", positions: []player.Position{player.PositionDefense}},
	{id: "mtl-g-01", name: "Sam Montembeault", team: "Montreal Canadiens", positions: []player.Position{player.PositionGoaltender}},
	{id: "ott-c-01", name: "Tim Stutzle", team: "Ottawa Senators", positions: []player.Position{player.PositionCenter, player.PositionLeftWing}},
	{id: "ott-lw-01", name: "Brady Tkachuk", team: "Ottawa Senators", positions: []player.Position{player.PositionLeftWing}},
	{id: "ott-d-01", name: "Jake Sanderson", team: "Ottawa Senators", positions: []player.Position{player.PositionDefense}},
	{id: "ott-d-02", name: "Thomas Chabot", team: "Ottawa Senators", positions: []player.Position{player.PositionDefense}},
	{id: "ott-g-01", name: "Linus Ullmark", team: "Ottawa Senators", positions: []player.Position{player.PositionGoaltender}},
}

// SeedLeague builds a small demo league with a week of games starting on
// 2025-10-07 UTC.
func SeedLeague() (*league.League, error) {
	lg, err := league.New(SeedLeagueID, "Demo Hockey League", nil)
	if err != nil {
		return nil, err
	}
	lg.Season = "2025-2026"

	for _, name := range seedTeams {
		t, err := team.New(name, lg.ID)
		if err != nil {
			return nil, err
		}
		if err := lg.AddTeam(t); err != nil {
			return nil, err
		}
	}

	opening := time.Date(2025, time.October, 7, 0, 0, 0, 0, time.UTC)
	for _, sg := range seedGames {
		home, _ := lg.Team(sg.home)
		visiting, _ := lg.Team(sg.visiting)
		g, err := game.New(home, visiting, opening.AddDate(0, 0, sg.day).Add(time.Duration(sg.hour)*time.Hour))
		if err != nil {
			return nil, err
		}
		lg.AddGame(g)
	}

	for _, sp := range seedPlayers {
		if err := lg.AddPlayer(player.New(sp.id, sp.name, sp.team, sp.positions...)); err != nil {
			return nil, err
		}
	}

	return lg, nil
}
