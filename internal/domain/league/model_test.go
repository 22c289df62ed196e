package league

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/domainerr"
	"github.com/riskibarqy/fantasy-coach/internal/domain/game"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
)

func mustTeam(t *testing.T, lg *League, name string) *team.Team {
	t.Helper()

	tm, err := team.New(name, "")
	if err != nil {
		t.Fatalf("new team %s: %v", name, err)
	}
	if err := lg.AddTeam(tm); err != nil {
		t.Fatalf("add team %s: %v", name, err)
	}
	return tm
}

func mustGame(t *testing.T, lg *League, home, away *team.Team, at time.Time) {
	t.Helper()

	g, err := game.New(home, away, at)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	lg.AddGame(g)
}

func TestNew(t *testing.T) {
	lg, err := New("nhl", "NHL", nil)
	if err != nil {
		t.Fatalf("new league: %v", err)
	}
	if len(lg.StartingLineupPositions()) != 12 {
		t.Fatalf("expected default template, got %v", lg.StartingLineupPositions())
	}

	slots := []player.Position{player.PositionCenter, player.PositionGoaltender}
	custom, err := New("small", "Small", slots)
	if err != nil {
		t.Fatalf("new custom league: %v", err)
	}
	slots[0] = player.PositionDefense
	if custom.StartingLineupPositions()[0] != player.PositionCenter {
		t.Fatalf("template must be copied at construction")
	}

	if _, err := New("bad", "Bad", []player.Position{player.PositionNone}); !errors.Is(err, domainerr.ErrConstruction) {
		t.Fatalf("expected construction error, got %v", err)
	}
}

func TestAddTeamRejectsDuplicateName(t *testing.T) {
	lg, _ := New("nhl", "NHL", nil)
	mustTeam(t, lg, "Bruins")

	dup, _ := team.New("Bruins", "")
	if err := lg.AddTeam(dup); !errors.Is(err, domainerr.ErrKeyConflict) {
		t.Fatalf("expected key conflict, got %v", err)
	}
	if len(lg.Teams()) != 1 {
		t.Fatalf("league changed after conflict: %d teams", len(lg.Teams()))
	}
	if err := lg.AddTeam(&team.Team{Name: "  "}); !errors.Is(err, domainerr.ErrConstruction) {
		t.Fatalf("expected construction error for blank team, got %v", err)
	}

	if !lg.RemoveTeam("Bruins") || lg.RemoveTeam("Bruins") {
		t.Fatalf("unexpected remove result")
	}
}

func TestSchedule(t *testing.T) {
	lg, _ := New("nhl", "NHL", nil)
	bos := mustTeam(t, lg, "Bruins")
	tor := mustTeam(t, lg, "Leafs")
	mtl := mustTeam(t, lg, "Canadiens")

	day1 := time.Date(2025, time.October, 8, 19, 0, 0, 0, time.UTC)
	day3 := day1.AddDate(0, 0, 2)
	mustGame(t, lg, bos, tor, day1)
	mustGame(t, lg, mtl, bos, day1.Add(30*time.Minute))
	mustGame(t, lg, tor, mtl, day3)

	if got := lg.TeamsPlaying(day1); len(got) != 3 || got[0] != "Bruins" {
		t.Fatalf("unexpected teams playing: %v", got)
	}
	if lg.IsTeamPlaying("Leafs", day1.AddDate(0, 0, 1)) {
		t.Fatalf("no games on day 2")
	}

	keeper := player.New("p1", "Keeper", "Leafs", player.PositionGoaltender)
	if err := lg.AddPlayer(keeper); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if len(tor.Players()) != 1 {
		t.Fatalf("player should join the team roster")
	}
	if !lg.IsPlaying(keeper, time.Date(2025, time.October, 10, 1, 0, 0, 0, time.UTC)) {
		t.Fatalf("keeper's team plays on day 3")
	}
	if err := lg.AddPlayer(player.New("p1", "Other", "", player.PositionCenter)); !errors.Is(err, domainerr.ErrKeyConflict) {
		t.Fatalf("expected key conflict for duplicate player id, got %v", err)
	}

	days := lg.GameDays(day1.AddDate(0, 0, -1), day3)
	if len(days) != 2 || !game.SameDay(days[0], day1) || !game.SameDay(days[1], day3) {
		t.Fatalf("unexpected game days: %v", days)
	}
	if got := lg.GamesBetween(day1, day1.Add(time.Hour)); len(got) != 2 {
		t.Fatalf("unexpected games between: %d", len(got))
	}
}

func TestGameDaysUsesStartLocation(t *testing.T) {
	lg, err := New("nhl", "NHL", nil)
	if err != nil {
		t.Fatalf("new league: %v", err)
	}
	home := mustTeam(t, lg, "Home")
	away := mustTeam(t, lg, "Away")
	mustGame(t, lg, home, away, time.Date(2025, time.February, 3, 1, 0, 0, 0, time.UTC))
	mustGame(t, lg, home, away, time.Date(2025, time.February, 4, 1, 0, 0, 0, time.UTC))

	start := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	// Feb 4 06:00 UTC, still Feb 3 in the end's own zone.
	end := time.Date(2025, time.February, 3, 20, 0, 0, 0, time.FixedZone("HST", -10*3600))

	days := lg.GameDays(start, end)
	if len(days) != 2 {
		t.Fatalf("expected 2 game days, got %v", days)
	}
	if !days[1].Equal(time.Date(2025, time.February, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected last day in start location, got %v", days[1])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	lg, err := New("nhl", "NHL", nil)
	if err != nil {
		t.Fatalf("new league: %v", err)
	}
	home := mustTeam(t, lg, "Home")
	away := mustTeam(t, lg, "Away")
	mustGame(t, lg, home, away, time.Date(2025, time.January, 15, 19, 0, 0, 0, time.UTC))
	if err := lg.AddPlayer(player.New("p1", "Skater", "Home", player.PositionCenter)); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if err := lg.AddPlayer(player.New("p3", "Winger", "Away", player.PositionLeftWing)); err != nil {
		t.Fatalf("add player: %v", err)
	}

	cp := lg.Clone()
	if err := cp.AddPlayer(player.New("p2", "Goalie", "Away", player.PositionGoaltender)); err != nil {
		t.Fatalf("add player to clone: %v", err)
	}
	cp.Players()[0].Name = "Renamed"

	if len(lg.Players()) != 2 || lg.Players()[0].Name != "Skater" {
		t.Fatalf("expected original roster untouched, got %+v", lg.Players())
	}
	if len(cp.Players()) != 3 || len(cp.Games()) != 1 || len(cp.Teams()) != 2 {
		t.Fatalf("unexpected clone contents")
	}
	cloneHome, _ := cp.Team("Home")
	if cloneHome == home || len(cloneHome.Players()) != 1 || cloneHome.Players()[0] != cp.Players()[0] {
		t.Fatalf("expected clone team roster to point at cloned players")
	}
	if len(home.Players()) != 1 || home.Players()[0] == cp.Players()[0] {
		t.Fatalf("expected original team roster to keep original players")
	}
	cloneAway, _ := cp.Team("Away")
	awayRoster := cloneAway.Players()
	if len(awayRoster) != 2 || awayRoster[0] != cp.Players()[1] || awayRoster[1] != cp.Players()[2] {
		t.Fatalf("expected clone away roster in insertion order, got %+v", awayRoster)
	}
	if len(away.Players()) != 1 {
		t.Fatalf("expected original away roster unchanged, got %+v", away.Players())
	}
}
