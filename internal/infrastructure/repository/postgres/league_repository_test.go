package postgres

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

func TestLeagueFromRows(t *testing.T) {
	startsAt := time.Date(2025, time.January, 15, 19, 0, 0, 0, time.UTC)
	row := leagueTableModel{ID: 1, PublicID: "nhl", Name: "NHL", Season: "2025"}
	slots := []player.Position{player.PositionCenter, player.PositionGoaltender}
	teams := []teamTableModel{
		{ID: 2, LeagueID: "nhl", Name: "Away", SortOrder: 1},
		{ID: 1, LeagueID: "nhl", Name: "Home", SortOrder: 0},
	}
	games := []gameTableModel{
		{ID: 2, LeagueID: "nhl", HomeTeam: "Away", VisitingTeam: "Home", StartsAt: startsAt.AddDate(0, 0, 1), SortOrder: 1},
		{ID: 1, PublicID: sql.NullString{String: "g-1", Valid: true}, LeagueID: "nhl", HomeTeam: "Home", VisitingTeam: "Away", StartsAt: startsAt, SortOrder: 0},
	}
	players := []playerTableModel{
		{ID: 3, LeagueID: "nhl", Name: "Free Agent", Positions: int16(player.NewPositionSet(player.PositionDefense)), SortOrder: 2},
		{ID: 2, PublicID: sql.NullString{String: "p-2", Valid: true}, LeagueID: "nhl", TeamName: sql.NullString{String: "Home", Valid: true}, Name: "Second", Positions: int16(player.NewPositionSet(player.PositionGoaltender)), SortOrder: 1},
		{ID: 1, PublicID: sql.NullString{String: "p-1", Valid: true}, LeagueID: "nhl", TeamName: sql.NullString{String: "Home", Valid: true}, Name: "First", Positions: int16(player.NewPositionSet(player.PositionCenter, player.PositionLeftWing)), SortOrder: 0},
	}

	lg, err := leagueFromRows(row, slots, teams, games, players)
	if err != nil {
		t.Fatalf("league from rows: %v", err)
	}
	if lg.ID != "nhl" || lg.Name != "NHL" || lg.Season != "2025" {
		t.Fatalf("unexpected league header: %+v", lg)
	}
	if got := lg.StartingLineupPositions(); len(got) != 2 || got[0] != player.PositionCenter || got[1] != player.PositionGoaltender {
		t.Fatalf("unexpected slots: %v", got)
	}

	gotTeams := lg.Teams()
	if len(gotTeams) != 2 || gotTeams[0].Name != "Home" || gotTeams[1].Name != "Away" {
		t.Fatalf("expected teams in sort order, got %v", gotTeams)
	}

	gotGames := lg.Games()
	if len(gotGames) != 2 || gotGames[0].ID != "g-1" || !gotGames[0].StartsAt.Equal(startsAt) || gotGames[1].ID != "" {
		t.Fatalf("expected games in sort order with null public id as empty, got %+v", gotGames)
	}

	names := make([]string, 0, 3)
	for _, p := range lg.Players() {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "First,Second,Free Agent" {
		t.Fatalf("expected players in sort order, got %v", names)
	}
	free := lg.Players()[2]
	if free.ID != "" || free.TeamName != "" || !free.Positions.Has(player.PositionDefense) {
		t.Fatalf("unexpected free agent: %+v", free)
	}
	first := lg.Players()[0]
	if !first.Positions.Has(player.PositionCenter) || !first.Positions.Has(player.PositionLeftWing) || first.Positions.Has(player.PositionGoaltender) {
		t.Fatalf("unexpected positions for first player: %v", first.Positions)
	}

	home, _ := lg.Team("Home")
	roster := home.Players()
	if len(roster) != 2 || roster[0].ID != "p-1" || roster[1].ID != "p-2" {
		t.Fatalf("expected home roster in sort order, got %+v", roster)
	}

	if teams[0].Name != "Away" || players[0].Name != "Free Agent" {
		t.Fatalf("expected input rows left in place")
	}
}

func TestLeagueFromRowsRejectsBrokenRows(t *testing.T) {
	row := leagueTableModel{ID: 1, PublicID: "nhl", Name: "NHL"}
	teams := []teamTableModel{{LeagueID: "nhl", Name: "Home"}}
	at := time.Date(2025, time.January, 15, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		slots   []player.Position
		teams   []teamTableModel
		games   []gameTableModel
		players []playerTableModel
		wantErr string
	}{
		{
			name:    "unknown home team",
			teams:   teams,
			games:   []gameTableModel{{ID: 7, HomeTeam: "Ghost", VisitingTeam: "Home", StartsAt: at}},
			wantErr: `game 7 references unknown home team "Ghost"`,
		},
		{
			name:    "unknown visiting team",
			teams:   teams,
			games:   []gameTableModel{{ID: 8, HomeTeam: "Home", VisitingTeam: "Ghost", StartsAt: at}},
			wantErr: `game 8 references unknown visiting team "Ghost"`,
		},
		{
			name:    "duplicate team",
			teams:   []teamTableModel{{Name: "Home"}, {Name: "Home", SortOrder: 1}},
			wantErr: "already exists",
		},
		{
			name:  "duplicate player id",
			teams: teams,
			players: []playerTableModel{
				{PublicID: sql.NullString{String: "p-1", Valid: true}, Name: "A"},
				{PublicID: sql.NullString{String: "p-1", Valid: true}, Name: "B", SortOrder: 1},
			},
			wantErr: "already exists",
		},
		{
			name:    "invalid slot",
			slots:   []player.Position{player.PositionNone},
			wantErr: "invalid position",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := leagueFromRows(row, tc.slots, tc.teams, tc.games, tc.players)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("unexpected error: want substring %q, got %v", tc.wantErr, err)
			}
		})
	}
}
