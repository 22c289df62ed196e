package schedulecsv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleSchedule = "Date,Visitor,Home,Time\r\n" +
	"2025-10-07,\"Chicago Blackhawks\",\"Florida Panthers\",5:00 PM\r\n" +
	"10/07/2025,Pittsburgh Penguins,New York Rangers,20:00\r\n" +
	"10/8/2025,Chicago Blackhawks,Boston Bruins,\r\n" +
	"\r\n"

func TestLoad(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	lg, err := Load(strings.NewReader(sampleSchedule), Options{
		LeagueID: "nhl-2025",
		Name:     "NHL",
		Season:   "2025-2026",
		Location: loc,
	})
	require.NoError(t, err)

	require.Equal(t, "nhl-2025", lg.ID)
	require.Equal(t, "2025-2026", lg.Season)

	teams := lg.Teams()
	require.Len(t, teams, 5)
	require.Equal(t, "Chicago Blackhawks", teams[0].Name)
	require.Equal(t, "Florida Panthers", teams[1].Name)
	require.Equal(t, "nhl-2025", teams[0].LeagueID)

	games := lg.Games()
	require.Len(t, games, 3)
	require.Equal(t, "Florida Panthers", games[0].HomeTeam)
	require.Equal(t, "Chicago Blackhawks", games[0].VisitingTeam)
	require.Equal(t, time.Date(2025, time.October, 7, 17, 0, 0, 0, loc), games[0].StartsAt)
	require.Equal(t, time.Date(2025, time.October, 7, 20, 0, 0, 0, loc), games[1].StartsAt)
	require.Equal(t, time.Date(2025, time.October, 8, 0, 0, 0, 0, loc), games[2].StartsAt)
	require.Equal(t, "nhl-2025-g0001", games[0].ID)

	require.True(t, lg.IsTeamPlaying("Chicago Blackhawks", time.Date(2025, time.October, 8, 12, 0, 0, 0, loc)))
	require.Len(t, lg.StartingLineupPositions(), 12)
}

func TestLoadMalformedRows(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad date", body: "h\nnot-a-date,A,B,1:00 PM\n"},
		{name: "bad time", body: "h\n2025-10-07,A,B,noon\n"},
		{name: "missing home", body: "h\n2025-10-07,A\n"},
		{name: "empty team name", body: "h\n2025-10-07,A,\"\",1:00 PM\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.body), Options{LeagueID: "x"})
			if !errors.Is(err, ErrMalformedRow) {
				t.Fatalf("expected malformed row, got %v", err)
			}
			if !strings.Contains(err.Error(), "line 2") {
				t.Fatalf("expected line number in error, got %v", err)
			}
		})
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	lg, err := Load(strings.NewReader("Date,Visitor,Home,Time\n"), Options{LeagueID: "empty"})
	require.NoError(t, err)
	require.Empty(t, lg.Games())
	require.Empty(t, lg.Teams())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleSchedule), 0o600))

	lg, err := LoadFile(path, Options{LeagueID: "nhl"})
	require.NoError(t, err)
	require.Len(t, lg.Games(), 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}
