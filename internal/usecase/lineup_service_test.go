package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

var openingNight = time.Date(2025, time.October, 7, 0, 0, 0, 0, time.UTC)

func TestLineupService_BuildForDate(t *testing.T) {
	t.Parallel()

	service := NewLineupService(newSeededRepo(t), logging.NewNop())

	built, err := service.BuildForDate(context.Background(), memory.SeedLeagueID, openingNight.Add(15*time.Hour), nil)
	require.NoError(t, err)
	require.Equal(t, 12, built.Len())
	require.Equal(t, openingNight, built.Date())
	require.Empty(t, built.OpenSlots())
}

func TestLineupService_BuildForDate_SelectedPlayers(t *testing.T) {
	t.Parallel()

	service := NewLineupService(newSeededRepo(t), logging.NewNop())

	built, err := service.BuildForDate(context.Background(), memory.SeedLeagueID, openingNight,
		[]string{"bos-g-01", " bos-g-01 ", "ott-d-01", ""})
	require.NoError(t, err)
	require.Equal(t, 2, built.Len())

	// Day 3 has no games.
	idle, err := service.BuildForDate(context.Background(), memory.SeedLeagueID, openingNight.AddDate(0, 0, 3), nil)
	require.NoError(t, err)
	require.Zero(t, idle.Len())
}

func TestLineupService_BuildForDate_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		leagueID string
		date     time.Time
		ids      []string
		want     error
	}{
		{name: "zero date", leagueID: memory.SeedLeagueID, want: ErrInvalidInput},
		{name: "unknown player", leagueID: memory.SeedLeagueID, date: openingNight, ids: []string{"nobody"}, want: ErrInvalidInput},
		{name: "missing league", leagueID: "nope", date: openingNight, want: ErrNotFound},
		{name: "blank league", leagueID: " ", date: openingNight, want: ErrInvalidInput},
	}

	service := NewLineupService(newSeededRepo(t), logging.NewNop())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.BuildForDate(context.Background(), tc.leagueID, tc.date, tc.ids)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
