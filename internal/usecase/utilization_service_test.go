package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/utilization"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/memory"
	leaguemock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/league"
	"github.com/riskibarqy/fantasy-coach/internal/platform/cache"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUtilizationService_MatchesSequentialSummary(t *testing.T) {
	t.Parallel()

	lg, err := memory.SeedLeague()
	require.NoError(t, err)
	end := openingNight.AddDate(0, 0, 6)

	want, err := utilization.Summarize(lg, openingNight, end, lg.Players())
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 8} {
		service := NewUtilizationService(memory.NewLeagueRepository(lg), nil, workers, logging.NewNop())
		got, err := service.Compute(context.Background(), UtilizationInput{
			LeagueID: memory.SeedLeagueID,
			Start:    openingNight,
			End:      end,
		})
		require.NoError(t, err)
		require.Equal(t, want, got, "workers=%d", workers)
	}

	require.Equal(t, 4, want.GameDays)
	require.Equal(t, 48, want.AvailableSlots)
}

func TestUtilizationService_NoGameDays(t *testing.T) {
	t.Parallel()

	service := NewUtilizationService(newSeededRepo(t), nil, 2, logging.NewNop())
	day := openingNight.AddDate(0, 0, 3)

	report, err := service.Compute(context.Background(), UtilizationInput{LeagueID: memory.SeedLeagueID, Start: day, End: day})
	require.NoError(t, err)
	require.Zero(t, report.GameDays)
	require.Zero(t, report.Ratio)
}

func TestUtilizationService_CachesReportsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lg, err := memory.SeedLeague()
	require.NoError(t, err)

	repo := leaguemock.NewRepository(t)
	repo.On("GetByID", mock.Anything, memory.SeedLeagueID).Return(lg, true, nil).Twice()

	service := NewUtilizationService(repo, cache.NewStore[utilization.Report](time.Minute), 2, logging.NewNop())
	input := UtilizationInput{
		LeagueID: memory.SeedLeagueID,
		Start:    openingNight,
		End:      openingNight.AddDate(0, 0, 2),
	}

	first, err := service.Compute(ctx, input)
	require.NoError(t, err)
	second, err := service.Compute(ctx, input)
	require.NoError(t, err)
	require.Equal(t, first, second)

	service.InvalidateLeague(ctx, memory.SeedLeagueID)
	_, err = service.Compute(ctx, input)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestUtilizationService_WriteDuringComputeIsNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lg, err := memory.SeedLeague()
	require.NoError(t, err)

	var service *UtilizationService
	repo := leaguemock.NewRepository(t)
	repo.On("GetByID", mock.Anything, memory.SeedLeagueID).
		Return(lg, true, nil).
		Once().
		Run(func(mock.Arguments) {
			// An AddPlayer commits between this read and the cache write.
			service.InvalidateLeague(ctx, memory.SeedLeagueID)
		})
	repo.On("GetByID", mock.Anything, memory.SeedLeagueID).Return(lg, true, nil).Once()

	service = NewUtilizationService(repo, cache.NewStore[utilization.Report](time.Minute), 2, logging.NewNop())
	input := UtilizationInput{
		LeagueID: memory.SeedLeagueID,
		Start:    openingNight,
		End:      openingNight.AddDate(0, 0, 2),
	}

	_, err = service.Compute(ctx, input)
	require.NoError(t, err)
	_, err = service.Compute(ctx, input)
	require.NoError(t, err)
	_, err = service.Compute(ctx, input)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestUtilizationService_CacheKeyKeepsRequestOrder(t *testing.T) {
	base := UtilizationInput{LeagueID: "lg", Start: openingNight, End: openingNight}

	a := base
	a.PlayerIDs = []string{"p1", "p2", "p1"}
	b := base
	b.PlayerIDs = []string{"p2", "p1"}
	c := base
	c.PlayerIDs = []string{" p1", "p2 "}

	require.NotEqual(t, utilizationKey(a), utilizationKey(b))
	require.Equal(t, utilizationKey(a), utilizationKey(c))
	require.Contains(t, utilizationKey(base), ":*")
}

func TestUtilizationService_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input UtilizationInput
		want  error
	}{
		{name: "missing start", input: UtilizationInput{LeagueID: memory.SeedLeagueID, End: openingNight}, want: ErrInvalidInput},
		{name: "backwards", input: UtilizationInput{LeagueID: memory.SeedLeagueID, Start: openingNight, End: openingNight.AddDate(0, 0, -1)}, want: ErrInvalidInput},
		{name: "too long", input: UtilizationInput{LeagueID: memory.SeedLeagueID, Start: openingNight, End: openingNight.AddDate(0, 0, MaxUtilizationRangeDays)}, want: ErrInvalidInput},
		{name: "missing league", input: UtilizationInput{LeagueID: "nope", Start: openingNight, End: openingNight}, want: ErrNotFound},
		{name: "unknown player", input: UtilizationInput{LeagueID: memory.SeedLeagueID, Start: openingNight, End: openingNight, PlayerIDs: []string{"ghost"}}, want: ErrInvalidInput},
	}

	service := NewUtilizationService(newSeededRepo(t), cache.NewStore[utilization.Report](time.Minute), 2, logging.NewNop())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Compute(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUtilizationService_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewUtilizationService(newSeededRepo(t), nil, 2, logging.NewNop())
	_, err := service.Compute(ctx, UtilizationInput{
		LeagueID: memory.SeedLeagueID,
		Start:    openingNight,
		End:      openingNight.AddDate(0, 0, 6),
	})
	require.ErrorIs(t, err, context.Canceled)
}
