package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandwichproject/host-locator/internal/domain"
	"github.com/sandwichproject/host-locator/internal/repo"
)

func newTestStatsRepo(t *testing.T) repo.StatsRepo {
	t.Helper()
	return repo.NewStatsRepo(newTestTx(t))
}

func TestStatsRepo_UpsertWeekly_Insert(t *testing.T) {
	r := newTestStatsRepo(t)
	ctx := context.Background()

	week := time.Date(2030, 6, 5, 0, 0, 0, 0, time.UTC)
	got, err := r.UpsertWeekly(ctx, domain.WeeklyStat{
		WeekStart:   week,
		Sandwiches:  420,
		Volunteers:  12,
		HostsActive: 5,
	})

	require.NoError(t, err)
	assert.True(t, got.WeekStart.Equal(week), "WeekStart mismatch")
	assert.Equal(t, 420, got.Sandwiches)
	assert.Equal(t, 12, got.Volunteers)
	assert.Equal(t, 5, got.HostsActive)
}

func TestStatsRepo_UpsertWeekly_ReplacesExistingWeek(t *testing.T) {
	r := newTestStatsRepo(t)
	ctx := context.Background()

	week := time.Date(2030, 6, 12, 0, 0, 0, 0, time.UTC)
	_, err := r.UpsertWeekly(ctx, domain.WeeklyStat{WeekStart: week, Sandwiches: 100, Volunteers: 4, HostsActive: 2})
	require.NoError(t, err)

	got, err := r.UpsertWeekly(ctx, domain.WeeklyStat{WeekStart: week, Sandwiches: 250, Volunteers: 9, HostsActive: 3})

	require.NoError(t, err)
	assert.Equal(t, 250, got.Sandwiches, "second upsert should replace the first")
	assert.Equal(t, 9, got.Volunteers)
}

func TestStatsRepo_ListWeekly_OrderedAscending(t *testing.T) {
	r := newTestStatsRepo(t)
	ctx := context.Background()

	later := time.Date(2030, 7, 10, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2030, 7, 3, 0, 0, 0, 0, time.UTC)

	// Insert out of order; ListWeekly must sort by week_start.
	_, err := r.UpsertWeekly(ctx, domain.WeeklyStat{WeekStart: later, Sandwiches: 1})
	require.NoError(t, err)
	_, err = r.UpsertWeekly(ctx, domain.WeeklyStat{WeekStart: earlier, Sandwiches: 2})
	require.NoError(t, err)

	stats, err := r.ListWeekly(ctx)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(stats), 2)
	for i := 1; i < len(stats); i++ {
		assert.False(t, stats[i].WeekStart.Before(stats[i-1].WeekStart),
			"weeks should be in ascending order")
	}
}
