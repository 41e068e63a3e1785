package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homenest/internal/app"
	"homenest/internal/domain"
)

func TestDashboard_StatsCacheMissThenHit(t *testing.T) {
	repo := &fakeStatsRepo{
		counts:  map[string]int64{"properties": 12, "reviews": 30, "users": 5},
		revenue: 9800.5,
	}
	cache := &fakeCache{}
	svc := app.NewDashboardService(repo, cache, 10*time.Minute)

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Properties: 12, Reviews: 30, Users: 5, Revenue: 9800.5}, got)
	assert.Equal(t, 4, repo.calls)

	// second read must come from cache
	repo.counts["properties"] = 999
	got2, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), got2.Properties)
	assert.Equal(t, 4, repo.calls)
}

func TestDashboard_StatsEmptyStoreIsZero(t *testing.T) {
	svc := app.NewDashboardService(&fakeStatsRepo{}, nil, time.Minute)

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{}, got)
}

func TestDashboard_StatsFailsWholly(t *testing.T) {
	repo := &fakeStatsRepo{
		counts: map[string]int64{"properties": 1},
		failOn: "revenue",
	}
	cache := &fakeCache{}
	svc := app.NewDashboardService(repo, cache, time.Minute)

	got, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, errStore)
	assert.Equal(t, domain.Stats{}, got)
	assert.Empty(t, cache.store, "failed results must not be cached")
}

func TestDashboard_ChartsEmptyGroupsAreEmptySlices(t *testing.T) {
	svc := app.NewDashboardService(&fakeStatsRepo{}, nil, time.Minute)

	got, err := svc.Charts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got.PropertiesByCategory)
	assert.NotNil(t, got.RevenueByMonth)
	assert.NotNil(t, got.UsersStatus)
	assert.Empty(t, got.PropertiesByCategory)
}

func TestDashboard_Charts(t *testing.T) {
	repo := &fakeStatsRepo{
		cats:     []domain.CategoryCount{{Category: "Rent", Count: 4}, {Category: "Sale", Count: 2}},
		months:   []domain.MonthRevenue{{Month: 1, Revenue: 100}, {Month: 3, Revenue: 50}},
		statuses: []domain.StatusCount{{Name: "active", Value: 7}},
	}
	svc := app.NewDashboardService(repo, &fakeCache{}, time.Minute)

	got, err := svc.Charts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.cats, got.PropertiesByCategory)
	assert.Equal(t, repo.months, got.RevenueByMonth)
	assert.Equal(t, repo.statuses, got.UsersStatus)
}

func TestDashboard_ChartsFailsWholly(t *testing.T) {
	repo := &fakeStatsRepo{failOn: "months"}
	svc := app.NewDashboardService(repo, nil, time.Minute)

	_, err := svc.Charts(context.Background())
	assert.ErrorIs(t, err, errStore)
}
