package reports

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
	"uniformdesk/internal/infrastructure/cache"
)

type countingRepo struct {
	lowStockCalls   int
	overviewCalls   int
	trendCalls      int
	topSellingCalls int
}

func (r *countingRepo) LowStock(_ context.Context) ([]LowStockItem, error) {
	r.lowStockCalls++
	return []LowStockItem{
		{ID: id.New(), Name: "Blazer", Size: "L", Stock: 2, LowStockThreshold: 5, SchoolName: "Riverside High"},
	}, nil
}

func (r *countingRepo) Overview(_ context.Context, _, _ time.Time) (*Overview, error) {
	r.overviewCalls++
	return &Overview{
		TotalStock:        120,
		TotalSalesToday:   4,
		TotalRevenueToday: types.MustMoney("310"),
		TotalProfitToday:  types.MustMoney("95"),
	}, nil
}

func (r *countingRepo) SalesTrend(_ context.Context) ([]TrendPoint, error) {
	r.trendCalls++
	return []TrendPoint{{Date: "2026-08-28", TotalSales: types.MustMoney("150")}}, nil
}

func (r *countingRepo) TopSelling(_ context.Context, limit int) ([]TopSellingItem, error) {
	r.topSellingCalls++
	return []TopSellingItem{{ID: id.New(), Name: "Polo Shirt", QuantitySold: 40}}, nil
}

func newCachedService(t *testing.T) (*Service, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	repo := &countingRepo{}
	svc := NewService(repo, cache.NewRedis(mr.Addr(), "", 0), 30*time.Second)
	return svc, repo, mr
}

func TestOverview_CachesSecondRead(t *testing.T) {
	svc, repo, _ := newCachedService(t)
	ctx := context.Background()

	first, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.overviewCalls)

	second, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.overviewCalls, "second read must come from cache")
	assert.Equal(t, first.TotalStock, second.TotalStock)
	assert.True(t, first.TotalRevenueToday.Equal(second.TotalRevenueToday))
}

func TestOverview_CacheExpiryTriggersRequery(t *testing.T) {
	svc, repo, mr := newCachedService(t)
	ctx := context.Background()

	_, err := svc.Overview(ctx)
	require.NoError(t, err)

	mr.FastForward(time.Minute)

	_, err = svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.overviewCalls)
}

func TestSalesTrend_Cached(t *testing.T) {
	svc, repo, _ := newCachedService(t)
	ctx := context.Background()

	points, err := svc.SalesTrend(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)

	_, err = svc.SalesTrend(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.trendCalls)
}

func TestTopSelling_Cached(t *testing.T) {
	svc, repo, _ := newCachedService(t)
	ctx := context.Background()

	items, err := svc.TopSelling(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 40, items[0].QuantitySold)

	_, err = svc.TopSelling(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.topSellingCalls)
}

func TestLowStock_NeverCached(t *testing.T) {
	svc, repo, _ := newCachedService(t)
	ctx := context.Background()

	_, err := svc.LowStock(ctx)
	require.NoError(t, err)
	_, err = svc.LowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lowStockCalls)
}

func TestReports_NoopCacheAlwaysQueries(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(repo, nil, 30*time.Second)
	ctx := context.Background()

	_, err := svc.TopSelling(ctx)
	require.NoError(t, err)
	_, err = svc.TopSelling(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.topSellingCalls)
}

func TestReports_CacheDownDegradesToQuery(t *testing.T) {
	svc, repo, mr := newCachedService(t)
	ctx := context.Background()

	mr.Close()

	_, err := svc.TopSelling(ctx)
	require.NoError(t, err)
	_, err = svc.TopSelling(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.topSellingCalls)
}
