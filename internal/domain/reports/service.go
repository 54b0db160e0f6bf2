package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"uniformdesk/internal/infrastructure/cache"
	"uniformdesk/pkg/logger"
)

// DashboardTopN is the ranking size shown on the dashboard.
const DashboardTopN = 10

// Service serves report queries, caching the dashboard reads.
// Cache failures degrade to a direct query; they are logged, never
// surfaced.
type Service struct {
	repo     Repository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewService creates a new reports service.
func NewService(repo Repository, c cache.Cache, cacheTTL time.Duration) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// LowStock lists uniforms strictly below their threshold.
// Not cached: restock decisions need the live value.
func (s *Service) LowStock(ctx context.Context) ([]LowStockItem, error) {
	return s.repo.LowStock(ctx)
}

// Overview returns the daily dashboard summary for the server's local
// calendar day.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	dayStart := startOfToday()
	dayEnd := dayStart.AddDate(0, 0, 1)

	key := fmt.Sprintf("dashboard:overview:%s", dayStart.Format("2006-01-02"))
	out := &Overview{}
	if s.fromCache(ctx, key, out) {
		return out, nil
	}

	out, err := s.repo.Overview(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, out)
	return out, nil
}

// SalesTrend returns daily sale totals, ascending by date.
func (s *Service) SalesTrend(ctx context.Context) ([]TrendPoint, error) {
	const key = "dashboard:sales-trend"
	var out []TrendPoint
	if s.fromCache(ctx, key, &out) {
		return out, nil
	}

	out, err := s.repo.SalesTrend(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, out)
	return out, nil
}

// TopSelling ranks uniforms by units sold.
func (s *Service) TopSelling(ctx context.Context) ([]TopSellingItem, error) {
	key := fmt.Sprintf("dashboard:top-selling:%d", DashboardTopN)
	var out []TopSellingItem
	if s.fromCache(ctx, key, &out) {
		return out, nil
	}

	out, err := s.repo.TopSelling(ctx, DashboardTopN)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, out)
	return out, nil
}

func (s *Service) fromCache(ctx context.Context, key string, dest any) bool {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn(ctx, "report cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn(ctx, "report cache payload invalid", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		logger.Warn(ctx, "report cache write failed", "key", key, "error", err)
	}
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
