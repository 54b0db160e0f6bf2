package reports

import (
	"context"
	"time"
)

// Repository defines the report queries.
type Repository interface {
	// LowStock lists uniforms with stock < low_stock_threshold.
	LowStock(ctx context.Context) ([]LowStockItem, error)

	// Overview sums total stock and today's sales figures. The day
	// boundaries are computed by the caller in server-local time.
	Overview(ctx context.Context, dayStart, dayEnd time.Time) (*Overview, error)

	// SalesTrend groups sale totals by calendar date, ascending.
	SalesTrend(ctx context.Context) ([]TrendPoint, error)

	// TopSelling ranks uniforms by units sold, descending.
	TopSelling(ctx context.Context, limit int) ([]TopSellingItem, error)
}
