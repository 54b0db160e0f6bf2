// Package report_repo implements the dashboard and restock queries on
// PostgreSQL. Everything here is read-only.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"uniformdesk/internal/domain/reports"
	"uniformdesk/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

var _ reports.Repository = (*ReportRepo)(nil)

func (r *ReportRepo) LowStock(ctx context.Context) ([]reports.LowStockItem, error) {
	const sql = `
		SELECT u.id, u.name, u.size, u.stock, u.low_stock_threshold,
		       s.name AS school_name
		FROM uniforms u
		JOIN schools s ON s.id = u.school_id
		WHERE u.stock < u.low_stock_threshold
		ORDER BY u.stock ASC, u.name`

	var items []reports.LowStockItem
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql); err != nil {
		return nil, fmt.Errorf("query low stock: %w", err)
	}
	return items, nil
}

func (r *ReportRepo) Overview(ctx context.Context, dayStart, dayEnd time.Time) (*reports.Overview, error) {
	querier := r.txm.GetQuerier(ctx)
	var o reports.Overview

	const stockSQL = `SELECT COALESCE(SUM(stock), 0)::int FROM uniforms`
	if err := querier.QueryRow(ctx, stockSQL).Scan(&o.TotalStock); err != nil {
		return nil, fmt.Errorf("sum stock: %w", err)
	}

	const todaySQL = `
		SELECT COUNT(*)::int,
		       COALESCE(SUM(total), 0),
		       COALESCE(SUM(profit), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2`
	err := querier.QueryRow(ctx, todaySQL, dayStart, dayEnd).
		Scan(&o.TotalSalesToday, &o.TotalRevenueToday, &o.TotalProfitToday)
	if err != nil {
		return nil, fmt.Errorf("sum today's sales: %w", err)
	}
	return &o, nil
}

func (r *ReportRepo) SalesTrend(ctx context.Context) ([]reports.TrendPoint, error) {
	const sql = `
		SELECT to_char(created_at::date, 'YYYY-MM-DD') AS date,
		       SUM(total) AS total_sales
		FROM sales
		GROUP BY created_at::date
		ORDER BY created_at::date ASC`

	var points []reports.TrendPoint
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &points, sql); err != nil {
		return nil, fmt.Errorf("query sales trend: %w", err)
	}
	return points, nil
}

func (r *ReportRepo) TopSelling(ctx context.Context, limit int) ([]reports.TopSellingItem, error) {
	const sql = `
		SELECT u.id, u.name, SUM(si.quantity)::int AS quantity_sold
		FROM sale_items si
		JOIN uniforms u ON u.id = si.uniform_id
		GROUP BY u.id, u.name
		ORDER BY quantity_sold DESC
		LIMIT $1`

	var items []reports.TopSellingItem
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, limit); err != nil {
		return nil, fmt.Errorf("query top selling: %w", err)
	}
	return items, nil
}
