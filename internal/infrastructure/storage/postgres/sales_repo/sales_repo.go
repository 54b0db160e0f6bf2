// Package sales_repo implements sale persistence on PostgreSQL.
package sales_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
	"uniformdesk/internal/domain/sales"
	"uniformdesk/internal/infrastructure/storage/postgres"
)

// SalesRepo implements sales.Repository.
type SalesRepo struct {
	txm *postgres.TxManager
}

func NewSalesRepo(txm *postgres.TxManager) *SalesRepo {
	return &SalesRepo{txm: txm}
}

var _ sales.Repository = (*SalesRepo)(nil)

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *SalesRepo) SchoolExists(ctx context.Context, schoolID id.ID) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM schools WHERE id = $1)`

	var exists bool
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, schoolID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check school exists: %w", err)
	}
	return exists, nil
}

func (r *SalesRepo) GetUniformLine(ctx context.Context, uniformID id.ID) (*sales.UniformLine, error) {
	const sql = `SELECT id, name, cost_price, stock FROM uniforms WHERE id = $1`

	var line sales.UniformLine
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &line, sql, uniformID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("uniform", uniformID.String())
		}
		return nil, fmt.Errorf("get uniform line: %w", err)
	}
	return &line, nil
}

// DecrementStock subtracts qty only while enough stock remains. A
// false return means a concurrent writer consumed the stock between
// the caller's availability check and this write.
func (r *SalesRepo) DecrementStock(ctx context.Context, uniformID id.ID, qty int) (bool, error) {
	const sql = `
		UPDATE uniforms
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, uniformID, qty)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *SalesRepo) IncrementStock(ctx context.Context, uniformID id.ID, qty int) error {
	const sql = `
		UPDATE uniforms
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1`

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, uniformID, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("uniform", uniformID.String())
	}
	return nil
}

func (r *SalesRepo) CreateSale(ctx context.Context, s *sales.Sale) error {
	q := builder().
		Insert("sales").
		Columns("id", "school_id", "total", "profit", "discount_pct").
		Values(s.ID, s.SchoolID, s.Total, s.Profit, s.DiscountPct)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	items := builder().
		Insert("sale_items").
		Columns("id", "sale_id", "uniform_id", "quantity", "unit_price")
	for _, item := range s.Items {
		items = items.Values(item.ID, s.ID, item.UniformID, item.Quantity, item.UnitPrice)
	}

	sql, args, err = items.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale items: %w", err)
	}
	return nil
}

func (r *SalesRepo) GetSale(ctx context.Context, saleID id.ID) (*sales.Sale, error) {
	const saleSQL = `
		SELECT id, school_id, total, profit, discount_pct, created_at
		FROM sales WHERE id = $1`

	var s sales.Sale
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, saleSQL, saleID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", saleID.String())
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	const itemsSQL = `
		SELECT id, sale_id, uniform_id, quantity, unit_price
		FROM sale_items WHERE sale_id = $1`

	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &s.Items, itemsSQL, saleID); err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	return &s, nil
}

func (r *SalesRepo) DeleteSale(ctx context.Context, saleID id.ID) error {
	// sale_items cascades on the foreign key.
	const sql = `DELETE FROM sales WHERE id = $1`

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, saleID)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", saleID.String())
	}
	return nil
}

func (r *SalesRepo) Aggregate(ctx context.Context, filter sales.Filter, topN int) (*sales.Aggregate, error) {
	querier := r.txm.GetQuerier(ctx)

	totalQ := builder().
		Select("COALESCE(SUM(total), 0) AS total").
		From("sales")
	totalQ = applySaleFilter(totalQ, filter, "created_at")

	sql, args, err := totalQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build total query: %w", err)
	}

	var total types.Money
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}

	topQ := builder().
		Select(
			"si.uniform_id",
			"u.name",
			"SUM(si.quantity)::int AS quantity",
		).
		From("sale_items si").
		Join("uniforms u ON u.id = si.uniform_id").
		Join("sales s ON s.id = si.sale_id").
		GroupBy("si.uniform_id", "u.name").
		OrderBy("quantity DESC").
		Limit(uint64(topN))
	topQ = applySaleFilter(topQ, filter, "s.created_at")

	sql, args, err = topQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top sellers query: %w", err)
	}

	top := make([]sales.TopSeller, 0, topN)
	if err := pgxscan.Select(ctx, querier, &top, sql, args...); err != nil {
		return nil, fmt.Errorf("rank top sellers: %w", err)
	}

	return &sales.Aggregate{TotalSales: total, TopSellers: top}, nil
}

func (r *SalesRepo) ListDetailed(ctx context.Context, filter sales.Filter) ([]sales.DetailedSale, error) {
	querier := r.txm.GetQuerier(ctx)

	q := builder().
		Select(
			"s.id", "s.school_id", "s.total", "s.profit", "s.discount_pct", "s.created_at",
			"sc.name AS school_name",
		).
		From("sales s").
		Join("schools sc ON sc.id = s.school_id").
		OrderBy("s.created_at DESC")
	q = applySaleFilter(q, filter, "s.created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var result []sales.DetailedSale
	if err := pgxscan.Select(ctx, querier, &result, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if len(result) == 0 {
		return result, nil
	}

	saleIDs := make([]id.ID, len(result))
	index := make(map[id.ID]int, len(result))
	for i := range result {
		saleIDs[i] = result[i].ID
		index[result[i].ID] = i
	}

	const itemsSQL = `
		SELECT si.id, si.sale_id, si.uniform_id, si.quantity, si.unit_price,
		       u.name AS uniform_name, u.size AS uniform_size
		FROM sale_items si
		JOIN uniforms u ON u.id = si.uniform_id
		WHERE si.sale_id = ANY($1)`

	var items []sales.DetailedItem
	if err := pgxscan.Select(ctx, querier, &items, itemsSQL, saleIDs); err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	for _, item := range items {
		i := index[item.SaleID]
		result[i].LineItems = append(result[i].LineItems, item)
	}
	return result, nil
}

func applySaleFilter(q squirrel.SelectBuilder, filter sales.Filter, col string) squirrel.SelectBuilder {
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{col: *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{col: *filter.To})
	}
	return q
}
