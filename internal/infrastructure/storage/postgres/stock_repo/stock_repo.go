// Package stock_repo implements the stock ledger persistence on
// PostgreSQL. The on-hand quantity lives on the uniforms row; the
// ledger entries live in stock_adjustments.
package stock_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/domain/stock"
	"uniformdesk/internal/infrastructure/storage/postgres"
)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txm *postgres.TxManager
}

func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{txm: txm}
}

var _ stock.Repository = (*StockRepo)(nil)

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ApplyDelta shifts stock in one guarded update. The WHERE clause
// rejects writes that would drive stock negative, so concurrent
// adjustments can never race past zero.
func (r *StockRepo) ApplyDelta(ctx context.Context, uniformID id.ID, delta int) (*stock.AppliedDelta, error) {
	const sql = `
		UPDATE uniforms
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING stock, low_stock_threshold, name, size`

	var applied stock.AppliedDelta
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &applied, sql, uniformID, delta)
	if err == nil {
		return &applied, nil
	}
	if !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("apply stock delta: %w", err)
	}

	// No row updated: either the uniform is unknown or the guard
	// rejected the write. Read the current stock to tell them apart.
	var current int
	err = r.txm.GetQuerier(ctx).
		QueryRow(ctx, `SELECT stock FROM uniforms WHERE id = $1`, uniformID).
		Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("uniform", uniformID.String())
		}
		return nil, fmt.Errorf("read stock: %w", err)
	}
	return nil, apperror.NewInsufficientStock(uniformID.String(), -delta, current)
}

func (r *StockRepo) AppendAdjustment(ctx context.Context, a *stock.Adjustment) error {
	q := builder().
		Insert("stock_adjustments").
		Columns("id", "uniform_id", "delta", "reason").
		Values(a.ID, a.UniformID, a.Delta, a.Reason)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

func (r *StockRepo) ListAdjustments(ctx context.Context, filter stock.Filter) ([]stock.Entry, error) {
	q := builder().
		Select(
			"sa.id", "sa.uniform_id", "sa.delta", "sa.reason", "sa.created_at",
			"u.name AS uniform_name", "u.size AS uniform_size",
		).
		From("stock_adjustments sa").
		Join("uniforms u ON u.id = sa.uniform_id").
		OrderBy("sa.created_at DESC")
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"sa.created_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"sa.created_at": *filter.To})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []stock.Entry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	return entries, nil
}

func (r *StockRepo) UpdateThreshold(ctx context.Context, uniformID id.ID, threshold int) error {
	const sql = `
		UPDATE uniforms
		SET low_stock_threshold = $2, updated_at = now()
		WHERE id = $1`

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, uniformID, threshold)
	if err != nil {
		return fmt.Errorf("update threshold: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("uniform", uniformID.String())
	}
	return nil
}
