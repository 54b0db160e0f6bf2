package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/domain/catalogs/uniform"
	"uniformdesk/internal/infrastructure/storage/postgres"
)

const uniformTable = "uniforms"

var uniformCols = []string{
	"id", "school_id", "supplier_id", "name", "size",
	"price", "cost_price", "stock", "low_stock_threshold",
	"barcode", "image", "version", "created_at", "updated_at",
}

// UniformRepo implements uniform.Repository.
type UniformRepo struct {
	txm *postgres.TxManager
}

func NewUniformRepo(txm *postgres.TxManager) *UniformRepo {
	return &UniformRepo{txm: txm}
}

var _ uniform.Repository = (*UniformRepo)(nil)

func (r *UniformRepo) Create(ctx context.Context, u *uniform.Uniform) error {
	q := builder().
		Insert(uniformTable).
		Columns("id", "school_id", "supplier_id", "name", "size",
			"price", "cost_price", "stock", "low_stock_threshold",
			"barcode", "image", "version").
		Values(u.ID, u.SchoolID, u.SupplierID, u.Name, u.Size,
			u.Price, u.CostPrice, u.Stock, u.LowStockThreshold,
			u.Barcode, u.Image, u.Version)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return apperror.NewDuplicate("uniform", "barcode", u.Barcode)
		case pgForeignKeyViolation:
			return apperror.NewNotFound("school", u.SchoolID.String())
		}
		return fmt.Errorf("insert uniform: %w", err)
	}
	return nil
}

func (r *UniformRepo) GetByID(ctx context.Context, uniformID id.ID) (*uniform.Uniform, error) {
	q := builder().
		Select(uniformCols...).
		From(uniformTable).
		Where(squirrel.Eq{"id": uniformID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u uniform.Uniform
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("uniform", uniformID.String())
		}
		return nil, fmt.Errorf("get uniform: %w", err)
	}
	return &u, nil
}

func (r *UniformRepo) GetByBarcode(ctx context.Context, barcode string) (*uniform.Uniform, error) {
	q := builder().
		Select(uniformCols...).
		From(uniformTable).
		Where(squirrel.Eq{"barcode": barcode}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u uniform.Uniform
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("uniform", barcode)
		}
		return nil, fmt.Errorf("get uniform by barcode: %w", err)
	}
	return &u, nil
}

func (r *UniformRepo) List(ctx context.Context, schoolID *id.ID) ([]*uniform.Uniform, error) {
	q := builder().
		Select(uniformCols...).
		From(uniformTable).
		OrderBy("name", "size")
	if schoolID != nil {
		q = q.Where(squirrel.Eq{"school_id": *schoolID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var uniforms []*uniform.Uniform
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &uniforms, sql, args...); err != nil {
		return nil, fmt.Errorf("list uniforms: %w", err)
	}
	return uniforms, nil
}

// Update writes catalog fields only. Stock and low_stock_threshold are
// owned by the ledger and modified through StockRepo.
func (r *UniformRepo) Update(ctx context.Context, u *uniform.Uniform) error {
	q := builder().
		Update(uniformTable).
		Set("school_id", u.SchoolID).
		Set("supplier_id", u.SupplierID).
		Set("name", u.Name).
		Set("size", u.Size).
		Set("price", u.Price).
		Set("cost_price", u.CostPrice).
		Set("barcode", u.Barcode).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": u.ID, "version": u.Version})
	if u.Image != nil {
		q = q.Set("image", u.Image)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return apperror.NewDuplicate("uniform", "barcode", u.Barcode)
		case pgForeignKeyViolation:
			return apperror.NewNotFound("school", u.SchoolID.String())
		}
		return fmt.Errorf("update uniform: %w", err)
	}
	if result.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, u.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("uniform", u.ID)
	}
	return nil
}

func (r *UniformRepo) Delete(ctx context.Context, uniformID id.ID) error {
	q := builder().
		Delete(uniformTable).
		Where(squirrel.Eq{"id": uniformID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return apperror.NewConflict("uniform has recorded sales and cannot be deleted")
		}
		return fmt.Errorf("delete uniform: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("uniform", uniformID.String())
	}
	return nil
}
