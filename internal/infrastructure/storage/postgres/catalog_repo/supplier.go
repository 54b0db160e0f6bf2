package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/domain/catalogs/supplier"
	"uniformdesk/internal/infrastructure/storage/postgres"
)

const supplierTable = "suppliers"

var supplierCols = []string{
	"id", "name", "email", "phone", "lead_time_days",
	"version", "created_at", "updated_at",
}

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	txm *postgres.TxManager
}

func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{txm: txm}
}

var _ supplier.Repository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(ctx context.Context, s *supplier.Supplier) error {
	q := builder().
		Insert(supplierTable).
		Columns("id", "name", "email", "phone", "lead_time_days", "version").
		Values(s.ID, s.Name, s.Email, s.Phone, s.LeadTimeDays, s.Version)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return apperror.NewDuplicate("supplier", "email", s.Email)
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	q := builder().
		Select(supplierCols...).
		From(supplierTable).
		Where(squirrel.Eq{"id": supplierID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s supplier.Supplier
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("supplier", supplierID.String())
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]*supplier.Supplier, error) {
	q := builder().
		Select(supplierCols...).
		From(supplierTable).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var suppliers []*supplier.Supplier
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &suppliers, sql, args...); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *supplier.Supplier) error {
	q := builder().
		Update(supplierTable).
		Set("name", s.Name).
		Set("email", s.Email).
		Set("phone", s.Phone).
		Set("lead_time_days", s.LeadTimeDays).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID, "version": s.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return apperror.NewDuplicate("supplier", "email", s.Email)
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if result.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("supplier", s.ID)
	}
	return nil
}

func (r *SupplierRepo) Delete(ctx context.Context, supplierID id.ID) error {
	q := builder().
		Delete(supplierTable).
		Where(squirrel.Eq{"id": supplierID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("supplier", supplierID.String())
	}
	return nil
}
