package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/domain/catalogs/school"
	"uniformdesk/internal/infrastructure/storage/postgres"
)

const schoolTable = "schools"

var schoolCols = []string{
	"id", "name", "address", "phone", "principal",
	"version", "created_at", "updated_at",
}

// SchoolRepo implements school.Repository.
type SchoolRepo struct {
	txm *postgres.TxManager
}

// NewSchoolRepo creates a new school repository.
func NewSchoolRepo(txm *postgres.TxManager) *SchoolRepo {
	return &SchoolRepo{txm: txm}
}

var _ school.Repository = (*SchoolRepo)(nil)

func (r *SchoolRepo) Create(ctx context.Context, s *school.School) error {
	q := builder().
		Insert(schoolTable).
		Columns("id", "name", "address", "phone", "principal", "version").
		Values(s.ID, s.Name, s.Address, s.Phone, s.Principal, s.Version)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert school: %w", err)
	}
	return nil
}

func (r *SchoolRepo) GetByID(ctx context.Context, schoolID id.ID) (*school.School, error) {
	q := builder().
		Select(schoolCols...).
		From(schoolTable).
		Where(squirrel.Eq{"id": schoolID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s school.School
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("school", schoolID.String())
		}
		return nil, fmt.Errorf("get school: %w", err)
	}
	return &s, nil
}

func (r *SchoolRepo) List(ctx context.Context) ([]*school.School, error) {
	q := builder().
		Select(schoolCols...).
		From(schoolTable).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var schools []*school.School
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &schools, sql, args...); err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	return schools, nil
}

func (r *SchoolRepo) Update(ctx context.Context, s *school.School) error {
	q := builder().
		Update(schoolTable).
		Set("name", s.Name).
		Set("address", s.Address).
		Set("phone", s.Phone).
		Set("principal", s.Principal).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID, "version": s.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	if result.RowsAffected() == 0 {
		exists, err := r.Exists(ctx, s.ID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NewNotFound("school", s.ID.String())
		}
		return apperror.NewConcurrentModification("school", s.ID)
	}
	return nil
}

func (r *SchoolRepo) Delete(ctx context.Context, schoolID id.ID) error {
	q := builder().
		Delete(schoolTable).
		Where(squirrel.Eq{"id": schoolID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("school", schoolID.String())
	}
	return nil
}

func (r *SchoolRepo) Exists(ctx context.Context, schoolID id.ID) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM schools WHERE id = $1)`

	var exists bool
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, schoolID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check school exists: %w", err)
	}
	return exists, nil
}
