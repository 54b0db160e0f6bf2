package school

import (
	"context"
	"fmt"

	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/tx"
	"uniformdesk/pkg/logger"
)

// Service provides business logic for the School catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new School service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create validates and persists a new school.
func (s *Service) Create(ctx context.Context, sc *School) error {
	if err := sc.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(sc.ID) {
		sc.ID = id.New()
	}
	if sc.Version == 0 {
		sc.Version = 1
	}

	if err := s.repo.Create(ctx, sc); err != nil {
		return fmt.Errorf("create school: %w", err)
	}

	logger.Info(ctx, "school created", "id", sc.ID, "name", sc.Name)
	return nil
}

// GetByID retrieves a school.
func (s *Service) GetByID(ctx context.Context, schoolID id.ID) (*School, error) {
	return s.repo.GetByID(ctx, schoolID)
}

// List retrieves all schools.
func (s *Service) List(ctx context.Context) ([]*School, error) {
	return s.repo.List(ctx)
}

// Update modifies an existing school.
func (s *Service) Update(ctx context.Context, sc *School) error {
	if err := sc.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, sc)
}

// Delete removes a school. Its uniforms and sales are removed with it.
func (s *Service) Delete(ctx context.Context, schoolID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, schoolID); err != nil {
			return err
		}
		logger.Info(ctx, "school deleted", "id", schoolID)
		return nil
	})
}
