package supplier

import (
	"context"
	"fmt"

	"uniformdesk/internal/core/id"
	"uniformdesk/pkg/logger"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new supplier.
func (s *Service) Create(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(sup.ID) {
		sup.ID = id.New()
	}
	if sup.Version == 0 {
		sup.Version = 1
	}

	if err := s.repo.Create(ctx, sup); err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}

	logger.Info(ctx, "supplier created", "id", sup.ID, "name", sup.Name)
	return nil
}

// GetByID retrieves a supplier.
func (s *Service) GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	return s.repo.GetByID(ctx, supplierID)
}

// List retrieves all suppliers.
func (s *Service) List(ctx context.Context) ([]*Supplier, error) {
	return s.repo.List(ctx)
}

// Update modifies an existing supplier.
func (s *Service) Update(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, sup)
}

// Delete removes a supplier.
func (s *Service) Delete(ctx context.Context, supplierID id.ID) error {
	return s.repo.Delete(ctx, supplierID)
}
