package uniform

import (
	"context"
	"fmt"

	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/tx"
	"uniformdesk/pkg/logger"
	"uniformdesk/pkg/numerator"
)

// BarcodeGenerator hands out unique barcode strings.
type BarcodeGenerator interface {
	NextBarcode(ctx context.Context) (string, error)
}

var _ BarcodeGenerator = (*numerator.Service)(nil)

// Service provides business logic for the Uniform catalog.
type Service struct {
	repo      Repository
	barcodes  BarcodeGenerator
	txManager tx.Manager
}

// NewService creates a new Uniform service.
func NewService(repo Repository, barcodes BarcodeGenerator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		barcodes:  barcodes,
		txManager: txManager,
	}
}

// Create validates and persists a new uniform, generating a barcode
// when the caller did not supply one.
func (s *Service) Create(ctx context.Context, u *Uniform) error {
	if err := u.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(u.ID) {
		u.ID = id.New()
	}
	if u.Version == 0 {
		u.Version = 1
	}

	if u.Barcode == "" {
		code, err := s.barcodes.NextBarcode(ctx)
		if err != nil {
			return fmt.Errorf("generate barcode: %w", err)
		}
		u.Barcode = code
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return fmt.Errorf("create uniform: %w", err)
	}

	logger.Info(ctx, "uniform created",
		"id", u.ID,
		"name", u.Name,
		"size", u.Size,
		"barcode", u.Barcode,
	)
	return nil
}

// GetByID retrieves a uniform.
func (s *Service) GetByID(ctx context.Context, uniformID id.ID) (*Uniform, error) {
	return s.repo.GetByID(ctx, uniformID)
}

// GetByBarcode resolves a scanned barcode to a uniform.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*Uniform, error) {
	return s.repo.GetByBarcode(ctx, barcode)
}

// List retrieves uniforms, optionally filtered by school.
func (s *Service) List(ctx context.Context, schoolID *id.ID) ([]*Uniform, error) {
	return s.repo.List(ctx, schoolID)
}

// Update modifies catalog fields of an existing uniform.
func (s *Service) Update(ctx context.Context, u *Uniform) error {
	if err := u.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, u)
}

// Delete removes a uniform and its ledger history.
func (s *Service) Delete(ctx context.Context, uniformID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, uniformID)
	})
}
