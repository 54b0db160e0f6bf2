package supplier

import (
	"context"

	"uniformdesk/internal/core/id"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error)
	List(ctx context.Context) ([]*Supplier, error)
	Update(ctx context.Context, s *Supplier) error

	// Delete removes the supplier; uniforms keep their rows with the
	// supplier reference cleared.
	Delete(ctx context.Context, supplierID id.ID) error
}
