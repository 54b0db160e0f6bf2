package uniform

import (
	"context"

	"uniformdesk/internal/core/id"
)

// Repository defines the interface for Uniform persistence.
type Repository interface {
	Create(ctx context.Context, u *Uniform) error
	GetByID(ctx context.Context, uniformID id.ID) (*Uniform, error)
	GetByBarcode(ctx context.Context, barcode string) (*Uniform, error)

	// List returns uniforms, optionally filtered by owning school.
	List(ctx context.Context, schoolID *id.ID) ([]*Uniform, error)

	// Update modifies catalog fields with optimistic locking.
	// Stock is owned by the ledger and not written here.
	Update(ctx context.Context, u *Uniform) error

	Delete(ctx context.Context, uniformID id.ID) error
}
