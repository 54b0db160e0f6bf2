package school

import (
	"context"

	"uniformdesk/internal/core/id"
)

// Repository defines the interface for School persistence.
type Repository interface {
	Create(ctx context.Context, s *School) error
	GetByID(ctx context.Context, schoolID id.ID) (*School, error)
	List(ctx context.Context) ([]*School, error)

	// Update modifies an existing school with optimistic locking.
	Update(ctx context.Context, s *School) error

	// Delete removes the school; uniforms and sales cascade at the store.
	Delete(ctx context.Context, schoolID id.ID) error

	Exists(ctx context.Context, schoolID id.ID) (bool, error)
}
