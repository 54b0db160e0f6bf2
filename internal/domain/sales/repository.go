package sales

import (
	"context"

	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
)

// UniformLine is the slice of a uniform the checkout needs: cost for
// profit, stock for the availability check.
type UniformLine struct {
	ID        id.ID       `db:"id"`
	Name      string      `db:"name"`
	CostPrice types.Money `db:"cost_price"`
	Stock     int         `db:"stock"`
}

// Repository defines persistence for the sale workflow.
type Repository interface {
	SchoolExists(ctx context.Context, schoolID id.ID) (bool, error)

	// GetUniformLine loads one cart line's uniform. NotFound when missing.
	GetUniformLine(ctx context.Context, uniformID id.ID) (*UniformLine, error)

	// DecrementStock subtracts qty guarded by stock >= qty. Returns
	// false when the guard rejects the write (concurrent sale won the
	// stock). The caller runs inside a transaction, so earlier
	// decrements roll back with it.
	DecrementStock(ctx context.Context, uniformID id.ID, qty int) (bool, error)

	// IncrementStock returns quantity to stock (sale deletion).
	IncrementStock(ctx context.Context, uniformID id.ID, qty int) error

	// CreateSale persists the sale row and all its items.
	CreateSale(ctx context.Context, s *Sale) error

	// GetSale loads a sale with its items. NotFound when missing.
	GetSale(ctx context.Context, saleID id.ID) (*Sale, error)

	// DeleteSale removes the sale and its items.
	DeleteSale(ctx context.Context, saleID id.ID) error

	// Aggregate sums sale totals and ranks the top sellers within the
	// filter window.
	Aggregate(ctx context.Context, filter Filter, topN int) (*Aggregate, error)

	// ListDetailed returns sales with school and line details, newest
	// first.
	ListDetailed(ctx context.Context, filter Filter) ([]DetailedSale, error)
}
