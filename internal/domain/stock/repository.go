package stock

import (
	"context"

	"uniformdesk/internal/core/id"
)

// AppliedDelta reports the outcome of a conditional stock update.
type AppliedDelta struct {
	NewStock  int    `db:"stock"`
	Threshold int    `db:"low_stock_threshold"`
	Name      string `db:"name"`
	Size      string `db:"size"`
}

// Repository defines operations for the stock ledger.
type Repository interface {
	// ApplyDelta shifts the uniform's stock by delta in one conditional
	// update: the write succeeds only if the resulting stock stays
	// non-negative. Returns NotFound for an unknown uniform and
	// InsufficientStock when the guard rejects the write.
	ApplyDelta(ctx context.Context, uniformID id.ID, delta int) (*AppliedDelta, error)

	// AppendAdjustment writes one ledger entry.
	AppendAdjustment(ctx context.Context, a *Adjustment) error

	// ListAdjustments returns ledger entries joined with uniform
	// name/size, newest first.
	ListAdjustments(ctx context.Context, filter Filter) ([]Entry, error)

	// UpdateThreshold sets a uniform's low-stock threshold.
	UpdateThreshold(ctx context.Context, uniformID id.ID, threshold int) error
}
