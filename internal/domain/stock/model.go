// Package stock provides the stock ledger: the current on-hand
// quantity per uniform plus an append-only log of every non-sale
// adjustment with its reason.
package stock

import (
	"context"
	"strings"
	"time"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
)

// Adjustment is one ledger entry. Rows are never mutated or deleted
// once written.
type Adjustment struct {
	ID        id.ID     `db:"id" json:"id"`
	UniformID id.ID     `db:"uniform_id" json:"uniformId"`
	Delta     int       `db:"delta" json:"delta"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewAdjustment creates a ledger entry.
func NewAdjustment(uniformID id.ID, delta int, reason string) *Adjustment {
	return &Adjustment{
		ID:        id.New(),
		UniformID: uniformID,
		Delta:     delta,
		Reason:    reason,
	}
}

// Validate checks ledger entry invariants.
func (a *Adjustment) Validate(ctx context.Context) error {
	if id.IsNil(a.UniformID) {
		return apperror.NewValidation("uniformId is required").WithDetail("field", "uniformId")
	}
	if a.Delta == 0 {
		return apperror.NewValidation("adjustment must not be zero").WithDetail("field", "adjustment")
	}
	if strings.TrimSpace(a.Reason) == "" {
		return apperror.NewValidation("reason is required").WithDetail("field", "reason")
	}
	return nil
}

// Entry is a ledger row joined with its uniform for listings.
type Entry struct {
	Adjustment
	UniformName string `db:"uniform_name" json:"uniformName"`
	UniformSize string `db:"uniform_size" json:"uniformSize"`
}

// Filter narrows ledger listings by creation date.
type Filter struct {
	From *time.Time
	To   *time.Time
}
