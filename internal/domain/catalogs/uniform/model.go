// Package uniform provides the Uniform catalog. A Uniform is one
// sellable SKU: an item of a given size for a given school.
package uniform

import (
	"context"
	"strings"
	"time"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
)

// Uniform represents a stock-keeping unit.
type Uniform struct {
	ID id.ID `db:"id" json:"id"`

	SchoolID   id.ID  `db:"school_id" json:"schoolId"`
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`

	Name string `db:"name" json:"name"`
	Size string `db:"size" json:"size"`

	Price     types.Money `db:"price" json:"price"`
	CostPrice types.Money `db:"cost_price" json:"costPrice"`

	// Stock is mutated only through the stock ledger and the sale
	// workflow, never by catalog edits.
	Stock int `db:"stock" json:"stock"`

	// LowStockThreshold: a restock alert fires when stock drops
	// strictly below this value.
	LowStockThreshold int `db:"low_stock_threshold" json:"lowStockThreshold"`

	// Barcode is a unique 12-digit code generated at creation.
	Barcode string `db:"barcode" json:"barcode"`

	// Image is an optional product photo, transported as a base64
	// data URI on the wire.
	Image []byte `db:"image" json:"-"`

	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewUniform creates a Uniform with required fields.
func NewUniform(schoolID id.ID, name, size string, price, costPrice types.Money) *Uniform {
	return &Uniform{
		ID:        id.New(),
		SchoolID:  schoolID,
		Name:      name,
		Size:      size,
		Price:     price,
		CostPrice: costPrice,
		Version:   1,
	}
}

// Validate checks required fields and numeric invariants.
func (u *Uniform) Validate(ctx context.Context) error {
	if strings.TrimSpace(u.Name) == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if strings.TrimSpace(u.Size) == "" {
		return apperror.NewValidation("size is required").WithDetail("field", "size")
	}
	if id.IsNil(u.SchoolID) {
		return apperror.NewValidation("schoolId is required").WithDetail("field", "schoolId")
	}
	if u.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").WithDetail("field", "price")
	}
	if u.CostPrice.IsNegative() {
		return apperror.NewValidation("costPrice must not be negative").WithDetail("field", "costPrice")
	}
	if u.Stock < 0 {
		return apperror.NewValidation("stock must not be negative").WithDetail("field", "stock")
	}
	if u.LowStockThreshold < 0 {
		return apperror.NewValidation("lowStockThreshold must not be negative").WithDetail("field", "lowStockThreshold")
	}
	return nil
}

// IsLowStock reports whether the SKU needs a restock alert.
// Stock exactly at the threshold is not low.
func (u *Uniform) IsLowStock() bool {
	return u.Stock < u.LowStockThreshold
}
