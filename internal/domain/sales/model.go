// Package sales provides the barcode-driven checkout workflow: cart
// validation, guarded stock decrements, totals and profit, and the
// sale record with its line items.
package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
)

var hundred = decimal.NewFromInt(100)

// SaleItem is one sold line. Immutable once created.
type SaleItem struct {
	ID        id.ID       `db:"id" json:"id"`
	SaleID    id.ID       `db:"sale_id" json:"saleId"`
	UniformID id.ID       `db:"uniform_id" json:"uniformId"`
	Quantity  int         `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
}

// Sale is a completed checkout. Total and Profit are gross figures;
// the discount is stored alongside and applied when presenting the
// net amount.
type Sale struct {
	ID       id.ID `db:"id" json:"id"`
	SchoolID id.ID `db:"school_id" json:"schoolId"`

	Total       types.Money `db:"total" json:"total"`
	Profit      types.Money `db:"profit" json:"profit"`
	DiscountPct types.Money `db:"discount_pct" json:"discountPct"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Items []SaleItem `db:"-" json:"items"`
}

// NetTotal returns the total after discount.
func (s *Sale) NetTotal() types.Money {
	return s.Total.Sub(types.Percent(s.Total, s.DiscountPct))
}

// CartLine is one entry in a pending sale.
type CartLine struct {
	UniformID id.ID       `json:"uniformId"`
	Quantity  int         `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
}

// CheckoutRequest is the validated input of the sale workflow.
type CheckoutRequest struct {
	SchoolID    id.ID       `json:"schoolId"`
	Lines       []CartLine  `json:"lines"`
	DiscountPct types.Money `json:"discountPct"`
}

// Validate checks the cart before any stock is touched.
func (r *CheckoutRequest) Validate(ctx context.Context) error {
	if len(r.Lines) == 0 {
		return apperror.NewEmptyCart()
	}
	if id.IsNil(r.SchoolID) {
		return apperror.NewValidation("schoolId is required").WithDetail("field", "schoolId")
	}
	if r.DiscountPct.IsNegative() || r.DiscountPct.GreaterThanOrEqual(hundred) {
		return apperror.NewValidation("discount must be in [0, 100)").
			WithDetail("field", "discount")
	}

	seen := make(map[id.ID]struct{}, len(r.Lines))
	for i, line := range r.Lines {
		if id.IsNil(line.UniformID) {
			return apperror.NewValidation("cart line is missing uniformId").
				WithDetail("line", i)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("line", i).
				WithDetail("quantity", line.Quantity)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("price must not be negative").
				WithDetail("line", i)
		}
		if _, dup := seen[line.UniformID]; dup {
			return apperror.NewValidation("duplicate cart line for uniform").
				WithDetail("line", i).
				WithDetail("uniformId", line.UniformID)
		}
		seen[line.UniformID] = struct{}{}
	}
	return nil
}

// Filter narrows sale listings and aggregates by creation date.
type Filter struct {
	From *time.Time
	To   *time.Time
}

// TopSeller is one row of the best-sellers ranking.
type TopSeller struct {
	UniformID id.ID  `db:"uniform_id" json:"uniformId"`
	Name      string `db:"name" json:"name"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

// Aggregate is the summary returned by GET /sales.
type Aggregate struct {
	TotalSales types.Money `json:"totalSales"`
	TopSellers []TopSeller `json:"topSellingUniforms"`
}

// DetailedItem is a sale line joined with its uniform for reporting.
type DetailedItem struct {
	SaleItem
	UniformName string `db:"uniform_name" json:"uniformName"`
	UniformSize string `db:"uniform_size" json:"uniformSize"`
}

// DetailedSale is a sale joined with its school and lines.
type DetailedSale struct {
	Sale
	SchoolName string         `db:"school_name" json:"schoolName"`
	LineItems  []DetailedItem `db:"-" json:"items"`
}
