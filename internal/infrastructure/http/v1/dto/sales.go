package dto

import (
	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
	"uniformdesk/internal/domain/sales"
)

// CartItem is one line of the checkout request, as the POS client
// sends it.
type CartItem struct {
	ID       string      `json:"id" binding:"required"`
	Name     string      `json:"name"`
	Price    types.Money `json:"price"`
	Quantity int         `json:"quantity"`
}

// CheckoutRequest is the request body for completing a sale.
type CheckoutRequest struct {
	SchoolID string      `json:"schoolId" binding:"required"`
	Cart     []CartItem  `json:"cart"`
	Discount types.Money `json:"discount"`
}

// ToDomain converts the wire request to the validated domain form.
func (r *CheckoutRequest) ToDomain() (sales.CheckoutRequest, error) {
	schoolID, err := id.Parse(r.SchoolID)
	if err != nil {
		return sales.CheckoutRequest{}, apperror.NewValidation("invalid schoolId").
			WithDetail("schoolId", r.SchoolID)
	}

	lines := make([]sales.CartLine, len(r.Cart))
	for i, item := range r.Cart {
		uniformID, err := id.Parse(item.ID)
		if err != nil {
			return sales.CheckoutRequest{}, apperror.NewValidation("invalid uniform id in cart").
				WithDetail("line", i).
				WithDetail("id", item.ID)
		}
		lines[i] = sales.CartLine{
			UniformID: uniformID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		}
	}

	return sales.CheckoutRequest{
		SchoolID:    schoolID,
		Lines:       lines,
		DiscountPct: r.Discount,
	}, nil
}

// CheckoutResponse is the response body for a completed sale.
type CheckoutResponse struct {
	Message string      `json:"message"`
	Sale    *sales.Sale `json:"sale"`
}
