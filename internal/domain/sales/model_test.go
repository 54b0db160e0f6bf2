package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
)

func TestSale_NetTotal(t *testing.T) {
	sale := &Sale{
		Total:       types.MustMoney("200"),
		DiscountPct: types.MustMoney("10"),
	}
	assert.True(t, sale.NetTotal().Equal(types.MustMoney("180")), "net = %s", sale.NetTotal())

	sale.DiscountPct = types.Zero()
	assert.True(t, sale.NetTotal().Equal(types.MustMoney("200")))
}

func TestCheckoutRequest_Validate(t *testing.T) {
	valid := func() CheckoutRequest {
		return CheckoutRequest{
			SchoolID: id.New(),
			Lines: []CartLine{
				{UniformID: id.New(), Quantity: 1, UnitPrice: types.MustMoney("10")},
			},
		}
	}

	t.Run("valid", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate(context.Background()))
	})

	t.Run("empty cart", func(t *testing.T) {
		req := valid()
		req.Lines = nil
		err := req.Validate(context.Background())
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeEmptyCart, appErr.Code)
	})

	t.Run("missing school", func(t *testing.T) {
		req := valid()
		req.SchoolID = id.Nil()
		assert.True(t, apperror.IsValidation(req.Validate(context.Background())))
	})

	t.Run("discount of 100 rejected", func(t *testing.T) {
		req := valid()
		req.DiscountPct = types.MustMoney("100")
		assert.True(t, apperror.IsValidation(req.Validate(context.Background())))
	})

	t.Run("discount just under 100 allowed", func(t *testing.T) {
		req := valid()
		req.DiscountPct = types.MustMoney("99.99")
		require.NoError(t, req.Validate(context.Background()))
	})

	t.Run("negative discount rejected", func(t *testing.T) {
		req := valid()
		req.DiscountPct = types.MustMoney("-5")
		assert.True(t, apperror.IsValidation(req.Validate(context.Background())))
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		req := valid()
		req.Lines[0].Quantity = 0
		assert.True(t, apperror.IsValidation(req.Validate(context.Background())))
	})

	t.Run("negative price rejected", func(t *testing.T) {
		req := valid()
		req.Lines[0].UnitPrice = types.MustMoney("-1")
		assert.True(t, apperror.IsValidation(req.Validate(context.Background())))
	})

	t.Run("duplicate uniform rejected", func(t *testing.T) {
		req := valid()
		req.Lines = append(req.Lines, req.Lines[0])
		assert.True(t, apperror.IsValidation(req.Validate(context.Background())))
	})
}
