package uniform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
)

func validUniform() *Uniform {
	return NewUniform(id.New(), "Polo Shirt", "M",
		types.MustMoney("12.50"), types.MustMoney("7.00"))
}

func TestUniform_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validUniform().Validate(context.Background()))
	})

	t.Run("missing name", func(t *testing.T) {
		u := validUniform()
		u.Name = "  "
		assert.True(t, apperror.IsValidation(u.Validate(context.Background())))
	})

	t.Run("missing school", func(t *testing.T) {
		u := validUniform()
		u.SchoolID = id.Nil()
		assert.True(t, apperror.IsValidation(u.Validate(context.Background())))
	})

	t.Run("negative price", func(t *testing.T) {
		u := validUniform()
		u.Price = types.MustMoney("-1")
		assert.True(t, apperror.IsValidation(u.Validate(context.Background())))
	})

	t.Run("negative stock", func(t *testing.T) {
		u := validUniform()
		u.Stock = -1
		assert.True(t, apperror.IsValidation(u.Validate(context.Background())))
	})
}

func TestUniform_IsLowStock(t *testing.T) {
	u := validUniform()
	u.LowStockThreshold = 5

	u.Stock = 4
	assert.True(t, u.IsLowStock())

	// Exactly at the threshold is not low.
	u.Stock = 5
	assert.False(t, u.IsLowStock())

	u.Stock = 6
	assert.False(t, u.IsLowStock())

	// Zero threshold never alerts.
	u.LowStockThreshold = 0
	u.Stock = 0
	assert.False(t, u.IsLowStock())
}
