// Package alerts defines the outbound notification contract.
// Delivery is fire-and-forget: a failed alert is logged by the caller
// and never fails the stock operation that raised it.
package alerts

import (
	"context"

	"uniformdesk/internal/core/id"
)

// LowStockAlert describes a SKU that dropped below its threshold.
type LowStockAlert struct {
	UniformID id.ID  `json:"uniformId"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
}

// Alerter dispatches alerts to an external channel.
type Alerter interface {
	LowStock(ctx context.Context, alert LowStockAlert) error
}

// Noop discards alerts. Used when no queue is configured and in tests.
type Noop struct{}

func (Noop) LowStock(_ context.Context, _ LowStockAlert) error { return nil }
