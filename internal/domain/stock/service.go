package stock

import (
	"context"
	"fmt"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/tx"
	"uniformdesk/internal/domain/alerts"
	"uniformdesk/pkg/logger"
)

// Service provides business operations for the stock ledger.
type Service struct {
	repo      Repository
	txManager tx.Manager
	alerter   alerts.Alerter
}

// NewService creates a new stock ledger service.
func NewService(repo Repository, txManager tx.Manager, alerter alerts.Alerter) *Service {
	if alerter == nil {
		alerter = alerts.Noop{}
	}
	return &Service{
		repo:      repo,
		txManager: txManager,
		alerter:   alerter,
	}
}

// AdjustResult is returned from AdjustStock.
type AdjustResult struct {
	UniformID id.ID `json:"uniformId"`
	NewStock  int   `json:"updatedStock"`
}

// AdjustStock shifts a uniform's stock by delta and appends a ledger
// entry, both in one transaction. A positive delta is a restock, a
// negative one a manual write-off.
//
// If the write drops stock below the uniform's threshold, a low-stock
// alert is raised after commit. Alert failures are logged and
// swallowed; the adjustment itself has already succeeded.
func (s *Service) AdjustStock(ctx context.Context, uniformID id.ID, delta int, reason string) (*AdjustResult, error) {
	adj := NewAdjustment(uniformID, delta, reason)
	if err := adj.Validate(ctx); err != nil {
		return nil, err
	}

	var applied *AppliedDelta
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		applied, err = s.repo.ApplyDelta(ctx, uniformID, delta)
		if err != nil {
			return err
		}
		if err := s.repo.AppendAdjustment(ctx, adj); err != nil {
			return fmt.Errorf("append adjustment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock adjusted",
		"uniform_id", uniformID,
		"delta", delta,
		"reason", reason,
		"stock", applied.NewStock,
	)

	previous := applied.NewStock - delta
	if applied.NewStock < applied.Threshold && previous >= applied.Threshold {
		s.raiseLowStock(ctx, uniformID, applied)
	}

	return &AdjustResult{UniformID: uniformID, NewStock: applied.NewStock}, nil
}

// raiseLowStock notifies the alerter; failures never propagate.
func (s *Service) raiseLowStock(ctx context.Context, uniformID id.ID, applied *AppliedDelta) {
	alert := alerts.LowStockAlert{
		UniformID: uniformID,
		Name:      applied.Name,
		Size:      applied.Size,
		Stock:     applied.NewStock,
		Threshold: applied.Threshold,
	}
	if err := s.alerter.LowStock(ctx, alert); err != nil {
		depErr := apperror.NewDependency("low-stock alert", err)
		logger.Warn(ctx, "low-stock alert not delivered",
			"uniform_id", uniformID,
			"error", depErr,
		)
	}
}

// ListAdjustments returns the ledger, newest first.
func (s *Service) ListAdjustments(ctx context.Context, filter Filter) ([]Entry, error) {
	return s.repo.ListAdjustments(ctx, filter)
}

// UpdateThreshold sets a uniform's low-stock threshold.
func (s *Service) UpdateThreshold(ctx context.Context, uniformID id.ID, threshold int) error {
	if threshold < 0 {
		return apperror.NewValidation("lowStockThreshold must not be negative").
			WithDetail("field", "lowStockThreshold")
	}
	if err := s.repo.UpdateThreshold(ctx, uniformID, threshold); err != nil {
		return err
	}
	logger.Info(ctx, "low-stock threshold updated",
		"uniform_id", uniformID,
		"threshold", threshold,
	)
	return nil
}
