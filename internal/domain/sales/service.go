package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/tx"
	"uniformdesk/internal/core/types"
	"uniformdesk/pkg/logger"
)

// TopSellersLimit is the ranking size for the GET /sales aggregate.
const TopSellersLimit = 5

// Service runs the sale workflow.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new sales service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Checkout completes a sale: validates the cart, decrements stock with
// a per-line guard, computes totals and profit, and persists the sale
// with its items. The whole sequence runs in one transaction; any
// failing line rolls back every stock write, so a rejected sale leaves
// no partial effects.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*Sale, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	sale := &Sale{
		ID:          id.New(),
		SchoolID:    req.SchoolID,
		DiscountPct: req.DiscountPct,
		Total:       types.Zero(),
		Profit:      types.Zero(),
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.repo.SchoolExists(ctx, req.SchoolID)
		if err != nil {
			return fmt.Errorf("check school: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("school", req.SchoolID)
		}

		for _, line := range req.Lines {
			u, err := s.repo.GetUniformLine(ctx, line.UniformID)
			if err != nil {
				return err
			}
			if u.Stock < line.Quantity {
				return apperror.NewInsufficientStock(u.ID.String(), line.Quantity, u.Stock)
			}

			// The guard re-checks under the transaction: a concurrent
			// sale may have taken the stock since the read above.
			ok, err := s.repo.DecrementStock(ctx, line.UniformID, line.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !ok {
				return apperror.NewInsufficientStock(u.ID.String(), line.Quantity, u.Stock)
			}

			qty := decimal.NewFromInt(int64(line.Quantity))
			sale.Total = sale.Total.Add(line.UnitPrice.Mul(qty))
			sale.Profit = sale.Profit.Add(line.UnitPrice.Sub(u.CostPrice).Mul(qty))

			sale.Items = append(sale.Items, SaleItem{
				ID:        id.New(),
				SaleID:    sale.ID,
				UniformID: line.UniformID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			})
		}

		if err := s.repo.CreateSale(ctx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale completed",
		"sale_id", sale.ID,
		"school_id", sale.SchoolID,
		"lines", len(sale.Items),
		"total", sale.Total,
		"profit", sale.Profit,
	)
	return sale, nil
}

// GetByID loads a sale with its items.
func (s *Service) GetByID(ctx context.Context, saleID id.ID) (*Sale, error) {
	return s.repo.GetSale(ctx, saleID)
}

// Delete removes a sale and restocks every constituent uniform by the
// quantity recorded on its items. All restocks and deletions commit or
// roll back together.
func (s *Service) Delete(ctx context.Context, saleID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.repo.GetSale(ctx, saleID)
		if err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := s.repo.IncrementStock(ctx, item.UniformID, item.Quantity); err != nil {
				return fmt.Errorf("restock uniform %s: %w", item.UniformID, err)
			}
		}
		if err := s.repo.DeleteSale(ctx, saleID); err != nil {
			return fmt.Errorf("delete sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale deleted and items restocked", "sale_id", saleID)
	return nil
}

// Aggregate returns the sales summary with the top sellers.
func (s *Service) Aggregate(ctx context.Context, filter Filter) (*Aggregate, error) {
	return s.repo.Aggregate(ctx, filter, TopSellersLimit)
}

// Report returns the full sale listing with line items.
func (s *Service) Report(ctx context.Context, filter Filter) ([]DetailedSale, error) {
	return s.repo.ListDetailed(ctx, filter)
}
