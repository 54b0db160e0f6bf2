// Package numerator provides gap-free sequence numbers backed by the
// sys_sequences table. Uniform barcodes are generated from it so two
// SKUs can never collide on the same code.
package numerator

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service hands out strictly increasing numbers per key.
// Every call does one round trip; the row update serializes concurrent
// callers, which is what guarantees uniqueness.
type Service struct {
	querier Querier
}

// New creates a numerator service.
func New(querier Querier) *Service {
	return &Service{querier: querier}
}

// Next returns the next value of the named sequence, creating it on
// first use.
func (s *Service) Next(ctx context.Context, key string) (int64, error) {
	if key == "" {
		return 0, fmt.Errorf("sequence key is required")
	}

	const query = `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key)
		DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`

	var val int64
	if err := s.querier.QueryRow(ctx, query, key).Scan(&val); err != nil {
		return 0, fmt.Errorf("next value for %q: %w", key, err)
	}
	return val, nil
}

// BarcodeKey is the sequence behind generated uniform barcodes.
const BarcodeKey = "uniform_barcode"

// NextBarcode formats the next barcode value as a 12-digit numeric
// string. The leading 2 marks in-store codes (EAN-13 convention for
// retailer-assigned numbers, without the check digit).
func (s *Service) NextBarcode(ctx context.Context) (string, error) {
	n, err := s.Next(ctx, BarcodeKey)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("2%011d", n), nil
}
