// Package jobs runs background work over Redis with asynq. The only
// task today is the low-stock alert email raised by the stock ledger.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"uniformdesk/internal/domain/alerts"
	"uniformdesk/pkg/logger"
)

const (
	// QueueDefault is the queue all alert tasks go to.
	QueueDefault = "default"

	// TaskTypeLowStockAlert notifies staff that a uniform dropped
	// below its restock threshold.
	TaskTypeLowStockAlert = "alert:low_stock"
)

// NewLowStockTask constructs an asynq task for a low-stock alert.
func NewLowStockTask(alert alerts.LowStockAlert) (*asynq.Task, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLowStockAlert, data, asynq.MaxRetry(3), asynq.Queue(QueueDefault)), nil
}

// Enqueuer pushes alert tasks onto the queue. It implements
// alerts.Alerter so the stock service stays unaware of asynq.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisOpts asynq.RedisClientOpt) *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisOpts)}
}

var _ alerts.Alerter = (*Enqueuer)(nil)

func (e *Enqueuer) LowStock(ctx context.Context, alert alerts.LowStockAlert) error {
	task, err := NewLowStockTask(alert)
	if err != nil {
		return fmt.Errorf("build low stock task: %w", err)
	}
	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue low stock task: %w", err)
	}
	logger.Debug(ctx, "Enqueued low stock alert",
		"task_id", info.ID,
		"uniform_id", alert.UniformID,
	)
	return nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}

// NewLowStockHandler returns the worker-side handler that renders and
// sends the alert email.
func NewLowStockHandler(mailer Mailer, to string) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var alert alerts.LowStockAlert
		if err := json.Unmarshal(t.Payload(), &alert); err != nil {
			return fmt.Errorf("decode payload: %w", asynq.SkipRetry)
		}
		if to == "" {
			logger.Warn(ctx, "Low stock alert dropped, no recipient configured",
				"uniform_id", alert.UniformID,
			)
			return nil
		}

		subject := fmt.Sprintf("Low stock: %s (%s)", alert.Name, alert.Size)
		body := fmt.Sprintf(
			"Stock for %s (size %s) is down to %d, below the restock threshold of %d.\n\nUniform ID: %s\n",
			alert.Name, alert.Size, alert.Stock, alert.Threshold, alert.UniformID,
		)
		if err := mailer.Send(ctx, to, subject, body); err != nil {
			return fmt.Errorf("send alert mail: %w", err)
		}
		logger.Info(ctx, "Low stock alert sent",
			"uniform_id", alert.UniformID,
			"stock", alert.Stock,
			"threshold", alert.Threshold,
		)
		return nil
	}
}
