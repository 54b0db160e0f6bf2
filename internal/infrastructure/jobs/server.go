package jobs

import (
	"github.com/hibiken/asynq"
)

// ServerConfig collects what the worker needs to process alert tasks.
type ServerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Mailer      Mailer
	AlertTo     string
	Concurrency int
}

// NewServer wires an asynq server with the alert handlers registered.
// The caller runs it with srv.Run(mux) and stops it on shutdown.
func NewServer(cfg ServerConfig) (*asynq.Server, *asynq.ServeMux) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeLowStockAlert, NewLowStockHandler(cfg.Mailer, cfg.AlertTo))
	return srv, mux
}
