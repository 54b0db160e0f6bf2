// Package main is the entry point for the background worker that
// delivers low-stock alert emails.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"uniformdesk/internal/config"
	"uniformdesk/internal/infrastructure/jobs"
	"uniformdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		fmt.Println("REDIS_ADDR must be set for the worker")
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Infow("starting uniformdesk worker",
		"redis", cfg.RedisAddr,
		"alert_to", cfg.AlertTo,
	)

	mailer := &jobs.SMTPMailer{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.AlertFrom,
	}

	srv, mux := jobs.NewServer(jobs.ServerConfig{
		RedisOpts: asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		Mailer:  mailer,
		AlertTo: cfg.AlertTo,
	})

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalw("worker error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	srv.Shutdown()
	log.Info("worker stopped")
}
