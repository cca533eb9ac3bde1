package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"inversiones/internal/amqp"
	"inversiones/internal/config"
	applog "inversiones/internal/log"
	"inversiones/internal/sheets"
	gsheet "inversiones/internal/sheets/google"
	"inversiones/internal/socrata"
	"inversiones/internal/storage"
	"inversiones/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting inversiones-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSnapshotRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize snapshot store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	client := socrata.NewClient(
		socrata.WithBaseURL(cfg.SocrataBaseURL),
		socrata.WithResourceID(cfg.SocrataResourceID),
	)

	// Google Sheets report writer (optional)
	var reports sheets.ReportWriter
	if cfg.GoogleSpreadsheetID != "" {
		cli, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		reports = cli
		logger.Info("Google Sheets report writer initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets report disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	// AMQP refresh events (optional)
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// With a broker the report is driven by refresh events; without one the
	// snapshot worker appends it inline after each refresh.
	var publisher worker.Publisher
	inlineReports := reports
	if amqpClient != nil {
		publisher = amqpClient
		if reports != nil {
			inlineReports = nil
			reportWorker := worker.NewReportWorker(repo, reports)
			go func() {
				err := amqpClient.ConsumeDatasetRefresh(ctx, func(msg *amqp.DatasetRefreshMessage) error {
					return reportWorker.HandleRefreshMessage(ctx, msg)
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("Refresh event consumption failed", "error", err)
					cancel()
				}
			}()
		}
	}

	snapshotWorker := worker.NewSnapshotWorker(client, repo, publisher, inlineReports, cfg.RefreshInterval)

	go func() {
		if err := snapshotWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Snapshot worker stopped", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Worker stopped gracefully")
}
