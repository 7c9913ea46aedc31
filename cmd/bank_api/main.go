package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/corebank-transaction-engine/internal/api"
	"github.com/corebank-transaction-engine/internal/config"
	"github.com/corebank-transaction-engine/internal/engine"
	"github.com/corebank-transaction-engine/internal/fees"
	"github.com/corebank-transaction-engine/internal/ledger"
	"github.com/corebank-transaction-engine/internal/logger"
	"github.com/corebank-transaction-engine/internal/metrics"
	"github.com/corebank-transaction-engine/internal/notify"
	"github.com/corebank-transaction-engine/internal/validation"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig("bank_api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector("transaction_engine")
	if err := collector.Register(registry); err != nil {
		log.Error("Failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Initialize the account ledger and validation chain
	ldg := ledger.New(log)
	chain := validation.StandardChain(cfg.Limits, cfg.Fraud, log)

	// Initialize completion-event dispatch with the default observers
	dispatcher, err := notify.NewDispatcher(cfg.Notifier, log, collector)
	if err != nil {
		log.Error("Failed to initialize notification dispatcher", "error", err)
		os.Exit(1)
	}
	dispatcher.Attach(notify.NewAuditObserver())
	dispatcher.Attach(notify.NewStatsObserver())

	// Initialize the transaction processor
	processor := engine.NewProcessor(
		ldg,
		chain,
		fees.New(cfg.Fees),
		dispatcher,
		collector,
		cfg.Limits,
		cfg.Fees,
		log,
		nil,
	)

	// Initialize REST server
	server := api.NewServer(log, cfg, ldg, processor, registry)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Drain queued notifications before exiting
	dispatcher.Close()

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
