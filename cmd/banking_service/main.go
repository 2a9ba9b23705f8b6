package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/account-ledger/internal/api_gateway"
	"github.com/account-ledger/internal/config"
	"github.com/account-ledger/internal/domain/registry"
	"github.com/account-ledger/internal/logger"
	"github.com/account-ledger/internal/operation_processor/consumer"
	"github.com/account-ledger/internal/operation_processor/maturity_clock"
	processor "github.com/account-ledger/internal/operation_processor/service"
	"github.com/account-ledger/internal/platform/messaging/consumers"
	"github.com/account-ledger/internal/platform/messaging/producers"
	"github.com/account-ledger/internal/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("banking_service")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	log.Info("Starting Banking Service",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
		"kafka_enabled", cfg.Kafka.Enabled,
		"maturity_clock_enabled", cfg.Maturity.Enabled,
	)

	accounts := registry.New()

	var (
		ledgerProducer *producers.LedgerEventProducer
		dlqProducer    *producers.DLQProducer
		publisher      producers.MessagePublisher
	)
	if cfg.Kafka.Enabled {
		ledgerProducer, err = producers.NewLedgerEventProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize ledger event producer", "error", err)
			os.Exit(1)
		}
		publisher = ledgerProducer

		dlqProducer, err = producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize DLQ Kafka producer", "error", err)
			os.Exit(1)
		}
	}

	bankingService := service.NewBankingService(log, accounts, publisher, cfg.Bank)

	server := api_gateway.NewServer(log, cfg, bankingService)

	errChan := make(chan error, 2)
	var wg sync.WaitGroup

	go func() {
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var (
		kafkaConsumer *consumers.KafkaConsumer
		pool          *processor.WorkerPoolProcessingService
	)
	if cfg.Kafka.Enabled {
		pool, err = processor.NewWorkerPoolProcessingService(
			processor.NewOperationProcessingService(log, bankingService),
			processor.WorkerPoolConfig{Size: cfg.WorkerPool.Size},
			log,
		)
		if err != nil {
			log.Error("Failed to initialize worker pool", "error", err)
			os.Exit(1)
		}

		// a nil *DLQProducer must not reach the handler as a non-nil interface
		var dlq producers.DeadLetterPublisher
		if dlqProducer != nil {
			dlq = dlqProducer
		}
		operationHandler := consumer.NewOperationEventHandler(log, pool, dlq)

		kafkaConsumer = consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info("Starting Kafka consumer",
				"topic", cfg.Kafka.OperationTopic,
				"group", cfg.Kafka.ConsumerGroup,
			)
			if err := kafkaConsumer.Subscribe(appCtx, operationHandler.HandleMessage); err != nil {
				errChan <- fmt.Errorf("kafka consumer error: %w", err)
				return
			}
			// hold the WaitGroup until the in-flight message is handled and committed
			<-kafkaConsumer.Done()
		}()
	}

	if cfg.Maturity.Enabled {
		clock := maturity_clock.NewClock(&cfg.Maturity, bankingService, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Start(appCtx)
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serviceErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Service error occurred", "error", err)
		serviceErr = err
	}

	log.Info("Starting graceful shutdown...")

	// Stop taking HTTP traffic first, then stop the background loops
	if err = server.Stop(context.Background()); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	cancelAppCtx()

	wgChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(wgChan)
	}()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	select {
	case <-wgChan:
		log.Info("All services stopped successfully")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	// the consumer has stopped submitting, so the pool can go
	if pool != nil {
		pool.Shutdown()
	}

	if kafkaConsumer != nil {
		if err = kafkaConsumer.Close(); err != nil {
			log.Error("Error closing Kafka consumer", "error", err)
		}
	}
	if err = dlqProducer.Close(); err != nil {
		log.Error("Error closing DLQ Kafka producer", "error", err)
	}
	if ledgerProducer != nil {
		if err = ledgerProducer.Close(); err != nil {
			log.Error("Error closing ledger event producer", "error", err)
		}
	}

	if serviceErr != nil {
		log.Error("Banking Service shutdown with errors", "error", serviceErr)
	}
	if err != nil {
		log.Error("Banking Service shutdown completed with errors")
	} else {
		log.Info("Banking Service shutdown completed successfully", "accounts", accounts.Len())
	}
}
