package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/account-ledger/internal/domain/shared"
	"github.com/panjf2000/ants/v2"
)

// WorkerPoolProcessingService bounds how many operations run at once. Each
// call blocks until its operation has been processed so the consumer only
// commits finished work.
type WorkerPoolProcessingService struct {
	baseService ProcessingService
	pool        *ants.Pool
	logger      *slog.Logger
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolProcessingService(
	baseService ProcessingService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProcessingService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	return &WorkerPoolProcessingService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
	}, nil
}

func (s *WorkerPoolProcessingService) ProcessOperation(ctx context.Context, request *shared.OperationRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}
	logger.Debug("Submitting operation to worker pool",
		"operation_id", request.OperationID,
		"customer_id", request.CustomerID,
	)

	// buffered so a worker never blocks when the caller has gone away
	resultChan := make(chan error, 1)
	requestCopy := *request

	err := s.pool.Submit(func() {
		resultChan <- s.baseService.ProcessOperation(ctx, &requestCopy)
	})
	if err != nil {
		logger.Error("Failed to submit operation to worker pool",
			"operation_id", request.OperationID,
			"error", err,
		)
		return fmt.Errorf("submit operation %s: %w", request.OperationID, err)
	}

	select {
	case err := <-resultChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown releases the pool; queued submissions are rejected afterwards
func (s *WorkerPoolProcessingService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

func (s *WorkerPoolProcessingService) Running() int {
	return s.pool.Running()
}

func (s *WorkerPoolProcessingService) Capacity() int {
	return s.pool.Cap()
}
