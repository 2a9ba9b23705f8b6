package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/account-ledger/internal/domain/shared"
	banking "github.com/account-ledger/internal/service"
)

// RejectedError marks a request that will fail the same way however often it
// is retried. The consumer parks such requests on the DLQ.
type RejectedError struct {
	Reason shared.FailureReason
	Err    error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("operation rejected (%s): %v", e.Reason, e.Err)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// OperationProcessingService applies requests through the banking service
type OperationProcessingService struct {
	applier OperationApplier
	logger  *slog.Logger
}

func NewOperationProcessingService(logger *slog.Logger, applier OperationApplier) *OperationProcessingService {
	return &OperationProcessingService{
		applier: applier,
		logger:  logger,
	}
}

func (s *OperationProcessingService) ProcessOperation(ctx context.Context, request *shared.OperationRequest) error {
	result, err := s.applier.ApplyOperation(ctx, request)
	if err != nil {
		if banking.IsPermanent(err) {
			return &RejectedError{Reason: banking.FailureReasonFor(err), Err: err}
		}
		return fmt.Errorf("apply operation %s: %w", request.OperationID, err)
	}

	s.logger.Debug("Operation processed",
		"operation_id", request.OperationID,
		"customer_id", request.CustomerID,
		"record_id", result.Record.ID,
		"balance", result.Summary.Balance.String(),
	)
	return nil
}
