package service

import (
	"context"

	"github.com/account-ledger/internal/domain/shared"
	banking "github.com/account-ledger/internal/service"
)

// ProcessingService applies operation requests taken off the operation topic
type ProcessingService interface {
	ProcessOperation(ctx context.Context, request *shared.OperationRequest) error
}

// OperationApplier is the part of the banking service the processor needs
type OperationApplier interface {
	ApplyOperation(ctx context.Context, req *shared.OperationRequest) (*banking.OperationResult, error)
}
