package service

import (
	"context"

	"github.com/account-ledger/internal/domain/shared"
	banking "github.com/account-ledger/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) ProcessOperation(ctx context.Context, request *shared.OperationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type MockOperationApplier struct {
	mock.Mock
}

func (m *MockOperationApplier) ApplyOperation(ctx context.Context, req *shared.OperationRequest) (*banking.OperationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*banking.OperationResult), args.Error(1)
}
