package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/account-ledger/internal/domain/account"
	"github.com/account-ledger/internal/domain/ledger"
	"github.com/account-ledger/internal/domain/shared"
	"github.com/account-ledger/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockBankingService struct {
	mock.Mock
}

func (m *MockBankingService) OpenAccount(ctx context.Context, req service.OpenAccountRequest) (account.Summary, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(account.Summary), args.Error(1)
}

func (m *MockBankingService) GetAccount(ctx context.Context, customerID int64) (account.Summary, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(account.Summary), args.Error(1)
}

func (m *MockBankingService) ListAccounts(ctx context.Context) []account.Summary {
	args := m.Called(ctx)
	return args.Get(0).([]account.Summary)
}

func (m *MockBankingService) RemoveAccount(ctx context.Context, customerID int64) (account.Summary, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(account.Summary), args.Error(1)
}

func (m *MockBankingService) GetHistory(ctx context.Context, customerID int64) ([]ledger.Record, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Record), args.Error(1)
}

func (m *MockBankingService) ApplyOperation(ctx context.Context, req *shared.OperationRequest) (*service.OperationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OperationResult), args.Error(1)
}

func (m *MockBankingService) AdvanceMaturity(ctx context.Context, months int) (*service.MaturityReport, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MaturityReport), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
