package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/account-ledger/internal/domain/account"
	"github.com/account-ledger/internal/domain/shared"
	"github.com/account-ledger/internal/operation_processor/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) ProcessOperation(ctx context.Context, request *shared.OperationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type MockDLQPublisher struct {
	mock.Mock
}

func (m *MockDLQPublisher) PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error {
	args := m.Called(ctx, key, originalMessageValue, reason)
	return args.Error(0)
}

func (m *MockDLQPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func encodedRequest(t *testing.T) (*shared.OperationRequest, []byte) {
	t.Helper()
	amount := decimal.NewFromInt(250)
	req := &shared.OperationRequest{
		OperationID:   uuid.New(),
		CustomerID:    42,
		Type:          shared.OperationTypeWithdrawal,
		Amount:        &amount,
		CorrelationID: "corr-42",
	}
	value, err := json.Marshal(req)
	require.NoError(t, err)
	return req, value
}

func matchesRequest(expected *shared.OperationRequest) interface{} {
	return mock.MatchedBy(func(r *shared.OperationRequest) bool {
		return r.OperationID == expected.OperationID &&
			r.CustomerID == expected.CustomerID &&
			r.Amount != nil && r.Amount.Equal(*expected.Amount)
	})
}

func TestOperationEventHandler_HandleMessage(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	key := []byte("42")

	t.Run("ProcessedMessageIsAcknowledged", func(t *testing.T) {
		processor, dlq := new(MockProcessingService), new(MockDLQPublisher)
		handler := NewOperationEventHandler(logger, processor, dlq)
		req, value := encodedRequest(t)
		processor.On("ProcessOperation", ctx, matchesRequest(req)).Return(nil).Once()

		require.NoError(t, handler.HandleMessage(ctx, key, value))
		processor.AssertExpectations(t)
		dlq.AssertNotCalled(t, "PublishToDLQ", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UndecodableMessageGoesToDLQ", func(t *testing.T) {
		processor, dlq := new(MockProcessingService), new(MockDLQPublisher)
		handler := NewOperationEventHandler(logger, processor, dlq)
		value := []byte("{not json")
		dlq.On("PublishToDLQ", ctx, "42", value, mock.MatchedBy(func(reason string) bool {
			return strings.HasPrefix(reason, string(shared.FailureReasonInvalidArgument))
		})).Return(nil).Once()

		require.NoError(t, handler.HandleMessage(ctx, key, value))
		dlq.AssertExpectations(t)
		processor.AssertNotCalled(t, "ProcessOperation", mock.Anything, mock.Anything)
	})

	t.Run("RejectedOperationGoesToDLQWithReason", func(t *testing.T) {
		processor, dlq := new(MockProcessingService), new(MockDLQPublisher)
		handler := NewOperationEventHandler(logger, processor, dlq)
		req, value := encodedRequest(t)
		rejection := &service.RejectedError{
			Reason: shared.FailureReasonInsufficientFunds,
			Err:    account.ValidationError{Op: "withdrawal", Amount: *req.Amount, Reason: account.ErrInsufficientFunds},
		}
		processor.On("ProcessOperation", ctx, matchesRequest(req)).Return(rejection).Once()
		dlq.On("PublishToDLQ", ctx, "42", value, mock.MatchedBy(func(reason string) bool {
			return strings.HasPrefix(reason, "INSUFFICIENT_FUNDS: ")
		})).Return(nil).Once()

		require.NoError(t, handler.HandleMessage(ctx, key, value))
		dlq.AssertExpectations(t)
	})

	t.Run("DLQFailureKeepsMessageUncommitted", func(t *testing.T) {
		processor, dlq := new(MockProcessingService), new(MockDLQPublisher)
		handler := NewOperationEventHandler(logger, processor, dlq)
		req, value := encodedRequest(t)
		rejection := &service.RejectedError{Reason: shared.FailureReasonAccountNotFound, Err: errors.New("not found")}
		processor.On("ProcessOperation", ctx, matchesRequest(req)).Return(rejection).Once()
		dlq.On("PublishToDLQ", ctx, "42", value, mock.Anything).Return(errors.New("dlq down")).Once()

		err := handler.HandleMessage(ctx, key, value)
		require.Error(t, err)
		assert.ErrorIs(t, err, rejection)
	})

	t.Run("NoDLQConfigured", func(t *testing.T) {
		handler := NewOperationEventHandler(logger, new(MockProcessingService), nil)
		assert.Error(t, handler.HandleMessage(ctx, key, []byte("garbage")))
	})

	t.Run("TransientFailureIsReturned", func(t *testing.T) {
		processor, dlq := new(MockProcessingService), new(MockDLQPublisher)
		handler := NewOperationEventHandler(logger, processor, dlq)
		req, value := encodedRequest(t)
		processingErr := errors.New("worker pool closed")
		processor.On("ProcessOperation", ctx, matchesRequest(req)).Return(processingErr).Once()

		err := handler.HandleMessage(ctx, key, value)
		assert.ErrorIs(t, err, processingErr)
		dlq.AssertNotCalled(t, "PublishToDLQ", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
