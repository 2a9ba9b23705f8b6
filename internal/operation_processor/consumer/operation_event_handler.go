package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/account-ledger/internal/domain/shared"
	"github.com/account-ledger/internal/operation_processor/service"
	"github.com/account-ledger/internal/platform/messaging/producers"
)

// OperationEventHandler turns operation topic messages into account operations.
// Messages that can never succeed go to the DLQ and are acknowledged; anything
// else that fails is returned so the offset stays uncommitted.
type OperationEventHandler struct {
	processingService service.ProcessingService
	dlq               producers.DeadLetterPublisher
	logger            *slog.Logger
}

func NewOperationEventHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	dlq producers.DeadLetterPublisher,
) *OperationEventHandler {
	return &OperationEventHandler{
		processingService: processingService,
		dlq:               dlq,
		logger:            logger,
	}
}

// HandleMessage matches consumers.MessageHandler
func (h *OperationEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var request shared.OperationRequest
	if err := json.Unmarshal(value, &request); err != nil {
		h.logger.Error("Failed to decode operation request", "message_key", string(key), "error", err)
		return h.deadLetter(ctx, h.logger, key, value, fmt.Sprintf("%s: %v", shared.FailureReasonInvalidArgument, err), err)
	}

	logger := h.logger.With("operation_id", request.OperationID, "customer_id", request.CustomerID)
	if request.CorrelationID != "" {
		logger = logger.With("correlation_id", request.CorrelationID)
	}
	logger.Info("Received operation request", "type", string(request.Type), "amount", request.AmountOrZero().String())

	err := h.processingService.ProcessOperation(ctx, &request)
	if err == nil {
		logger.Info("Operation request processed")
		return nil
	}

	var rejected *service.RejectedError
	if errors.As(err, &rejected) {
		logger.Warn("Operation request rejected", "reason", string(rejected.Reason), "error", rejected.Err)
		return h.deadLetter(ctx, logger, key, value, fmt.Sprintf("%s: %v", rejected.Reason, rejected.Err), err)
	}

	logger.Error("Failed to process operation request", "error", err)
	return fmt.Errorf("processing operation %s failed: %w", request.OperationID, err)
}

// deadLetter parks the message and acknowledges it. Without a DLQ, or when
// the DLQ write fails, cause is returned so the message is redelivered.
func (h *OperationEventHandler) deadLetter(ctx context.Context, logger *slog.Logger, key, value []byte, reason string, cause error) error {
	if h.dlq == nil {
		return fmt.Errorf("unprocessable message with no DLQ configured: %w", cause)
	}
	if err := h.dlq.PublishToDLQ(ctx, string(key), value, reason); err != nil {
		logger.Error("Failed to publish message to DLQ", "dlq_error", err, "original_error", cause)
		return fmt.Errorf("dead letter failed (%v): %w", err, cause)
	}
	return nil
}
