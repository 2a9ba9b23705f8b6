package shared

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOperationType = errors.New("invalid operation type")
	ErrMissingAmount        = errors.New("operation requires an amount")
)

// OperationRequest asks for one operation on a customer's account. It is the
// Kafka message consumed by the operation processor and the body the gateway
// builds from HTTP requests.
type OperationRequest struct {
	OperationID   uuid.UUID        `json:"operation_id"`
	CustomerID    int64            `json:"customer_id"`
	Type          OperationType    `json:"type"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	CorrelationID string           `json:"correlation_id,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

// Validate checks the shape of the request; balance rules are left to the account
func (r *OperationRequest) Validate() error {
	if !r.Type.Valid() {
		return ErrInvalidOperationType
	}
	if r.Type.RequiresAmount() && r.Amount == nil {
		return ErrMissingAmount
	}
	return nil
}

// AmountOrZero returns the requested amount, or zero when none was given
func (r *OperationRequest) AmountOrZero() decimal.Decimal {
	if r.Amount == nil {
		return decimal.Zero
	}
	return *r.Amount
}
