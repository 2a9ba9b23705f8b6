package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Event announces a record appended to an account's history. It is the
// payload of the ledger events topic.
type Event struct {
	EventID       uuid.UUID `json:"event_id"`
	CustomerID    int64     `json:"customer_id"`
	AccountType   string    `json:"account_type"`
	Operation     string    `json:"operation"`
	Record        Record    `json:"record"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewEvent wraps record in an event with a fresh ID
func NewEvent(customerID int64, accountType, operation string, record Record, correlationID string) *Event {
	return &Event{
		EventID:       uuid.New(),
		CustomerID:    customerID,
		AccountType:   accountType,
		Operation:     operation,
		Record:        record,
		CorrelationID: correlationID,
		OccurredAt:    record.Timestamp,
	}
}
