package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies a balance-affecting event
type Kind string

const (
	KindDeposit    Kind = "DEPOSIT"
	KindWithdrawal Kind = "WITHDRAWAL"
	KindOverdraft  Kind = "OVERDRAFT"
	KindInterest   Kind = "INTEREST"
)

// Credit reports whether the kind adds to the balance
func (k Kind) Credit() bool {
	return k == KindDeposit || k == KindInterest
}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindOverdraft, KindInterest:
		return true
	}
	return false
}

// Record is one immutable entry of an account's transaction history.
// Amount is always the positive magnitude; the sign comes from Kind.
// Sequence is the 1-based position in the account's history.
type Record struct {
	ID           uuid.UUID       `json:"id"`
	Sequence     int64           `json:"sequence"`
	Kind         Kind            `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description"`
	Timestamp    time.Time       `json:"timestamp"`
}

// NewRecord stamps a record with a fresh ID and the current time
func NewRecord(kind Kind, amount, balanceAfter decimal.Decimal, description string) Record {
	return Record{
		ID:           uuid.New(),
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Description:  description,
		Timestamp:    time.Now().UTC(),
	}
}

// Signed returns the amount with the ledger sign applied
func (r Record) Signed() decimal.Decimal {
	if r.Kind.Credit() {
		return r.Amount
	}
	return r.Amount.Neg()
}

// Net sums the signed amounts of records
func Net(records []Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Signed())
	}
	return total
}
