package account

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rejection reasons carried by ValidationError
var (
	ErrBelowMinimum           = errors.New("amount is below the minimum transaction amount")
	ErrInsufficientFunds      = errors.New("insufficient funds for withdrawal")
	ErrOverdraftLimitExceeded = errors.New("overdraft limit exceeded")
	ErrOverdraftNotNeeded     = errors.New("amount is covered by the available balance")
	ErrMaturityNotReached     = errors.New("fixed deposit has not reached maturity")
	ErrUnsupportedOperation   = errors.New("operation not supported for this account type")
	ErrInvalidArgument        = errors.New("invalid argument")
)

// ErrLedgerOutOfBalance is returned by Reconcile when balance and history disagree
var ErrLedgerOutOfBalance = errors.New("balance does not match transaction history")

// ValidationError reports a rejected operation. The account is left untouched.
type ValidationError struct {
	Op     string
	Amount decimal.Decimal
	Reason error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s of %s rejected: %v", e.Op, e.Amount.String(), e.Reason)
}

func (e ValidationError) Unwrap() error {
	return e.Reason
}

func rejected(op string, amount decimal.Decimal, reason error) error {
	return ValidationError{Op: op, Amount: amount, Reason: reason}
}

// ComputationError reports an arithmetic failure while deriving an amount
type ComputationError struct {
	Op    string
	Cause error
}

func (e ComputationError) Error() string {
	return "computation failed during " + e.Op + ": " + e.Cause.Error()
}

func (e ComputationError) Unwrap() error {
	return e.Cause
}
