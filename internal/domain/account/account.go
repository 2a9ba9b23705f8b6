// Package account holds the balance rules of the supported account types.
// Every mutating operation either applies completely (balance change plus one
// ledger record) or returns an error and leaves the account unchanged.
package account

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/account-ledger/internal/domain/customer"
	"github.com/account-ledger/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// MinimumAmount is the smallest accepted deposit or withdrawal
var MinimumAmount = decimal.NewFromInt(100)

// maxMagnitude bounds derived amounts; anything larger is a computation failure
var maxMagnitude = decimal.New(1, 18)

// Type tags the account variant
type Type string

const (
	TypeStandard     Type = "STANDARD"
	TypeSavings      Type = "SAVINGS"
	TypeFixedDeposit Type = "FIXED_DEPOSIT"
)

// Account is the shared record of every account type. Variant-specific state
// lives in variant (nil for a standard account).
type Account struct {
	mu sync.Mutex

	customerID     int64
	name           string
	baseSalary     decimal.Decimal
	openingBalance decimal.Decimal
	balance        decimal.Decimal
	records        []ledger.Record
	createdAt      time.Time

	variant variant
}

// NewAccount opens a standard account for the profile
func NewAccount(profile customer.Profile) *Account {
	return &Account{
		customerID:     profile.CustomerID(),
		name:           profile.FullName(),
		baseSalary:     profile.BaseSalary(),
		openingBalance: profile.OpeningBalance(),
		balance:        profile.OpeningBalance(),
		records:        []ledger.Record{},
		createdAt:      time.Now().UTC(),
	}
}

func (a *Account) CustomerID() int64 { return a.customerID }
func (a *Account) Name() string      { return a.name }

// Type reports the variant tag
func (a *Account) Type() Type {
	if a.variant == nil {
		return TypeStandard
	}
	return a.variant.accountType()
}

// Balance returns the current balance
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit adds amount to the balance. Amounts below MinimumAmount, negative
// ones included, are rejected.
func (a *Account) Deposit(amount decimal.Decimal) (ledger.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.LessThan(MinimumAmount) {
		return ledger.Record{}, rejected("deposit", amount, ErrBelowMinimum)
	}
	return a.apply(ledger.KindDeposit, amount, "deposit of "+amount.String()), nil
}

// Withdraw removes amount from the balance. It never drives the balance below zero.
func (a *Account) Withdraw(amount decimal.Decimal) (ledger.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdraw(amount)
}

func (a *Account) withdraw(amount decimal.Decimal) (ledger.Record, error) {
	if amount.LessThan(MinimumAmount) {
		return ledger.Record{}, rejected("withdrawal", amount, ErrBelowMinimum)
	}
	if amount.GreaterThan(a.balance) {
		return ledger.Record{}, rejected("withdrawal", amount, ErrInsufficientFunds)
	}
	return a.apply(ledger.KindWithdrawal, amount, "withdrawal of "+amount.String()), nil
}

// apply is the only place balance and records change. Callers hold a.mu.
func (a *Account) apply(kind ledger.Kind, amount decimal.Decimal, description string) ledger.Record {
	if kind.Credit() {
		a.balance = a.balance.Add(amount)
	} else {
		a.balance = a.balance.Sub(amount)
	}
	record := ledger.NewRecord(kind, amount, a.balance, description)
	record.Sequence = int64(len(a.records)) + 1
	a.records = append(a.records, record)
	return record
}

// Summary is a read-only snapshot of an account
type Summary struct {
	CustomerID       int64
	Name             string
	Type             Type
	OpeningBalance   decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
	CreatedAt        time.Time

	// Savings only
	OverdraftLimit *decimal.Decimal

	// Fixed deposit only
	LockInRemaining *int
	Term            *int
	InterestRate    *decimal.Decimal
}

// Summary returns the current snapshot of the account
func (a *Account) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Summary{
		CustomerID:       a.customerID,
		Name:             a.name,
		Type:             a.Type(),
		OpeningBalance:   a.openingBalance,
		Balance:          a.balance,
		TransactionCount: len(a.records),
		CreatedAt:        a.createdAt,
	}
	switch v := a.variant.(type) {
	case *Savings:
		limit := v.overdraftLimit
		s.OverdraftLimit = &limit
	case *FixedDeposit:
		lockIn, term, rate := v.lockInRemaining, v.term, v.interestRate
		s.LockInRemaining = &lockIn
		s.Term = &term
		s.InterestRate = &rate
	}
	return s
}

// History returns a copy of the ledger in append order
func (a *Account) History() []ledger.Record {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]ledger.Record, len(a.records))
	copy(out, a.records)
	return out
}

// Reconcile checks that the balance equals the opening balance plus the signed
// sum of the recorded transactions
func (a *Account) Reconcile() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	expected := a.openingBalance.Add(ledger.Net(a.records))
	if !expected.Equal(a.balance) {
		return fmt.Errorf("%w: customer %d balance %s, ledger %s", ErrLedgerOutOfBalance, a.customerID, a.balance, expected)
	}
	return nil
}

// IsRejection reports whether err is a business rule rejection as opposed to an
// infrastructure or computation failure
func IsRejection(err error) bool {
	var vErr ValidationError
	return errors.As(err, &vErr)
}
