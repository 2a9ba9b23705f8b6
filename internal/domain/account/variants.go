package account

import (
	"errors"
	"fmt"

	"github.com/account-ledger/internal/domain/customer"
	"github.com/account-ledger/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

type variant interface {
	accountType() Type
}

// Savings adds a bounded overdraft to the base account
type Savings struct {
	overdraftLimit decimal.Decimal
}

func (*Savings) accountType() Type { return TypeSavings }

// FixedDeposit locks the balance for a term and pays interest at maturity.
// term keeps the original lock-in; lockInRemaining counts down.
type FixedDeposit struct {
	lockInRemaining int
	term            int
	interestRate    decimal.Decimal
}

func (*FixedDeposit) accountType() Type { return TypeFixedDeposit }

// NewSavingsAccount opens a savings account with a fixed overdraft limit
func NewSavingsAccount(profile customer.Profile, overdraftLimit decimal.Decimal) (*Account, error) {
	if overdraftLimit.IsNegative() {
		return nil, rejected("open savings account", overdraftLimit, ErrInvalidArgument)
	}
	acc := NewAccount(profile)
	acc.variant = &Savings{overdraftLimit: overdraftLimit}
	return acc, nil
}

// NewFixedDepositAccount opens a fixed deposit locked for lockIn months
func NewFixedDepositAccount(profile customer.Profile, lockIn int, interestRate decimal.Decimal) (*Account, error) {
	if lockIn < 0 {
		return nil, rejected("open fixed deposit", decimal.NewFromInt(int64(lockIn)), fmt.Errorf("%w: negative lock-in period", ErrInvalidArgument))
	}
	if interestRate.IsNegative() {
		return nil, rejected("open fixed deposit", interestRate, fmt.Errorf("%w: negative interest rate", ErrInvalidArgument))
	}
	if profile.OpeningBalance().IsNegative() {
		return nil, rejected("open fixed deposit", profile.OpeningBalance(), fmt.Errorf("%w: negative opening balance", ErrInvalidArgument))
	}
	acc := NewAccount(profile)
	acc.variant = &FixedDeposit{
		lockInRemaining: lockIn,
		term:            lockIn,
		interestRate:    interestRate,
	}
	return acc, nil
}

// UseOverdraft withdraws more than the available balance from a savings
// account. It is accepted only when balance < amount <= limit and the balance
// afterwards stays at or above -limit.
func (a *Account) UseOverdraft(amount decimal.Decimal) (ledger.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.variant.(*Savings)
	if !ok {
		return ledger.Record{}, rejected("overdraft", amount, ErrUnsupportedOperation)
	}
	if !amount.IsPositive() {
		return ledger.Record{}, rejected("overdraft", amount, ErrInvalidArgument)
	}
	if !amount.GreaterThan(a.balance) {
		return ledger.Record{}, rejected("overdraft", amount, ErrOverdraftNotNeeded)
	}
	if amount.GreaterThan(s.overdraftLimit) || a.balance.Sub(amount).LessThan(s.overdraftLimit.Neg()) {
		return ledger.Record{}, rejected("overdraft", amount, ErrOverdraftLimitExceeded)
	}
	return a.apply(ledger.KindOverdraft, amount, "overdraft of "+amount.String()), nil
}

// WithdrawBeforeMaturity withdraws from a fixed deposit. While lock-in months
// remain the withdrawal is refused whatever the amount.
func (a *Account) WithdrawBeforeMaturity(amount decimal.Decimal) (ledger.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fd, ok := a.variant.(*FixedDeposit)
	if !ok {
		return ledger.Record{}, rejected("fixed deposit withdrawal", amount, ErrUnsupportedOperation)
	}
	if fd.lockInRemaining > 0 {
		return ledger.Record{}, rejected("fixed deposit withdrawal", amount,
			fmt.Errorf("%w: due in %d months", ErrMaturityNotReached, fd.lockInRemaining))
	}
	return a.withdraw(amount)
}

// MaturityQuote computes balance * rate * term without touching the account
func (a *Account) MaturityQuote() (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fd, ok := a.variant.(*FixedDeposit)
	if !ok {
		return decimal.Zero, rejected("maturity quote", decimal.Zero, ErrUnsupportedOperation)
	}
	return a.maturityTotal(fd)
}

// MaturityPayout credits balance * rate * term as interest and returns the
// interest record. It uses the original term even once the lock-in has run down.
func (a *Account) MaturityPayout() (ledger.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fd, ok := a.variant.(*FixedDeposit)
	if !ok {
		return ledger.Record{}, rejected("maturity payout", decimal.Zero, ErrUnsupportedOperation)
	}
	total, err := a.maturityTotal(fd)
	if err != nil {
		return ledger.Record{}, err
	}
	if a.balance.Add(total).Abs().GreaterThan(maxMagnitude) {
		return ledger.Record{}, ComputationError{Op: "maturity payout", Cause: errors.New("resulting balance exceeds supported magnitude")}
	}
	description := fmt.Sprintf("maturity interest at %s over %d months", fd.interestRate.String(), fd.term)
	return a.apply(ledger.KindInterest, total, description), nil
}

// MaturityAmount pays out maturity interest and returns the amount credited
func (a *Account) MaturityAmount() (decimal.Decimal, error) {
	record, err := a.MaturityPayout()
	if err != nil {
		return decimal.Zero, err
	}
	return record.Amount, nil
}

func (a *Account) maturityTotal(fd *FixedDeposit) (decimal.Decimal, error) {
	total := a.balance.Mul(fd.interestRate).Mul(decimal.NewFromInt(int64(fd.term)))
	if total.Abs().GreaterThan(maxMagnitude) {
		return decimal.Zero, ComputationError{Op: "maturity amount", Cause: fmt.Errorf("result %s exceeds supported magnitude", total.String())}
	}
	return total, nil
}

// AdvanceMonths moves a fixed deposit's clock forward and returns the
// remaining lock-in, which never goes below zero
func (a *Account) AdvanceMonths(months int) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fd, ok := a.variant.(*FixedDeposit)
	if !ok {
		return 0, rejected("advance lock-in", decimal.NewFromInt(int64(months)), ErrUnsupportedOperation)
	}
	if months < 1 {
		return fd.lockInRemaining, rejected("advance lock-in", decimal.NewFromInt(int64(months)), ErrInvalidArgument)
	}
	fd.lockInRemaining -= months
	if fd.lockInRemaining < 0 {
		fd.lockInRemaining = 0
	}
	return fd.lockInRemaining, nil
}

// Matured reports whether a fixed deposit has no lock-in left. Other account
// types are never locked.
func (a *Account) Matured() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if fd, ok := a.variant.(*FixedDeposit); ok {
		return fd.lockInRemaining <= 0
	}
	return true
}
