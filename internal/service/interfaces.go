package service

import (
	"context"

	"github.com/account-ledger/internal/domain/account"
	"github.com/account-ledger/internal/domain/ledger"
	"github.com/account-ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BankingService is the entry point shared by the HTTP gateway and the
// operation processor
type BankingService interface {
	// OpenAccount builds and registers an account.
	// Returns registry.ErrDuplicateAccount when the customer already has one.
	OpenAccount(ctx context.Context, req OpenAccountRequest) (account.Summary, error)

	// GetAccount returns registry.ErrAccountNotFound for unknown customers
	GetAccount(ctx context.Context, customerID int64) (account.Summary, error)

	// ListAccounts returns the registered accounts in the order they were opened
	ListAccounts(ctx context.Context) []account.Summary

	// RemoveAccount unregisters the account and returns its final summary
	RemoveAccount(ctx context.Context, customerID int64) (account.Summary, error)

	// GetHistory returns the account's records; an empty slice is a valid answer
	GetHistory(ctx context.Context, customerID int64) ([]ledger.Record, error)

	// ApplyOperation runs one balance-affecting operation and publishes the
	// resulting ledger event
	ApplyOperation(ctx context.Context, req *shared.OperationRequest) (*OperationResult, error)

	// AdvanceMaturity counts every fixed deposit's lock-in down by months
	AdvanceMaturity(ctx context.Context, months int) (*MaturityReport, error)
}

// OpenAccountRequest carries the profile and the variant parameters. Nil
// variant fields fall back to the configured defaults; they are ignored for
// account types that do not use them.
type OpenAccountRequest struct {
	FullName       string
	CustomerID     int64
	BaseSalary     decimal.Decimal
	OpeningBalance decimal.Decimal
	Type           account.Type

	OverdraftLimit *decimal.Decimal
	LockInMonths   *int
	InterestRate   *decimal.Decimal
}

// OperationResult is the account state right after an applied operation
type OperationResult struct {
	Summary account.Summary
	Record  ledger.Record
}

// MaturityReport summarises one AdvanceMaturity call
type MaturityReport struct {
	Months   int
	Advanced int
	Matured  []int64 // customers whose lock-in reached zero during this call
}
