package handler

import (
	"time"

	"github.com/account-ledger/internal/domain/account"
	"github.com/account-ledger/internal/domain/ledger"
	"github.com/account-ledger/internal/service"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest opens an account. Variant fields are optional and fall
// back to the configured defaults.
type OpenAccountRequest struct {
	FullName       string          `json:"full_name" binding:"required"`
	CustomerID     int64           `json:"customer_id" binding:"required,gt=0"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	AccountType    string          `json:"account_type" binding:"omitempty,oneof=STANDARD SAVINGS FIXED_DEPOSIT"`

	OverdraftLimit *decimal.Decimal `json:"overdraft_limit,omitempty"`
	LockInMonths   *int             `json:"lock_in_months,omitempty"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
}

func (r OpenAccountRequest) toService() service.OpenAccountRequest {
	return service.OpenAccountRequest{
		FullName:       r.FullName,
		CustomerID:     r.CustomerID,
		BaseSalary:     r.BaseSalary,
		OpeningBalance: r.OpeningBalance,
		Type:           account.Type(r.AccountType),
		OverdraftLimit: r.OverdraftLimit,
		LockInMonths:   r.LockInMonths,
		InterestRate:   r.InterestRate,
	}
}

// AccountResponse is the summary of an account
type AccountResponse struct {
	CustomerID       int64           `json:"customer_id"`
	Name             string          `json:"name"`
	AccountType      string          `json:"account_type"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transaction_count"`
	CreatedAt        string          `json:"created_at"`

	OverdraftLimit  *decimal.Decimal `json:"overdraft_limit,omitempty"`
	LockInRemaining *int             `json:"lock_in_remaining,omitempty"`
	TermMonths      *int             `json:"term_months,omitempty"`
	InterestRate    *decimal.Decimal `json:"interest_rate,omitempty"`
}

// ApplyOperationRequest runs one operation against the account in the path
type ApplyOperationRequest struct {
	Type   string           `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL OVERDRAFT FIXED_WITHDRAWAL MATURITY_PAYOUT"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// RecordResponse is one ledger record
type RecordResponse struct {
	ID           string          `json:"id"`
	Sequence     int64           `json:"sequence"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description"`
	Timestamp    string          `json:"timestamp"`
}

// OperationResponse is the account state after an applied operation
type OperationResponse struct {
	Account AccountResponse `json:"account"`
	Record  RecordResponse  `json:"record"`
}

// AdvanceMaturityRequest moves the fixed deposit clock forward
type AdvanceMaturityRequest struct {
	Months int `json:"months" binding:"required,min=1"`
}

// MaturityResponse reports what one advance did
type MaturityResponse struct {
	Months   int     `json:"months"`
	Advanced int     `json:"advanced"`
	Matured  []int64 `json:"matured"`
}

// PaginationParams represents pagination parameters for the history endpoint
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=50" binding:"min=1,max=500"`
}

func mapSummaryToResponse(s account.Summary) AccountResponse {
	return AccountResponse{
		CustomerID:       s.CustomerID,
		Name:             s.Name,
		AccountType:      string(s.Type),
		OpeningBalance:   s.OpeningBalance,
		Balance:          s.Balance,
		TransactionCount: s.TransactionCount,
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
		OverdraftLimit:   s.OverdraftLimit,
		LockInRemaining:  s.LockInRemaining,
		TermMonths:       s.Term,
		InterestRate:     s.InterestRate,
	}
}

func mapRecordToResponse(r ledger.Record) RecordResponse {
	return RecordResponse{
		ID:           r.ID.String(),
		Sequence:     r.Sequence,
		Kind:         string(r.Kind),
		Amount:       r.Amount,
		BalanceAfter: r.BalanceAfter,
		Description:  r.Description,
		Timestamp:    r.Timestamp.Format(time.RFC3339Nano),
	}
}
