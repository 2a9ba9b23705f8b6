package service

import (
	"context"
	"errors"

	"github.com/account-ledger/internal/domain/account"
	"github.com/account-ledger/internal/domain/registry"
	"github.com/account-ledger/internal/domain/shared"
)

// FailureReasonFor classifies err into the reason code reported to callers
func FailureReasonFor(err error) shared.FailureReason {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, registry.ErrAccountNotFound{}):
		return shared.FailureReasonAccountNotFound
	case errors.Is(err, registry.ErrDuplicateAccount{}):
		return shared.FailureReasonDuplicateAccount
	case errors.Is(err, shared.ErrInvalidOperationType):
		return shared.FailureReasonInvalidOperationType
	case errors.Is(err, account.ErrBelowMinimum):
		return shared.FailureReasonBelowMinimum
	case errors.Is(err, account.ErrInsufficientFunds):
		return shared.FailureReasonInsufficientFunds
	case errors.Is(err, account.ErrOverdraftLimitExceeded):
		return shared.FailureReasonOverdraftLimitExceeded
	case errors.Is(err, account.ErrOverdraftNotNeeded):
		return shared.FailureReasonOverdraftNotNeeded
	case errors.Is(err, account.ErrMaturityNotReached):
		return shared.FailureReasonMaturityNotReached
	case errors.Is(err, account.ErrUnsupportedOperation):
		return shared.FailureReasonUnsupportedOperation
	case errors.Is(err, account.ErrInvalidArgument), errors.Is(err, shared.ErrMissingAmount):
		return shared.FailureReasonInvalidArgument
	}

	var compErr account.ComputationError
	if errors.As(err, &compErr) {
		return shared.FailureReasonComputationFailed
	}
	return shared.FailureReasonUnknownError
}

// IsPermanent reports whether retrying the same request can never succeed.
// Rule rejections, unknown accounts and computation failures are permanent;
// cancellation is not.
func IsPermanent(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return FailureReasonFor(err) != shared.FailureReasonUnknownError
}

// invalid wraps a request-shape problem so it is reported like a rule rejection
func invalid(op string, reason error) error {
	return account.ValidationError{Op: op, Reason: reason}
}
