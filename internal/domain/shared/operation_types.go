package shared

// OperationType names a balance-affecting operation a caller can request
type OperationType string

const (
	OperationTypeDeposit         OperationType = "DEPOSIT"
	OperationTypeWithdrawal      OperationType = "WITHDRAWAL"
	OperationTypeOverdraft       OperationType = "OVERDRAFT"
	OperationTypeFixedWithdrawal OperationType = "FIXED_WITHDRAWAL"
	OperationTypeMaturityPayout  OperationType = "MATURITY_PAYOUT"
)

// Valid reports whether t is a known operation type
func (t OperationType) Valid() bool {
	switch t {
	case OperationTypeDeposit, OperationTypeWithdrawal, OperationTypeOverdraft,
		OperationTypeFixedWithdrawal, OperationTypeMaturityPayout:
		return true
	}
	return false
}

// RequiresAmount reports whether the operation carries an amount
func (t OperationType) RequiresAmount() bool {
	return t != OperationTypeMaturityPayout
}

// FailureReason defines operation failure categories reported to callers
type FailureReason string

const (
	FailureReasonAccountNotFound        FailureReason = "ACCOUNT_NOT_FOUND"
	FailureReasonDuplicateAccount       FailureReason = "DUPLICATE_ACCOUNT"
	FailureReasonBelowMinimum           FailureReason = "BELOW_MINIMUM_AMOUNT"
	FailureReasonInsufficientFunds      FailureReason = "INSUFFICIENT_FUNDS"
	FailureReasonOverdraftLimitExceeded FailureReason = "OVERDRAFT_LIMIT_EXCEEDED"
	FailureReasonOverdraftNotNeeded     FailureReason = "OVERDRAFT_NOT_NEEDED"
	FailureReasonMaturityNotReached     FailureReason = "MATURITY_NOT_REACHED"
	FailureReasonUnsupportedOperation   FailureReason = "UNSUPPORTED_OPERATION"
	FailureReasonInvalidArgument        FailureReason = "INVALID_ARGUMENT"
	FailureReasonInvalidOperationType   FailureReason = "INVALID_OPERATION_TYPE"
	FailureReasonComputationFailed      FailureReason = "COMPUTATION_FAILED"
	FailureReasonUnknownError           FailureReason = "UNKNOWN_ERROR"
)
