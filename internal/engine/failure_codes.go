package engine

import (
	"errors"

	"github.com/corebank-transaction-engine/internal/domain/account"
	"github.com/corebank-transaction-engine/internal/ledger"
	"github.com/corebank-transaction-engine/internal/validation"
)

// Failure codes label rejected transactions in metrics and API responses
const (
	CodeInvalidAmount         = "INVALID_AMOUNT"
	CodeAccountNotFound       = "ACCOUNT_NOT_FOUND"
	CodeAccountStateViolation = "ACCOUNT_STATE_VIOLATION"
	CodeInsufficientFunds     = "INSUFFICIENT_FUNDS"
	CodeDailyLimitExceeded    = "DAILY_LIMIT_EXCEEDED"
	CodeFraudSuspected        = "FRAUD_SUSPECTED"
	CodeVerificationRequired  = "VERIFICATION_REQUIRED"
	CodeBelowMinimumDeposit   = "BELOW_MINIMUM_DEPOSIT"
	CodeUnknown               = "UNKNOWN"
)

// FailureCode classifies a rejection cause into a stable code
func FailureCode(err error) string {
	var notFound ledger.ErrAccountNotFound
	var belowMinimum account.ErrBelowMinimumDeposit

	switch {
	case errors.Is(err, validation.ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.As(err, &notFound):
		return CodeAccountNotFound
	case errors.Is(err, validation.ErrAccountStateViolation):
		return CodeAccountStateViolation
	case errors.Is(err, validation.ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, validation.ErrDailyLimitExceeded):
		return CodeDailyLimitExceeded
	case errors.Is(err, validation.ErrFraudSuspected):
		return CodeFraudSuspected
	case errors.As(err, &belowMinimum):
		return CodeBelowMinimumDeposit
	case errors.Is(err, ErrVerificationRequired):
		return CodeVerificationRequired
	default:
		return CodeUnknown
	}
}
