package handler

import (
	"time"

	"github.com/corebank-transaction-engine/internal/domain/account"
	"github.com/corebank-transaction-engine/internal/domain/transaction"
)

// CreateAccountRequest represents a request to open a new account. The
// initial deposit is a decimal string to avoid float rounding on the wire.
type CreateAccountRequest struct {
	Type           string `json:"type" binding:"required,oneof=CHECKING SAVINGS BUSINESS"`
	InitialDeposit string `json:"initial_deposit" binding:"required"`
	HolderName     string `json:"holder_name" binding:"required"`
	HolderEmail    string `json:"holder_email" binding:"omitempty,email"`
	HolderPhone    string `json:"holder_phone"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	HolderName     string `json:"holder_name"`
	HolderEmail    string `json:"holder_email,omitempty"`
	HolderPhone    string `json:"holder_phone,omitempty"`
	Balance        string `json:"balance"`
	OverdraftLimit string `json:"overdraft_limit"`
	InterestRate   string `json:"interest_rate"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// ChangeStateRequest represents a lifecycle action request
type ChangeStateRequest struct {
	Action string `json:"action" binding:"required"`
}

// CreateTransactionRequest represents a request to process a transaction
type CreateTransactionRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=DEPOSIT WITHDRAW TRANSFER"`
	Source      string `json:"source" binding:"omitempty,uuid"`
	Destination string `json:"destination" binding:"omitempty,uuid"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	Amount          string `json:"amount"`
	Fee             string `json:"fee"`
	Source          string `json:"source,omitempty"`
	Destination     string `json:"destination,omitempty"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:             acc.ID.String(),
		Type:           string(acc.Type),
		HolderName:     acc.Holder.Name,
		HolderEmail:    acc.Holder.Email,
		HolderPhone:    acc.Holder.Phone,
		Balance:        acc.Balance.StringFixed(2),
		OverdraftLimit: acc.OverdraftLimit.StringFixed(2),
		InterestRate:   acc.InterestRate.String(),
		Status:         string(acc.Status),
		CreatedAt:      acc.CreatedAt.Format(time.RFC3339),
	}
}

func mapTransactionToResponse(tx *transaction.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:              tx.ID.String(),
		Kind:            string(tx.Kind),
		Amount:          tx.Amount.StringFixed(2),
		Fee:             tx.Fee.StringFixed(2),
		Currency:        tx.Currency,
		Status:          string(tx.Status),
		RejectionReason: tx.RejectionReason,
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.Source != nil {
		resp.Source = tx.Source.String()
	}
	if tx.Destination != nil {
		resp.Destination = tx.Destination.String()
	}
	return resp
}
