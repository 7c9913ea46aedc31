package handler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank-transaction-engine/internal/domain/account"
	"github.com/corebank-transaction-engine/internal/ledger"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	ledger *ledger.Ledger
	logger *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, ldg *ledger.Ledger) *AccountHandler {
	return &AccountHandler{
		ledger: ldg,
		logger: logger,
	}
}

// Create opens a new account, enforcing the type's minimum initial deposit
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	initialDeposit, err := decimal.NewFromString(req.InitialDeposit)
	if err != nil {
		RespondBadRequest(c, "Initial deposit must be numeric")
		return
	}

	acc, err := h.ledger.Create(account.Type(req.Type), initialDeposit, account.Contact{
		Name:  req.HolderName,
		Email: req.HolderEmail,
		Phone: req.HolderPhone,
	})
	if err != nil {
		var belowMinimum account.ErrBelowMinimumDeposit
		if errors.As(err, &belowMinimum) {
			RespondBadRequest(c, belowMinimum.Error())
			return
		}
		h.logger.Error("failed to create account", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// GetByID retrieves an account by its ID, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	acc, err := h.ledger.Get(id)
	if err != nil {
		var notFound ledger.ErrAccountNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("failed to get account", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// ChangeState applies a lifecycle action (SUSPEND, FREEZE, ACTIVATE,
// UNFREEZE, CLOSE) to an account.
func (h *AccountHandler) ChangeState(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	var req ChangeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	action := account.Action(strings.ToUpper(req.Action))
	acc, err := h.ledger.ChangeState(id, action)
	if err != nil {
		var notFound ledger.ErrAccountNotFound
		var unrecognized account.ErrUnrecognizedAction
		var invalid account.ErrInvalidTransition
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Account not found")
		case errors.As(err, &unrecognized):
			RespondBadRequest(c, unrecognized.Error())
		case errors.As(err, &invalid):
			RespondConflict(c, "INVALID_TRANSITION", invalid.Error())
		default:
			h.logger.Error("failed to change account state", "id", idParam, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}
