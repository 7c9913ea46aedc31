package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank-transaction-engine/internal/domain/transaction"
	"github.com/corebank-transaction-engine/internal/engine"
)

// TransactionHandler handles HTTP requests for transaction operations
type TransactionHandler struct {
	processor *engine.Processor
	logger    *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, processor *engine.Processor) *TransactionHandler {
	return &TransactionHandler{
		processor: processor,
		logger:    logger,
	}
}

// Create processes a transaction synchronously and returns the terminal
// record, Completed or Rejected.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		RespondBadRequest(c, "Amount must be numeric")
		return
	}

	procReq := engine.Request{
		Kind:     transaction.Kind(req.Kind),
		Amount:   amount,
		Currency: req.Currency,
	}
	if req.Source != "" {
		id, parseErr := uuid.Parse(req.Source)
		if parseErr != nil {
			RespondBadRequest(c, "Invalid source account ID")
			return
		}
		procReq.Source = &id
	}
	if req.Destination != "" {
		id, parseErr := uuid.Parse(req.Destination)
		if parseErr != nil {
			RespondBadRequest(c, "Invalid destination account ID")
			return
		}
		procReq.Destination = &id
	}

	tx, err := h.processor.Process(procReq)
	if err != nil {
		if errors.Is(err, engine.ErrMissingAccountRef) || errors.Is(err, transaction.ErrUnknownKind) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("failed to process transaction", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}

// GetByID retrieves a processed transaction by its ID
func (h *TransactionHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.processor.Transaction(id)
	if err != nil {
		var notFound engine.ErrTransactionNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Transaction not found")
			return
		}
		h.logger.Error("failed to get transaction", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}
