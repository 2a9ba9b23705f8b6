package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/account-ledger/internal/api_gateway/middleware"
	"github.com/account-ledger/internal/domain/shared"
	"github.com/account-ledger/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler applies operations and serves account history
type TransactionHandler struct {
	bankingService service.BankingService
	logger         *slog.Logger
}

func NewTransactionHandler(logger *slog.Logger, bankingService service.BankingService) *TransactionHandler {
	return &TransactionHandler{
		bankingService: bankingService,
		logger:         logger,
	}
}

// Apply runs one operation synchronously and returns the new record
func (h *TransactionHandler) Apply(c *gin.Context) {
	customerID, ok := customerIDParam(c, h.logger)
	if !ok {
		return
	}

	var req ApplyOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.bankingService.ApplyOperation(c.Request.Context(), &shared.OperationRequest{
		OperationID:   uuid.New(),
		CustomerID:    customerID,
		Type:          shared.OperationType(req.Type),
		Amount:        req.Amount,
		CorrelationID: middleware.GetCorrelationID(c),
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	RespondCreated(c, OperationResponse{
		Account: mapSummaryToResponse(result.Summary),
		Record:  mapRecordToResponse(result.Record),
	})
}

// History returns the account's records oldest first, one page at a time
func (h *TransactionHandler) History(c *gin.Context) {
	customerID, ok := customerIDParam(c, h.logger)
	if !ok {
		return
	}

	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	records, err := h.bankingService.GetHistory(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	start, end := pageBounds(params.Page, params.PerPage, len(records))
	page := make([]RecordResponse, 0, end-start)
	for _, r := range records[start:end] {
		page = append(page, mapRecordToResponse(r))
	}
	RespondWithPaginatedData(c, http.StatusOK, page, params.Page, params.PerPage, len(records))
}

// pageBounds returns the slice bounds of a 1-based page. Pages past the end
// are empty; the page index is checked before multiplying so it cannot overflow.
func pageBounds(page, perPage, total int) (start, end int) {
	pages := (total + perPage - 1) / perPage
	if page-1 >= pages {
		return total, total
	}
	start = (page - 1) * perPage
	return start, min(start+perPage, total)
}
