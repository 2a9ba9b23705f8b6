package handler

import (
	"log/slog"
	"strconv"

	"github.com/account-ledger/internal/service"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles HTTP requests for account lifecycle and queries
type AccountHandler struct {
	bankingService service.BankingService
	logger         *slog.Logger
}

func NewAccountHandler(logger *slog.Logger, bankingService service.BankingService) *AccountHandler {
	return &AccountHandler{
		bankingService: bankingService,
		logger:         logger,
	}
}

// Open registers a new account for the customer in the body
func (h *AccountHandler) Open(c *gin.Context) {
	var req OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	summary, err := h.bankingService.OpenAccount(c.Request.Context(), req.toService())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	RespondCreated(c, mapSummaryToResponse(summary))
}

// List returns every registered account in opening order
func (h *AccountHandler) List(c *gin.Context) {
	summaries := h.bankingService.ListAccounts(c.Request.Context())
	response := make([]AccountResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, mapSummaryToResponse(s))
	}
	RespondOK(c, response)
}

// Get returns the summary of one account
func (h *AccountHandler) Get(c *gin.Context) {
	customerID, ok := customerIDParam(c, h.logger)
	if !ok {
		return
	}

	summary, err := h.bankingService.GetAccount(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	RespondOK(c, mapSummaryToResponse(summary))
}

// Remove unregisters the account and returns its final state
func (h *AccountHandler) Remove(c *gin.Context) {
	customerID, ok := customerIDParam(c, h.logger)
	if !ok {
		return
	}

	summary, err := h.bankingService.RemoveAccount(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	RespondOK(c, mapSummaryToResponse(summary))
}

// customerIDParam parses :id and answers 400 itself when it is not a positive integer
func customerIDParam(c *gin.Context, logger *slog.Logger) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("Invalid customer ID", "id", raw)
		RespondBadRequest(c, "Invalid customer ID")
		return 0, false
	}
	return id, true
}
