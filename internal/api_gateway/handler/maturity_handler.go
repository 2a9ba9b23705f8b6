package handler

import (
	"log/slog"

	"github.com/account-ledger/internal/service"
	"github.com/gin-gonic/gin"
)

// MaturityHandler exposes the fixed deposit clock to operators
type MaturityHandler struct {
	bankingService service.BankingService
	logger         *slog.Logger
}

func NewMaturityHandler(logger *slog.Logger, bankingService service.BankingService) *MaturityHandler {
	return &MaturityHandler{
		bankingService: bankingService,
		logger:         logger,
	}
}

// Advance counts every fixed deposit's lock-in down by the requested months
func (h *MaturityHandler) Advance(c *gin.Context) {
	var req AdvanceMaturityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.bankingService.AdvanceMaturity(c.Request.Context(), req.Months)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	RespondOK(c, MaturityResponse{
		Months:   report.Months,
		Advanced: report.Advanced,
		Matured:  report.Matured,
	})
}
