package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/account-ledger/internal/domain/account"
	"github.com/account-ledger/internal/domain/registry"
	"github.com/account-ledger/internal/domain/shared"
	"github.com/account-ledger/internal/service"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps banking service errors onto the response envelope.
// The error code is always the failure reason the operation processor also uses.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	reason := string(service.FailureReasonFor(err))

	var (
		validationErr  account.ValidationError
		computationErr account.ComputationError
	)
	switch {
	case errors.As(err, &validationErr):
		RespondUnprocessable(c, reason, err.Error())
	case errors.Is(err, registry.ErrAccountNotFound{}):
		RespondNotFound(c, reason, err.Error())
	case errors.Is(err, registry.ErrDuplicateAccount{}):
		RespondConflict(c, reason, err.Error())
	case errors.As(err, &computationErr):
		logger.Error("Computation failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, string(shared.FailureReasonComputationFailed), err.Error())
	default:
		logger.Error("Unexpected service error", "error", err)
		RespondInternalError(c)
	}
}
