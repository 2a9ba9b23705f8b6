package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// panicEnvelope mirrors the error shape of handler.Response, which this
// package cannot import
type panicEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// Recovery answers a panicking request with a 500 error envelope. gin does the
// recovering (and drops broken pipe panics); the nil writer silences gin's own
// log so the panic is only reported once, through slog.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		correlationID := GetCorrelationID(c)

		attrs := []any{
			"error", fmt.Sprint(recovered),
			"stack", string(debug.Stack()),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"correlation_id", correlationID,
		}
		if id := c.Param("id"); id != "" {
			attrs = append(attrs, "customer_id", id)
		}
		logger.Error("Panic recovered", attrs...)

		var body panicEnvelope
		body.Error.Code = "INTERNAL_SERVER_ERROR"
		body.Error.Message = "An internal server error occurred"
		body.CorrelationID = correlationID
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
