package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/account-ledger/internal/api_gateway/handler"
	"github.com/account-ledger/internal/api_gateway/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	maturityHandler *handler.MaturityHandler,
) {
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	v1 := r.Group("/api/v1")
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Open)
			accounts.GET("", accountHandler.List)
			accounts.GET("/:id", accountHandler.Get)
			accounts.DELETE("/:id", accountHandler.Remove)
			accounts.GET("/:id/transactions", transactionHandler.History)
			accounts.POST("/:id/transactions", transactionHandler.Apply)
		}

		v1.POST("/maturity/advance", maturityHandler.Advance)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
