package routes

import (
	"github.com/gin-gonic/gin"

	"lumen/internal/interfaces/http/handlers"
	"lumen/internal/interfaces/http/middleware"
)

// BillingRouteConfig holds dependencies for billing routes.
type BillingRouteConfig struct {
	BillingHandler *handlers.BillingHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      *middleware.RateLimitMiddleware
}

// SetupBillingRoutes configures the billing endpoints.
func SetupBillingRoutes(api *gin.RouterGroup, cfg *BillingRouteConfig) {
	billing := api.Group("/billing")
	billing.Use(cfg.AuthMiddleware.RequireAuth())
	{
		billing.POST("/checkout", cfg.RateLimit.Limit(), cfg.BillingHandler.CreateCheckout)
		billing.GET("/verify", cfg.BillingHandler.VerifyPayment)
		billing.GET("/subscription", cfg.BillingHandler.GetSubscription)
		billing.GET("/transactions", cfg.BillingHandler.ListTransactions)
	}
}
