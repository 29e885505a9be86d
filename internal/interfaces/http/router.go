package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lumen/internal/application/billing/gateway"
	"lumen/internal/application/billing/usecases"
	domainsub "lumen/internal/domain/subscription"
	"lumen/internal/infrastructure/adapters"
	"lumen/internal/infrastructure/auth"
	"lumen/internal/infrastructure/cache"
	"lumen/internal/infrastructure/config"
	"lumen/internal/infrastructure/ratelimit"
	"lumen/internal/infrastructure/repository"
	"lumen/internal/interfaces/http/handlers"
	"lumen/internal/interfaces/http/middleware"
	"lumen/internal/interfaces/http/routes"
	"lumen/internal/shared/db"
	"lumen/internal/shared/logger"
)

// Router wires repositories, use cases and handlers into a gin engine.
type Router struct {
	engine         *gin.Engine
	billingHandler *handlers.BillingHandler
	planHandler    *handlers.PlanHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimit      *middleware.RateLimitMiddleware
}

// NewRouter builds the full dependency graph. redisClient may be nil when
// Redis is disabled; caching and rate limiting degrade gracefully.
func NewRouter(database *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	transactionRepo := repository.NewPaymentTransactionRepository(database)
	subscriptionRepo := repository.NewSubscriptionRepository(database)

	var planRepo domainsub.PlanRepository = repository.NewPlanRepository(database)
	if redisClient != nil {
		planRepo = cache.NewCachedPlanRepository(planRepo, redisClient, log)
	}

	userProvider := adapters.NewGormUserProvider(database)
	txManager := db.NewTransactionManager(database)

	mayarClient, err := gateway.NewMayarClient(gateway.Config{
		APIBase: cfg.Gateway.APIBase,
		APIKey:  cfg.Gateway.APIKey,
		Timeout: time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment gateway client: %w", err)
	}

	createCheckoutUC := usecases.NewCreateCheckoutUseCase(
		transactionRepo, planRepo, userProvider, mayarClient, cfg.Server.SiteURL, log)
	verifyPaymentUC := usecases.NewVerifyPaymentUseCase(
		transactionRepo, subscriptionRepo, planRepo, mayarClient, txManager, log)
	getSubscriptionUC := usecases.NewGetSubscriptionUseCase(subscriptionRepo, planRepo, log)
	listPlansUC := usecases.NewListPlansUseCase(planRepo, log)
	listTransactionsUC := usecases.NewListTransactionsUseCase(transactionRepo, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	var limiter ratelimit.RateLimiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisRateLimiter(redisClient)
	}

	return &Router{
		engine:         gin.New(),
		billingHandler: handlers.NewBillingHandler(createCheckoutUC, verifyPaymentUC, getSubscriptionUC, listTransactionsUC, log),
		planHandler:    handlers.NewPlanHandler(listPlansUC, log),
		authMiddleware: middleware.NewAuthMiddleware(jwtService, log),
		rateLimit: middleware.NewRateLimitMiddleware(limiter, ratelimit.Config{
			RequestsPerMinute: 10,
			RequestsPerHour:   60,
		}, log),
	}, nil
}

// SetupRoutes registers all endpoints.
func (r *Router) SetupRoutes() {
	r.engine.Use(gin.Recovery())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	routes.SetupBillingRoutes(api, &routes.BillingRouteConfig{
		BillingHandler: r.billingHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimit:      r.rateLimit,
	})

	routes.SetupPlanRoutes(api, &routes.PlanRouteConfig{
		PlanHandler: r.planHandler,
	})
}

// GetEngine returns the underlying gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
