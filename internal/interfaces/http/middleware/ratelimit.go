package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumen/internal/infrastructure/ratelimit"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

// RateLimitMiddleware throttles checkout creation per user. A nil limiter
// disables throttling (Redis not configured).
type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
	cfg     ratelimit.Config
	logger  logger.Interface
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter, cfg ratelimit.Config, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		cfg:     cfg,
		logger:  logger,
	}
}

func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}

		userID, ok := GetUserID(c)
		if !ok {
			c.Next()
			return
		}

		allowed, err := m.limiter.Allow(c.Request.Context(), fmt.Sprintf("checkout:%d", userID), m.cfg)
		if err != nil {
			// A broken limiter must not take the billing API down.
			m.logger.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many checkout attempts, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
