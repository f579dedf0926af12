package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/modgate/internal/infrastructure/metrics"
	"github.com/orris-inc/modgate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/modgate/internal/shared/errors"
	"github.com/orris-inc/modgate/internal/shared/logger"
	"github.com/orris-inc/modgate/internal/shared/utils"
)

// RateLimiter applies the shared sliding-window limiter to routes that do not
// go through the moderation pipeline. Exempt paths are never counted.
type RateLimiter struct {
	limiter ratelimit.Limiter
	exempt  *ratelimit.ExemptPaths
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.Limiter, exempt *ratelimit.ExemptPaths, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		exempt:  exempt,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the limit per client identity.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.exempt.Match(c.Request.URL.Path) {
			c.Next()
			return
		}

		clientID := GetClientID(c)
		decision, err := rl.limiter.Admit(c.Request.Context(), clientID, time.Now())
		if err != nil {
			// The limiter is not on the critical path for these routes.
			rl.logger.Warnw("rate limiter failed, allowing request", "client_id", clientID, "error", err)
			c.Next()
			return
		}

		if decision.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		}

		if !decision.Allowed {
			metrics.AdmissionDecisions.WithLabelValues("denied").Inc()
			utils.ErrorResponseWithError(c, errors.NewRateLimitError(decision.RetryAfter))
			c.Abort()
			return
		}

		if decision.Degraded {
			metrics.AdmissionDecisions.WithLabelValues("degraded").Inc()
		} else {
			metrics.AdmissionDecisions.WithLabelValues("allowed").Inc()
		}
		c.Next()
	}
}
