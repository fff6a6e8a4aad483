package ratelimit

import (
	"math"
	"strconv"

	"gigrilla/internal/apierrors"
	"gigrilla/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Middleware limits requests per authenticated user. It must run after the JWT
// middleware; requests without a User-ID pass through. Redis failures fail open.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userIDStr, exists := c.Get("User-ID")
		if !exists {
			c.Next()
			return
		}
		raw, _ := userIDStr.(string)
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.Next()
			return
		}

		ctx = observability.WithFields(ctx,
			observability.Field{Key: "user_id", Value: userID.String()},
			observability.Field{Key: "rate_limit", Value: s.limit},
		)

		result, err := s.CheckRateLimit(ctx, userID)
		if err != nil {
			s.logger.WarnWithError(ctx, "rate limit check failed, allowing request", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.ResetIn.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			s.metrics.IncRateLimited()
			s.logger.Warn(ctx, "rate limit exceeded")
			apierrors.RespondWithError(c, apierrors.TooManyRequests("Too many fan updates. Please wait before sending another."))
			return
		}

		c.Next()
	}
}
