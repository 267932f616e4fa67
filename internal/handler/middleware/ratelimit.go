package middleware

import (
	"strconv"

	"cylinder-sync/internal/domain/ratelimit"
	"cylinder-sync/internal/handler/httperr"
	"cylinder-sync/internal/usecase/governor"

	"github.com/gin-gonic/gin"
)

const HeaderRateLimitRemaining = "X-RateLimit-Remaining"

type RateLimitMiddleware struct {
	governor *governor.Governor
}

func NewRateLimitMiddleware(gov *governor.Governor) *RateLimitMiddleware {
	return &RateLimitMiddleware{governor: gov}
}

// Limit admits the request under class for operation, keyed by the
// authenticated user or, before authentication, the client IP.
func (m *RateLimitMiddleware) Limit(operation string, class ratelimit.Class) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			caller = userID.String()
		}

		d := m.governor.Check(caller, operation, class)
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))

		if !d.Allowed {
			httperr.AbortRateLimited(c, &governor.RateLimitExceededError{
				Caller:            caller,
				Operation:         operation,
				Class:             class,
				RetryAfterSeconds: d.RetryAfterSeconds,
			}, d.RetryAfterSeconds)
			return
		}

		c.Next()
	}
}
