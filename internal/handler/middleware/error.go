package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"cylinder-sync/internal/handler/httperr"
	"cylinder-sync/internal/usecase/governor"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				// Public: Meta ⇒ Return as is
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}

			// Private rate limit errors still carry a retry hint
			if limited, ok := governor.AsRateLimited(err.Err); ok {
				c.Header(httperr.HeaderRetryAfter, strconv.Itoa(limited.RetryAfterSeconds))
				c.JSON(http.StatusTooManyRequests, httperr.NewResponse(http.StatusTooManyRequests,
					"Too many requests. Please try again later.",
					gin.H{"retry_after": limited.RetryAfterSeconds}))
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c))

				c.JSON(http.StatusInternalServerError,
					httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil))
				c.Abort()
			}
		}()
		c.Next()
	}
}
