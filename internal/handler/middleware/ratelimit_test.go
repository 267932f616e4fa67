//go:build unit

package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"testing"
	"time"

	"cylinder-sync/internal/domain/ratelimit"
	"cylinder-sync/internal/handler/middleware"
	"cylinder-sync/internal/pkg/clock"
	"cylinder-sync/internal/usecase/governor"
	"cylinder-sync/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(t *testing.T, userID *uuid.UUID) (*gin.Engine, *clock.MockClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := clock.NewMockClock(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	gov := governor.New(ratelimit.DefaultTable(), clk, slog.New(slog.NewTextHandler(io.Discard, nil)), governor.Settings{})
	rl := middleware.NewRateLimitMiddleware(gov)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	if userID != nil {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", *userID)
			c.Next()
		})
	}
	router.POST("/login", rl.Limit("http.auth.login", ratelimit.ClassLogin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, clk
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("counts down then answers 429 with Retry-After", func(t *testing.T) {
		router, _ := newLimitedRouter(t, nil)

		for want := 4; want >= 0; want-- {
			rec := httptest.PerformRequest(t, router, http.MethodPost, "/login", nil, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, strconv.Itoa(want), rec.Header().Get(middleware.HeaderRateLimitRemaining))
		}

		rec := httptest.PerformRequest(t, router, http.MethodPost, "/login", nil, "")
		httptest.AssertRateLimited(t, rec, "60")
		httptest.AssertErrorResponse(t, rec, http.StatusTooManyRequests, "Too many requests")
		assert.Equal(t, "0", rec.Header().Get(middleware.HeaderRateLimitRemaining))
	})

	t.Run("window reopens after it elapses", func(t *testing.T) {
		router, clk := newLimitedRouter(t, nil)

		for range 5 {
			httptest.PerformRequest(t, router, http.MethodPost, "/login", nil, "")
		}
		clk.Add(45 * time.Second)
		httptest.AssertRateLimited(t, httptest.PerformRequest(t, router, http.MethodPost, "/login", nil, ""), "15")

		clk.Add(15 * time.Second)
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/login", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "4", rec.Header().Get(middleware.HeaderRateLimitRemaining))
	})

	t.Run("authenticated callers are keyed by user", func(t *testing.T) {
		first := uuid.New()
		router, _ := newLimitedRouter(t, &first)
		for range 5 {
			httptest.PerformRequest(t, router, http.MethodPost, "/login", nil, "")
		}
		httptest.AssertRateLimited(t, httptest.PerformRequest(t, router, http.MethodPost, "/login", nil, ""), "60")

		first = uuid.New()
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/login", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
