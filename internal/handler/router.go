package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cylinder-sync/internal/domain/ratelimit"
	"cylinder-sync/internal/handler/api"
	"cylinder-sync/internal/handler/middleware"
	"cylinder-sync/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

const (
	OperationReconcile   = "http.sync.reconcile"
	OperationLimitStatus = "http.sync.limits"
)

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, syncHandler *api.SyncHandler, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, syncHandler, authMiddleware, rateLimit)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, syncHandler *api.SyncHandler, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		sync := apiGroup.Group("/sync")
		sync.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sync, []route{
				{
					Method:  http.MethodPost,
					Path:    "/reconcile",
					Handler: syncHandler.Reconcile,
					Mw:      []gin.HandlerFunc{rateLimit.Limit(OperationReconcile, ratelimit.ClassWrite)},
				},
				{
					Method:  http.MethodGet,
					Path:    "/limits",
					Handler: syncHandler.ListPolicies,
					Mw:      []gin.HandlerFunc{rateLimit.Limit(OperationLimitStatus, ratelimit.ClassRead)},
				},
				{
					Method:  http.MethodGet,
					Path:    "/limits/:operation",
					Handler: syncHandler.GetLimitStatus,
					Mw:      []gin.HandlerFunc{rateLimit.Limit(OperationLimitStatus, ratelimit.ClassRead)},
				},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
