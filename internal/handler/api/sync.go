package api

import (
	"log/slog"
	"net/http"
	"strings"

	"cylinder-sync/internal/domain/ratelimit"
	"cylinder-sync/internal/domain/reconcile"
	reqdto "cylinder-sync/internal/handler/dto/request"
	resdto "cylinder-sync/internal/handler/dto/response"
	"cylinder-sync/internal/handler/httperr"
	"cylinder-sync/internal/handler/middleware"
	"cylinder-sync/internal/pkg/config"
	"cylinder-sync/internal/pkg/errs"
	"cylinder-sync/internal/usecase/commands"
	"cylinder-sync/internal/usecase/governor"
	"cylinder-sync/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	cmds            commands.ReconcileCommands
	limits          queries.LimitQueries
	defaultStrategy reconcile.Strategy
}

func NewSyncHandler(cmds commands.ReconcileCommands, limits queries.LimitQueries, cfg config.Config) *SyncHandler {
	strategy, err := reconcile.ParseStrategy(cfg.Sync.DefaultStrategy)
	if err != nil {
		slog.Warn("Unknown default sync strategy, using server_wins", "strategy", cfg.Sync.DefaultStrategy)
		strategy = reconcile.StrategyServerWins
	}
	return &SyncHandler{cmds: cmds, limits: limits, defaultStrategy: strategy}
}

// @Summary Reconcile a batch
// @Description Detect and resolve conflicts between locally cached entities and the server copy, then write the winners
// @Tags sync
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReconcileRequest true "Reconcile request"
// @Success 200 {object} resdto.ReconcileResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 429 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/sync/reconcile [post]
func (h *SyncHandler) Reconcile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("user id missing from context"), "Unauthorized", nil)
		return
	}
	orgID, ok := middleware.GetOrganizationID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("organization id missing from context"), "Unauthorized", nil)
		return
	}

	var req reqdto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	batch, err := req.ToBatch(userID.String(), orgID.String(), h.defaultStrategy)
	if err != nil {
		if errs.Is(err, errs.ErrUnknownKind) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown entity kind", gin.H{"kind": req.Kind})
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid entity payload", nil)
		return
	}

	result, err := h.cmds.ReconcileBatch(c.Request.Context(), batch)
	if err != nil {
		if limited, ok := governor.AsRateLimited(err); ok {
			httperr.AbortRateLimited(c, err, limited.RetryAfterSeconds)
			return
		}
		switch {
		case errs.Is(err, errs.ErrUnknownKind):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown entity kind", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Reconcile failed", nil)
		}
		return
	}

	resp, err := resdto.FromBatchResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get limit status
// @Description Report the caller's remaining budget for an operation without consuming it
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Param operation path string true "Operation name"
// @Param class query string false "Rate limit class" default(default)
// @Success 200 {object} queries.LimitStatusView
// @Failure 401 {object} map[string]string
// @Router /api/sync/limits/{operation} [get]
func (h *SyncHandler) GetLimitStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("user id missing from context"), "Unauthorized", nil)
		return
	}

	operation := strings.TrimSpace(c.Param("operation"))
	if operation == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("empty operation"), "Operation is required", nil)
		return
	}
	class := ratelimit.Class(c.DefaultQuery("class", string(ratelimit.ClassDefault)))

	c.JSON(http.StatusOK, h.limits.GetLimitStatus(userID.String(), operation, class))
}

// @Summary List rate limit policies
// @Description List the effective policy per class
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.PolicyView
// @Router /api/sync/limits [get]
func (h *SyncHandler) ListPolicies(c *gin.Context) {
	c.JSON(http.StatusOK, h.limits.ListPolicies())
}
