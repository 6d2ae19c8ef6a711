package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/havenlabs/haven/backend/internal/apierror"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/service"
)

// InsightsHandler handles prediction, pattern, and streak reads.
type InsightsHandler struct {
	insightService service.InsightService
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(insightService service.InsightService) *InsightsHandler {
	return &InsightsHandler{insightService: insightService}
}

// GetPrediction handles GET /api/v1/insights/prediction
func (h *InsightsHandler) GetPrediction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pred, err := h.insightService.GetPrediction(c.Request.Context(), userID)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get prediction", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, pred)
}

// GetPatterns handles GET /api/v1/insights/patterns
func (h *InsightsHandler) GetPatterns(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	patterns, err := h.insightService.GetPatterns(c.Request.Context(), userID)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get patterns", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, patterns)
}

// GetStreaks handles GET /api/v1/insights/streaks
func (h *InsightsHandler) GetStreaks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	streaks, err := h.insightService.GetStreaks(c.Request.Context(), userID)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get streaks", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, streaks)
}
