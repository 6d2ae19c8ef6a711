package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/havenlabs/haven/backend/internal/apierror"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/service"
)

// SummaryHandler handles weekly summary HTTP requests.
type SummaryHandler struct {
	summaryService service.SummaryService
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(summaryService service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// ListSummaries handles GET /api/v1/summaries
func (h *SummaryHandler) ListSummaries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", "0"))
	summaries, err := h.summaryService.ListSummaries(c.Request.Context(), userID, weeks)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to list summaries", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"summaries": summaries, "count": len(summaries)})
}
