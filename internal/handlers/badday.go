package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/havenlabs/haven/backend/internal/apierror"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/service"
)

// BadDayHandler handles bad-day-mode HTTP requests.
type BadDayHandler struct {
	badDayService service.BadDayService
}

// NewBadDayHandler creates a new bad-day handler.
func NewBadDayHandler(badDayService service.BadDayService) *BadDayHandler {
	return &BadDayHandler{badDayService: badDayService}
}

// Get handles GET /api/v1/bad-day-mode
func (h *BadDayHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.badDayService.Get(c.Request.Context(), userID)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get bad-day state", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, state)
}

// RecordSOS handles POST /api/v1/bad-day-mode/sos
func (h *BadDayHandler) RecordSOS(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.badDayService.RecordSOS(c.Request.Context(), userID)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to record sos access", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, state)
}

// Deactivate handles POST /api/v1/bad-day-mode/deactivate
func (h *BadDayHandler) Deactivate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.badDayService.Deactivate(c.Request.Context(), userID)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to deactivate bad-day mode", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, state)
}
