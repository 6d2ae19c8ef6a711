package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/havenlabs/haven/backend/internal/apierror"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/internal/service"
)

// TriggerDateHandler handles trigger date HTTP requests.
type TriggerDateHandler struct {
	triggerDateService service.TriggerDateService
}

// NewTriggerDateHandler creates a new trigger date handler.
func NewTriggerDateHandler(triggerDateService service.TriggerDateService) *TriggerDateHandler {
	return &TriggerDateHandler{triggerDateService: triggerDateService}
}

// Create handles POST /api/v1/trigger-dates
func (h *TriggerDateHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateTriggerDateRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.triggerDateService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to create trigger date", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles GET /api/v1/trigger-dates
func (h *TriggerDateHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dates, err := h.triggerDateService.List(c.Request.Context(), userID)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to list trigger dates", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"trigger_dates": dates, "count": len(dates)})
}

// Delete handles DELETE /api/v1/trigger-dates/:id
func (h *TriggerDateHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.triggerDateService.Delete(c.Request.Context(), userID, id); err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Trigger date", id))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to delete trigger date", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.Status(http.StatusNoContent)
}

// Upcoming handles GET /api/v1/trigger-dates/upcoming
func (h *TriggerDateHandler) Upcoming(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	alerts, err := h.triggerDateService.Upcoming(c.Request.Context(), userID, time.Now())
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get upcoming trigger dates", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"upcoming": alerts, "count": len(alerts)})
}
