package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/havenlabs/haven/backend/internal/apierror"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/internal/service"
)

// PlanHandler handles daily plan HTTP requests.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// GetToday handles GET /api/v1/plans/today
func (h *PlanHandler) GetToday(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetToday(c.Request.Context(), userID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Plan", "today"))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to get today's plan", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, plan)
}

// CompleteAction handles POST /api/v1/plans/:id/actions/:actionID/complete
func (h *PlanHandler) CompleteAction(c *gin.Context) {
	h.mutateAction(c, h.planService.CompleteAction)
}

// SkipAction handles POST /api/v1/plans/:id/actions/:actionID/skip
func (h *PlanHandler) SkipAction(c *gin.Context) {
	h.mutateAction(c, h.planService.SkipAction)
}

// SwapAction handles POST /api/v1/plans/:id/actions/:actionID/swap
func (h *PlanHandler) SwapAction(c *gin.Context) {
	h.mutateAction(c, h.planService.SwapAction)
}

func (h *PlanHandler) mutateAction(c *gin.Context, op func(ctx context.Context, userID, planID, actionID string) (*models.DailyPlan, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	planID := c.Param("id")
	actionID := c.Param("actionID")
	plan, err := op(c.Request.Context(), userID, planID, actionID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Plan action", actionID))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to update plan action", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, plan)
}
