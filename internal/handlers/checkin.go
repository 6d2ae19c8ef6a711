package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/havenlabs/haven/backend/internal/apierror"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/internal/service"
)

// CheckInHandler handles check-in HTTP requests.
type CheckInHandler struct {
	checkInService service.CheckInService
}

// NewCheckInHandler creates a new check-in handler.
func NewCheckInHandler(checkInService service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

// CreateCheckIn handles POST /api/v1/check-ins
func (h *CheckInHandler) CreateCheckIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateCheckInRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.checkInService.CreateCheckIn(c.Request.Context(), userID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		switch {
		case errors.Is(err, service.ErrCheckInExists):
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, "A check-in already exists for this date"))
		case errors.Is(err, service.ErrFutureDate):
			apierror.WriteProblem(c, apierror.NewFutureDateError(requestID, "date"))
		default:
			logger.Ctx(c.Request.Context()).Error("failed to create check-in", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetCheckIns handles GET /api/v1/check-ins
func (h *CheckInHandler) GetCheckIns(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	checkins, err := h.checkInService.GetCheckIns(c.Request.Context(), userID, days)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get check-ins", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"check_ins": checkins, "count": len(checkins)})
}

// GetCheckIn handles GET /api/v1/check-ins/:date
func (h *CheckInHandler) GetCheckIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date := c.Param("date")
	checkin, err := h.checkInService.GetCheckIn(c.Request.Context(), userID, date)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Check-in", date))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to get check-in", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, checkin)
}

// AcknowledgeCrisis handles POST /api/v1/check-ins/:date/crisis-ack
func (h *CheckInHandler) AcknowledgeCrisis(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date := c.Param("date")
	checkin, err := h.checkInService.AcknowledgeCrisis(c.Request.Context(), userID, date)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Check-in", date))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to acknowledge crisis", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, checkin)
}
