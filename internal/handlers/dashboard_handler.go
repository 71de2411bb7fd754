package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// DashboardHandler handles dashboard requests
type DashboardHandler struct {
	dashboard   services.DashboardServicer
	userService services.UserServicer
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard services.DashboardServicer, userService services.UserServicer) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, userService: userService}
}

// DashboardRequest represents the dashboard query parameters.
type DashboardRequest struct {
	Range string `form:"range" binding:"omitempty,range_preset"`
	pagination.PageRequest
}

// GetDashboard composes the dashboard for the resolved range. Resolution
// order: explicit query parameter, then the user's default view, then the
// system default.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	preset := models.RangePreset(req.Range)
	if !preset.Valid() {
		preset = models.RangeDefault
		if user, err := h.userService.GetUserByID(userID); err == nil && user.DefaultView.Valid() {
			preset = user.DefaultView
		}
	}

	summary, err := h.dashboard.Summary(userID, preset, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
