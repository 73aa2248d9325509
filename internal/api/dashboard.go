package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrilens/backend/internal/service"
)

// DashboardHandler handles dashboard-related requests
type DashboardHandler struct {
	dashboard service.IDashboardService
	now       func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard service.IDashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, now: time.Now}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)
}

// GetDashboard returns the day's targets, intake and progress.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	day, ok := queryDay(c, h.now)
	if !ok {
		return
	}

	dash, err := h.dashboard.Dashboard(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
