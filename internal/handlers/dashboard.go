package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns dashboard statistics
// GET /api/admin/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	response.Success(c, h.dashboardService.GetStats(c.Request.Context()))
}
