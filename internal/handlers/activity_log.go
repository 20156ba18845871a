package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

type ActivityLogHandler struct {
	activityLogService *services.ActivityLogService
}

func NewActivityLogHandler(activityLogService *services.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{activityLogService: activityLogService}
}

// List returns filtered activity logs
// GET /api/admin/activity-logs
func (h *ActivityLogHandler) List(c *gin.Context) {
	var req services.ActivityLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.activityLogService.List(c.Request.Context(), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// GetModules returns the distinct modules seen in the log
// GET /api/admin/activity-logs/modules
func (h *ActivityLogHandler) GetModules(c *gin.Context) {
	modules, err := h.activityLogService.GetModules(c.Request.Context())
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, modules)
}
