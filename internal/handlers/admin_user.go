package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/middleware"
	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

type AdminUserHandler struct {
	adminUserService *services.AdminUserService
}

func NewAdminUserHandler(adminUserService *services.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{adminUserService: adminUserService}
}

// List returns the admin accounts
// GET /api/admin/admins
func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.adminUserService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, users)
}

// Invite sends an invitation, or creates the user directly with a
// temporary password when directAdd is set
// POST /api/admin/admins
func (h *AdminUserHandler) Invite(c *gin.Context) {
	var req services.InviteRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.adminUserService.Invite(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, result)
}

// Delete removes an admin account
// DELETE /api/admin/admins/:id
func (h *AdminUserHandler) Delete(c *gin.Context) {
	if err := h.adminUserService.Delete(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "User deleted successfully"})
}

type banRequest struct {
	Banned bool `json:"banned" form:"banned"`
}

// ToggleBan bans or unbans an admin account
// PUT /api/admin/admins/:id/ban
func (h *AdminUserHandler) ToggleBan(c *gin.Context) {
	var req banRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.adminUserService.ToggleBan(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), req.Banned); err != nil {
		writeError(c, err)
		return
	}

	msg := "User unbanned successfully"
	if req.Banned {
		msg = "User banned successfully"
	}
	response.Success(c, gin.H{"message": msg})
}
