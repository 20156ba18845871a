package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// List returns all team members
// GET /api/admin/team
func (h *TeamHandler) List(c *gin.Context) {
	members, err := h.teamService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, members)
}

// GetByID returns a team member
// GET /api/admin/team/:id
func (h *TeamHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, services.ErrMemberNotFound.Error())
	if !ok {
		return
	}
	member, err := h.teamService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, member)
}

// Create adds a team member from the admin form
// POST /api/admin/team
func (h *TeamHandler) Create(c *gin.Context) {
	var form services.TeamMemberForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.teamService.Create(c.Request.Context(), &form)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, member)
}

// Update edits a team member
// PUT /api/admin/team/:id
func (h *TeamHandler) Update(c *gin.Context) {
	id, ok := pathID(c, services.ErrMemberNotFound.Error())
	if !ok {
		return
	}

	var form services.TeamMemberForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	form.ID = id

	member, err := h.teamService.Update(c.Request.Context(), &form)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, member)
}

// Delete removes a team member and their project assignments
// DELETE /api/admin/team/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, services.ErrMemberNotFound.Error())
	if !ok {
		return
	}
	if err := h.teamService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Team member deleted successfully"})
}
