package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List returns all projects with their assigned member ids
// GET /api/admin/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, projects)
}

// GetByID returns a project by ID
// GET /api/admin/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, services.ErrProjectNotFound.Error())
	if !ok {
		return
	}
	project, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, project)
}

// Create creates a project and its member assignments
// POST /api/admin/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var form services.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), &form)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, project)
}

// Update updates a project and replaces its member assignments
// PUT /api/admin/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, services.ErrProjectNotFound.Error())
	if !ok {
		return
	}

	var form services.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	form.ID = id

	project, err := h.projectService.Update(c.Request.Context(), &form)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, project)
}

// Delete deletes a project
// DELETE /api/admin/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, services.ErrProjectNotFound.Error())
	if !ok {
		return
	}
	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Project deleted successfully"})
}
