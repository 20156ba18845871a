package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/models"
	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

// PublicHandler serves the marketing site data. Responses go through the
// public cache middleware.
type PublicHandler struct {
	publicService *services.PublicService
}

func NewPublicHandler(publicService *services.PublicService) *PublicHandler {
	return &PublicHandler{publicService: publicService}
}

// Landing returns the stats and team shown on the home page
// GET /api/landing
func (h *PublicHandler) Landing(c *gin.Context) {
	ctx := c.Request.Context()
	response.Success(c, gin.H{
		"stats": h.publicService.GetLandingStats(ctx),
		"team":  h.publicService.GetPublicTeam(ctx),
	})
}

// Team returns active members
// GET /api/team
func (h *PublicHandler) Team(c *gin.Context) {
	response.Success(c, h.publicService.GetPublicTeam(c.Request.Context()))
}

// Member returns a member profile with works and timeline
// GET /api/team/:id
func (h *PublicHandler) Member(c *gin.Context) {
	id := c.Param("id")
	if !models.IsValidID(id) {
		response.NotFound(c, "member not found")
		return
	}
	member := h.publicService.GetPublicMemberByID(c.Request.Context(), id)
	if member == nil {
		response.NotFound(c, "member not found")
		return
	}
	response.Success(c, member)
}

// Works returns completed client projects
// GET /api/works
func (h *PublicHandler) Works(c *gin.Context) {
	response.Success(c, h.publicService.GetPublicProjects(c.Request.Context()))
}

// Work returns a project with its active team
// GET /api/works/:id
func (h *PublicHandler) Work(c *gin.Context) {
	id := c.Param("id")
	if !models.IsValidID(id) {
		response.NotFound(c, "project not found")
		return
	}
	project := h.publicService.GetPublicProjectByID(c.Request.Context(), id)
	if project == nil {
		response.NotFound(c, "project not found")
		return
	}
	response.Success(c, project)
}
