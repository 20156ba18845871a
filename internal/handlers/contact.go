package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit stores an inquiry from the contact page
// POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req services.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if _, err := h.contactService.Submit(c.Request.Context(), &req, c.ClientIP()); err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Thanks! We will get back to you soon."})
}

// List returns contact messages
// GET /api/admin/contact-messages
func (h *ContactHandler) List(c *gin.Context) {
	var req services.ContactListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.contactService.List(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, resp)
}

// MarkRead marks a message as read
// PUT /api/admin/contact-messages/:id/read
func (h *ContactHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, services.ErrMessageNotFound.Error())
	if !ok {
		return
	}
	if err := h.contactService.MarkRead(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Message marked as read"})
}

// Delete removes a message
// DELETE /api/admin/contact-messages/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, services.ErrMessageNotFound.Error())
	if !ok {
		return
	}
	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Message deleted successfully"})
}
