package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

type deleteUploadRequest struct {
	URL string `json:"url" form:"url"`
}

// UploadAvatar stores a member avatar
// POST /api/admin/uploads/avatar
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	h.upload(c, h.uploadService.UploadAvatar)
}

// UploadProjectImage stores a project image
// POST /api/admin/uploads/project-image
func (h *UploadHandler) UploadProjectImage(c *gin.Context) {
	h.upload(c, h.uploadService.UploadProjectImage)
}

// DeleteAvatar removes an avatar by its public URL
// DELETE /api/admin/uploads/avatar
func (h *UploadHandler) DeleteAvatar(c *gin.Context) {
	h.remove(c, h.uploadService.DeleteAvatar)
}

// DeleteProjectImage removes a project image by its public URL
// DELETE /api/admin/uploads/project-image
func (h *UploadHandler) DeleteProjectImage(c *gin.Context) {
	h.remove(c, h.uploadService.DeleteProjectImage)
}

func (h *UploadHandler) upload(c *gin.Context, fn func(context.Context, *services.UploadFile) (string, error)) {
	var file *services.UploadFile
	if header, err := c.FormFile("file"); err == nil {
		f, err := header.Open()
		if err != nil {
			response.ServerError(c, err.Error())
			return
		}
		defer f.Close()
		file = &services.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        f,
		}
	}

	url, err := fn(c.Request.Context(), file)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"url": url})
}

func (h *UploadHandler) remove(c *gin.Context, fn func(context.Context, string) error) {
	var req deleteUploadRequest
	if err := c.ShouldBind(&req); err != nil || req.URL == "" {
		req.URL = c.Query("url")
	}

	if err := fn(c.Request.Context(), req.URL); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "File deleted successfully"})
}
