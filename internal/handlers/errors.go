package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/models"
	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

// writeError maps service errors to API responses. Messages are meant to
// be shown to the admin as is.
func writeError(c *gin.Context, err error) {
	if appErr := toAppError(err); appErr != nil {
		response.Error(c, appErr)
		return
	}
	response.Error(c, err)
}

// toAppError returns nil for errors without a dedicated status.
func toAppError(err error) *response.AppError {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return response.NewBadRequest(ve.Message)
	case errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrMessageNotFound):
		return response.NewNotFound(err.Error())
	case errors.Is(err, services.ErrServiceRoleRequired),
		errors.Is(err, services.ErrAuthUnavailable),
		errors.Is(err, services.ErrStorageUnavailable):
		return response.NewServiceUnavailable(err.Error())
	case errors.Is(err, services.ErrSelfAction):
		return response.NewForbidden(err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return response.NewUnauthorized(err.Error())
	}
	return nil
}

// pathID returns the :id param, answering 404 when it is not a UUID.
func pathID(c *gin.Context, notFound string) (string, bool) {
	id := c.Param("id")
	if !models.IsValidID(id) {
		response.NotFound(c, notFound)
		return "", false
	}
	return id, true
}
