package services

import (
	"errors"
	"fmt"
)

var (
	ErrMemberNotFound      = errors.New("team member not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrServiceRoleRequired = errors.New("service role key is not configured")
	ErrSelfAction          = errors.New("you cannot perform this action on your own account")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAuthUnavailable     = errors.New("authentication is not configured")
	ErrStorageUnavailable  = errors.New("storage is not configured")
)

// ValidationError carries a message meant to be shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
