package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Response is the {code, message, data} envelope every endpoint returns.
// Code is 0 on success and the HTTP status otherwise.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AppError carries the status and message an admin sees for a failed call.
type AppError struct {
	HTTPStatus int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, msg string) *AppError {
	return &AppError{HTTPStatus: status, Message: msg}
}

func NewBadRequest(msg string) *AppError   { return NewAppError(http.StatusBadRequest, msg) }
func NewUnauthorized(msg string) *AppError { return NewAppError(http.StatusUnauthorized, msg) }
func NewForbidden(msg string) *AppError    { return NewAppError(http.StatusForbidden, msg) }
func NewNotFound(msg string) *AppError     { return NewAppError(http.StatusNotFound, msg) }

func NewServiceUnavailable(msg string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, msg)
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Message: "ok", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Message: "created", Data: data})
}

// Error writes err. An *AppError keeps its status, a missing gorm record is
// a 404 and anything else is a 500 carrying the error text.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		fail(c, appErr.HTTPStatus, appErr.Message)
	case errors.Is(err, gorm.ErrRecordNotFound):
		fail(c, http.StatusNotFound, "not found")
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Code: status, Message: msg})
}

func BadRequest(c *gin.Context, msg string)      { fail(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string)    { fail(c, http.StatusUnauthorized, msg) }
func Forbidden(c *gin.Context, msg string)       { fail(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)        { fail(c, http.StatusNotFound, msg) }
func TooManyRequests(c *gin.Context, msg string) { fail(c, http.StatusTooManyRequests, msg) }
func ServerError(c *gin.Context, msg string)     { fail(c, http.StatusInternalServerError, msg) }
