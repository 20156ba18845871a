package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

type StudentHandler struct {
	studentService *services.StudentService
}

func NewStudentHandler(studentService *services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// GET /api/admin/students
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, students)
}

// POST /api/admin/students
func (h *StudentHandler) Create(c *gin.Context) {
	var form services.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &form)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, student)
}

// PUT /api/admin/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, services.ErrStudentNotFound.Error())
	if !ok {
		return
	}

	var form services.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	form.ID = id

	student, err := h.studentService.Update(c.Request.Context(), &form)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, student)
}

// DELETE /api/admin/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, services.ErrStudentNotFound.Error())
	if !ok {
		return
	}
	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Student deleted successfully"})
}
