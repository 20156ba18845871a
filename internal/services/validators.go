package services

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mastrovia/devxtra-team/internal/models"
)

// RegisterValidators adds the enum validators used by the admin forms to
// gin's binding engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	rules := map[string][]string{
		"member_role":      models.MemberRoles,
		"student_role":     models.StudentRoles,
		"member_status":    models.MemberStatuses,
		"project_status":   models.ProjectStatuses,
		"project_category": models.ProjectCategories,
	}
	for tag, values := range rules {
		values := values
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return models.Contains(values, fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}
