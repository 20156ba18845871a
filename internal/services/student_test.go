package services

import (
	"errors"
	"testing"

	"github.com/mastrovia/devxtra-team/internal/models"
)

func TestStudentService_CRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStudentService(db, NewRevalidator(NewMemoryCache()))

	s, err := svc.Create(bg, &StudentForm{Name: "Ravi", Email: "ravi@devxtra.dev", EnrollmentNo: "DX-7"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if s.Role != models.RoleStudent {
		t.Errorf("role = %q, expected Student", s.Role)
	}
	if s.Avatar == nil || *s.Avatar != DefaultAvatar("Ravi") {
		t.Errorf("avatar = %v, expected generated avatar", s.Avatar)
	}

	updated, err := svc.Update(bg, &StudentForm{ID: s.ID, Name: "Ravi K", Email: "ravi@devxtra.dev", Role: models.RoleTeamLead, Status: models.StatusAlumni})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Name != "Ravi K" || updated.Role != models.RoleTeamLead || updated.Status != models.StatusAlumni {
		t.Errorf("update not applied: %+v", updated)
	}

	list, _ := svc.List(bg)
	if len(list) != 1 {
		t.Fatalf("expected 1 student, got %d", len(list))
	}

	if err := svc.Delete(bg, s.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := svc.Delete(bg, s.ID); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStudentService_RejectsMemberOnlyRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStudentService(db, nil)

	_, err := svc.Create(bg, &StudentForm{Name: "x", Email: "x@y.z", Role: models.RoleDesigner})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestStudentService_UpdateMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStudentService(db, nil)

	_, err := svc.Update(bg, &StudentForm{ID: models.NewID(), Name: "x", Email: "x@y.z"})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}
