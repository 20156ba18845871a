package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mastrovia/devxtra-team/internal/models"
)

// ProjectForm is the admin create/edit form. Tags, images and memberIds
// are comma separated.
type ProjectForm struct {
	ID          string `json:"id" form:"id"`
	Title       string `json:"title" form:"title" binding:"required"`
	Description string `json:"description" form:"description"`
	Status      string `json:"status" form:"status" binding:"omitempty,project_status"`
	Category    string `json:"category" form:"category" binding:"omitempty,project_category"`
	StartDate   string `json:"startDate" form:"startDate"`
	DueDate     string `json:"dueDate" form:"dueDate"`
	Link        string `json:"link" form:"link"`
	Metrics     string `json:"metrics" form:"metrics"`
	Tags        string `json:"tags" form:"tags"`
	Images      string `json:"images" form:"images"`
	MemberIDs   string `json:"memberIds" form:"memberIds"`
}

func (f *ProjectForm) normalize() error {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return invalidf("Title is required")
	}
	if f.Status == "" {
		f.Status = models.ProjectPending
	}
	if f.Category == "" {
		f.Category = models.CategoryFreelance
	}
	if !models.Contains(models.ProjectStatuses, f.Status) {
		return invalidf("Invalid status: %s", f.Status)
	}
	if !models.Contains(models.ProjectCategories, f.Category) {
		return invalidf("Invalid category: %s", f.Category)
	}
	return nil
}

func (f *ProjectForm) memberIDs() ([]string, error) {
	ids := dedupe(splitList(f.MemberIDs))
	for _, id := range ids {
		if !models.IsValidID(id) {
			return nil, invalidf("Invalid member id: %s", id)
		}
	}
	return ids, nil
}

// ProjectWithMembers is a project plus the ids of its assigned members.
type ProjectWithMembers struct {
	models.Project
	AssignedMemberIDs []string `json:"assigned_member_ids"`
}

type ProjectService struct {
	db                 *gorm.DB
	queue              TaskQueue
	revalidator        *Revalidator
	projectImageBucket string
}

func NewProjectService(db *gorm.DB, queue TaskQueue, revalidator *Revalidator, projectImageBucket string) *ProjectService {
	return &ProjectService{db: db, queue: queue, revalidator: revalidator, projectImageBucket: projectImageBucket}
}

func (s *ProjectService) revalidate(ctx context.Context) {
	s.revalidator.RevalidatePath(ctx, "/admin/projects", "/works", "/", "/team")
}

// List returns projects newest first with their assigned member ids.
func (s *ProjectService) List(ctx context.Context) ([]ProjectWithMembers, error) {
	db := s.db.WithContext(ctx)

	var projects []models.Project
	if err := db.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	var links []models.ProjectMember
	if err := db.Select("project_id", "member_id").Order("created_at ASC").Find(&links).Error; err != nil {
		return nil, err
	}
	byProject := make(map[string][]string)
	for _, l := range links {
		byProject[l.ProjectID] = append(byProject[l.ProjectID], l.MemberID)
	}

	out := make([]ProjectWithMembers, 0, len(projects))
	for _, p := range projects {
		ids := byProject[p.ID]
		if ids == nil {
			ids = []string{}
		}
		out = append(out, ProjectWithMembers{Project: p, AssignedMemberIDs: ids})
	}
	return out, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*ProjectWithMembers, error) {
	db := s.db.WithContext(ctx)

	var project models.Project
	if err := db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	ids := []string{}
	if err := db.Model(&models.ProjectMember{}).Where("project_id = ?", id).Order("created_at ASC").Pluck("member_id", &ids).Error; err != nil {
		return nil, err
	}
	return &ProjectWithMembers{Project: project, AssignedMemberIDs: ids}, nil
}

func (s *ProjectService) Create(ctx context.Context, form *ProjectForm) (*ProjectWithMembers, error) {
	if err := form.normalize(); err != nil {
		return nil, err
	}
	memberIDs, err := form.memberIDs()
	if err != nil {
		return nil, err
	}
	start, err := parseDate(form.StartDate)
	if err != nil {
		return nil, invalidf("Invalid start date")
	}
	if start == nil {
		now := time.Now()
		start = &now
	}
	due, err := parseDate(form.DueDate)
	if err != nil {
		return nil, invalidf("Invalid due date")
	}

	category := form.Category
	project := models.Project{
		Title:       form.Title,
		Description: nullable(form.Description),
		Status:      form.Status,
		StartDate:   start,
		DueDate:     due,
		Tags:        splitList(form.Tags),
		Link:        nullable(form.Link),
		Images:      splitList(form.Images),
		Metrics:     nullable(form.Metrics),
		Category:    &category,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		return insertMembers(tx, project.ID, memberIDs)
	})
	if err != nil {
		return nil, err
	}

	s.revalidate(ctx)
	return &ProjectWithMembers{Project: project, AssignedMemberIDs: memberIDs}, nil
}

// Update edits the project and replaces its member assignments in one
// transaction.
func (s *ProjectService) Update(ctx context.Context, form *ProjectForm) (*ProjectWithMembers, error) {
	if err := form.normalize(); err != nil {
		return nil, err
	}
	memberIDs, err := form.memberIDs()
	if err != nil {
		return nil, err
	}
	due, err := parseDate(form.DueDate)
	if err != nil {
		return nil, invalidf("Invalid due date")
	}

	updates := map[string]interface{}{
		"title":       form.Title,
		"description": nullable(form.Description),
		"status":      form.Status,
		"category":    form.Category,
		"due_date":    due,
		"tags":        models.StringList(splitList(form.Tags)),
		"link":        nullable(form.Link),
		"images":      models.StringList(splitList(form.Images)),
		"metrics":     nullable(form.Metrics),
	}
	if form.StartDate != "" {
		start, err := parseDate(form.StartDate)
		if err != nil {
			return nil, invalidf("Invalid start date")
		}
		updates["start_date"] = start
	}

	var old models.Project
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&old, "id = ?", form.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		if err := tx.Model(&models.Project{}).Where("id = ?", form.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", form.ID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return insertMembers(tx, form.ID, memberIDs)
	})
	if err != nil {
		return nil, err
	}

	s.cleanupImages(removedValues(old.Images, splitList(form.Images)))
	s.revalidate(ctx)
	return s.Get(ctx, form.ID)
}

// Delete removes the project and its assignments.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	var project models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	s.cleanupImages(project.Images)
	s.revalidate(ctx)
	return nil
}

func (s *ProjectService) cleanupImages(urls []string) {
	var owned []string
	for _, u := range urls {
		if IsStorageURL(u, s.projectImageBucket) {
			owned = append(owned, u)
		}
	}
	if len(owned) > 0 {
		enqueue(s.queue, TaskTypeStorageCleanup, StorageCleanupTask{Bucket: s.projectImageBucket, URLs: owned})
	}
}

func insertMembers(tx *gorm.DB, projectID string, memberIDs []string) error {
	if len(memberIDs) == 0 {
		return nil
	}
	rows := make([]models.ProjectMember, 0, len(memberIDs))
	for _, id := range memberIDs {
		rows = append(rows, models.ProjectMember{ProjectID: projectID, MemberID: id})
	}
	return tx.Create(&rows).Error
}

// removedValues returns the entries of before missing from after.
func removedValues(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, v := range after {
		keep[v] = struct{}{}
	}
	var out []string
	for _, v := range before {
		if _, ok := keep[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
