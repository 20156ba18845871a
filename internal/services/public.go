package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/mastrovia/devxtra-team/internal/models"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

// PublicService backs the public site. Its methods never fail: errors are
// logged and an empty result is returned.
type PublicService struct {
	db *gorm.DB
}

func NewPublicService(db *gorm.DB) *PublicService {
	return &PublicService{db: db}
}

// notSelf matches projects that may be shown publicly.
func notSelf(db *gorm.DB) *gorm.DB {
	return db.Where("(category IS NULL OR category <> ?)", models.CategorySelf)
}

func (s *PublicService) GetPublicProjects(ctx context.Context) []PublicProject {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Scopes(notSelf).
		Where("status = ?", models.ProjectCompleted).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		logger.Error().Err(err).Str("op", "GetPublicProjects").Msg("failed to load projects")
		return []PublicProject{}
	}

	out := make([]PublicProject, 0, len(projects))
	for i := range projects {
		out = append(out, toPublicProject(&projects[i]))
	}
	return out
}

func (s *PublicService) GetPublicTeam(ctx context.Context) []PublicMember {
	var members []models.TeamMember
	err := s.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Order("name ASC").
		Find(&members).Error
	if err != nil {
		logger.Error().Err(err).Str("op", "GetPublicTeam").Msg("failed to load team")
		return []PublicMember{}
	}

	out := make([]PublicMember, 0, len(members))
	for i := range members {
		out = append(out, toPublicMember(&members[i]))
	}
	return out
}

func (s *PublicService) GetLandingStats(ctx context.Context) LandingStats {
	var stats LandingStats
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.TeamMember{}).Where("status = ?", models.StatusActive).Count(&stats.Experts).Error; err != nil {
		logger.Error().Err(err).Str("op", "GetLandingStats").Msg("failed to count members")
		stats.Experts = 0
	}
	if err := db.Model(&models.Project{}).Where("status = ?", models.ProjectCompleted).Count(&stats.Shipped).Error; err != nil {
		logger.Error().Err(err).Str("op", "GetLandingStats").Msg("failed to count projects")
		stats.Shipped = 0
	}
	return stats
}

type timelineEvent struct {
	item TimelineItem
	at   time.Time
}

// GetPublicMemberByID returns the member with their public works and a
// timeline, or nil when not found.
func (s *PublicService) GetPublicMemberByID(ctx context.Context, id string) *PublicMember {
	db := s.db.WithContext(ctx)

	var member models.TeamMember
	if err := db.First(&member, "id = ?", id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error().Err(err).Str("op", "GetPublicMemberByID").Str("id", id).Msg("failed to load member")
		}
		return nil
	}

	var projects []models.Project
	err := db.Scopes(notSelf).
		Where("id IN (?)", db.Model(&models.ProjectMember{}).Select("project_id").Where("member_id = ?", id)).
		Where("status IN ?", []string{models.ProjectCompleted, models.ProjectInProgress}).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		logger.Error().Err(err).Str("op", "GetPublicMemberByID").Str("id", id).Msg("failed to load works")
		projects = nil
	}

	view := toPublicMember(&member)
	events := []timelineEvent{{
		item: TimelineItem{
			Year:        monthYear(member.JoinedAt()),
			Title:       "Joined Team",
			Description: "Started role as " + member.Role,
		},
		at: member.JoinedAt(),
	}}

	for i := range projects {
		p := &projects[i]
		view.Works = append(view.Works, toPublicProject(p))

		end := "PRESENT"
		if p.DueDate != nil {
			end = monthYear(*p.DueDate)
		}
		events = append(events, timelineEvent{
			item: TimelineItem{
				Year:        monthYear(p.StartedAt()) + " - " + end,
				Title:       p.Title,
				Description: "Worked on " + p.Title,
			},
			at: p.StartedAt(),
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})
	for _, e := range events {
		view.Timeline = append(view.Timeline, e.item)
	}
	return &view
}

// GetPublicProjectByID returns a non-self project with its active team, or
// nil when not found.
func (s *PublicService) GetPublicProjectByID(ctx context.Context, id string) *PublicProjectDetail {
	db := s.db.WithContext(ctx)

	var project models.Project
	if err := db.Scopes(notSelf).First(&project, "id = ?", id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error().Err(err).Str("op", "GetPublicProjectByID").Str("id", id).Msg("failed to load project")
		}
		return nil
	}

	var members []models.TeamMember
	err := db.Where("id IN (?)", db.Model(&models.ProjectMember{}).Select("member_id").Where("project_id = ?", id)).
		Where("status = ?", models.StatusActive).
		Order("name ASC").
		Find(&members).Error
	if err != nil {
		logger.Error().Err(err).Str("op", "GetPublicProjectByID").Str("id", id).Msg("failed to load team")
		members = nil
	}

	detail := &PublicProjectDetail{
		PublicProject: toPublicProject(&project),
		Team:          make([]PublicMember, 0, len(members)),
	}
	for i := range members {
		detail.Team = append(detail.Team, toPublicMember(&members[i]))
	}
	return detail
}
