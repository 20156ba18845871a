package services

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mastrovia/devxtra-team/internal/models"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type ProjectsByStatus struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	OnHold     int64 `json:"onHold"`
}

type RecentProject struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberProjectCount struct {
	Name         string `json:"name"`
	ProjectCount int64  `json:"projectCount"`
}

type DashboardStats struct {
	TotalTeamMembers        int64                `json:"totalTeamMembers"`
	ActiveMembers           int64                `json:"activeMembers"`
	TotalProjects           int64                `json:"totalProjects"`
	ProjectsByStatus        ProjectsByStatus     `json:"projectsByStatus"`
	RecentProjects          []RecentProject      `json:"recentProjects"`
	TeamMembersWithProjects []MemberProjectCount `json:"teamMembersWithProjects"`
	ActiveMemberRate        float64              `json:"activeMemberRate"`
	CompletionRate          float64              `json:"completionRate"`
}

// GetStats gathers the admin overview. Each query runs concurrently and a
// failing query degrades to zero or empty instead of failing the page.
func (s *DashboardService) GetStats(ctx context.Context) *DashboardStats {
	stats := &DashboardStats{
		RecentProjects:          []RecentProject{},
		TeamMembersWithProjects: []MemberProjectCount{},
	}
	db := s.db.WithContext(ctx)

	var g errgroup.Group

	g.Go(func() error {
		stats.TotalTeamMembers = s.count(db.Model(&models.TeamMember{}), "total members")
		return nil
	})
	g.Go(func() error {
		stats.ActiveMembers = s.count(db.Model(&models.TeamMember{}).Where("status = ?", models.StatusActive), "active members")
		return nil
	})
	g.Go(func() error {
		stats.TotalProjects = s.count(db.Model(&models.Project{}), "total projects")
		return nil
	})
	g.Go(func() error {
		stats.ProjectsByStatus = s.projectsByStatus(db)
		return nil
	})
	g.Go(func() error {
		var recent []RecentProject
		err := db.Model(&models.Project{}).
			Select("id", "title", "status", "created_at").
			Order("created_at DESC").
			Limit(5).
			Scan(&recent).Error
		if err != nil {
			logger.Error().Err(err).Str("op", "dashboard").Msg("failed to load recent projects")
			return nil
		}
		if recent != nil {
			stats.RecentProjects = recent
		}
		return nil
	})
	g.Go(func() error {
		stats.TeamMembersWithProjects = s.memberProjectCounts(db)
		return nil
	})
	_ = g.Wait()

	stats.ActiveMemberRate = percentage(stats.ActiveMembers, stats.TotalTeamMembers)
	stats.CompletionRate = percentage(stats.ProjectsByStatus.Completed, stats.TotalProjects)
	return stats
}

func (s *DashboardService) count(q *gorm.DB, what string) int64 {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		logger.Error().Err(err).Str("op", "dashboard").Msgf("failed to count %s", what)
		return 0
	}
	return n
}

func (s *DashboardService) projectsByStatus(db *gorm.DB) ProjectsByStatus {
	var rows []struct {
		Status string
		Count  int64
	}
	var out ProjectsByStatus
	err := db.Model(&models.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		logger.Error().Err(err).Str("op", "dashboard").Msg("failed to group projects by status")
		return out
	}
	for _, r := range rows {
		switch r.Status {
		case models.ProjectPending:
			out.Pending = r.Count
		case models.ProjectInProgress:
			out.InProgress = r.Count
		case models.ProjectCompleted:
			out.Completed = r.Count
		case models.ProjectOnHold:
			out.OnHold = r.Count
		}
	}
	return out
}

// memberProjectCounts returns five members with their assignment counts,
// using a single grouped query for the counts.
func (s *DashboardService) memberProjectCounts(db *gorm.DB) []MemberProjectCount {
	out := []MemberProjectCount{}

	var members []models.TeamMember
	if err := db.Select("id", "name").Order("created_at ASC").Limit(5).Find(&members).Error; err != nil {
		logger.Error().Err(err).Str("op", "dashboard").Msg("failed to load members")
		return out
	}
	if len(members) == 0 {
		return out
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	var rows []struct {
		MemberID string
		Count    int64
	}
	err := db.Model(&models.ProjectMember{}).
		Select("member_id, COUNT(*) AS count").
		Where("member_id IN ?", ids).
		Group("member_id").
		Scan(&rows).Error
	if err != nil {
		logger.Error().Err(err).Str("op", "dashboard").Msg("failed to count member projects")
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.MemberID] = r.Count
	}

	for _, m := range members {
		out = append(out, MemberProjectCount{Name: m.Name, ProjectCount: counts[m.ID]})
	}
	return out
}

// percentage returns part/total as a percentage rounded to one decimal.
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
