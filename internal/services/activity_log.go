package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/mastrovia/devxtra-team/internal/models"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

// ActivityEntry is one admin action to record.
type ActivityEntry struct {
	Level      string
	Module     string
	Action     string
	Message    string
	ActorID    string
	ActorEmail string
	IP         string
	UserAgent  string
	Extra      interface{}
}

type ActivityLogService struct {
	db   *gorm.DB
	cron *cron.Cron
}

func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	return &ActivityLogService{db: db}
}

// Record stores an entry. Failures are logged, never returned.
func (s *ActivityLogService) Record(ctx context.Context, e ActivityEntry) {
	var extra string
	if e.Extra != nil {
		if b, err := json.Marshal(e.Extra); err == nil {
			extra = string(b)
		}
	}
	level := e.Level
	if level == "" {
		level = "info"
	}

	entry := &models.ActivityLog{
		Level:      level,
		Module:     e.Module,
		Action:     e.Action,
		Message:    e.Message,
		ActorID:    e.ActorID,
		ActorEmail: e.ActorEmail,
		IP:         e.IP,
		UserAgent:  e.UserAgent,
		Extra:      extra,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.Error().Err(err).Str("module", e.Module).Str("action", e.Action).Msg("failed to write activity log")
	}
}

type ActivityLogListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Level     string `form:"level"`
	Module    string `form:"module"`
	Action    string `form:"action"`
	ActorID   string `form:"actor_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
}

type ActivityLogListResponse struct {
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Items    []models.ActivityLog `json:"items"`
}

func (s *ActivityLogService) List(ctx context.Context, req *ActivityLogListRequest) (*ActivityLogListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.WithContext(ctx).Model(&models.ActivityLog{})

	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.Action != "" {
		query = query.Where("action LIKE ?", "%"+req.Action+"%")
	}
	if req.ActorID != "" {
		query = query.Where("actor_id = ?", req.ActorID)
	}
	if req.StartDate != "" {
		if t, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if req.EndDate != "" {
		if t, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}
	if req.Search != "" {
		query = query.Where("message LIKE ?", "%"+req.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var logs []models.ActivityLog
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}

	return &ActivityLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    logs,
	}, nil
}

func (s *ActivityLogService) GetModules(ctx context.Context) ([]string, error) {
	modules := []string{}
	if err := s.db.WithContext(ctx).Model(&models.ActivityLog{}).Distinct("module").Order("module").Pluck("module", &modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// CleanupOldLogs deletes logs older than retentionDays and returns the
// number of deleted rows.
func (s *ActivityLogService) CleanupOldLogs(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// StartCleanupScheduler runs the retention cleanup on the cron spec.
func (s *ActivityLogService) StartCleanupScheduler(spec string, retentionDays int) error {
	if retentionDays <= 0 {
		logger.Infof("[ActivityLog] Log cleanup disabled (retention_days <= 0)")
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(spec, func() {
		deleted, err := s.CleanupOldLogs(context.Background(), retentionDays)
		if err != nil {
			logger.Errorf("[ActivityLog] Failed to cleanup old logs: %v", err)
			return
		}
		if deleted > 0 {
			logger.Infof("[ActivityLog] Cleaned up %d logs older than %d days", deleted, retentionDays)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Infof("[ActivityLog] Cleanup scheduled (%s, keep %d days)", spec, retentionDays)
	return nil
}

func (s *ActivityLogService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
