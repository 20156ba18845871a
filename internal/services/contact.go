package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/mastrovia/devxtra-team/internal/models"
)

type ContactRequest struct {
	Name    string `json:"name" form:"name" binding:"required,max=200"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Message string `json:"message" form:"message" binding:"required,max=5000"`
}

type ContactListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=new read"`
}

type ContactListResponse struct {
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
	Items    []models.ContactMessage `json:"items"`
}

// ContactNotifier delivers the notification for a stored message.
type ContactNotifier interface {
	SendContactNotification(msg *models.ContactMessage) error
}

type ContactService struct {
	db       *gorm.DB
	queue    TaskQueue
	notifier ContactNotifier
}

func NewContactService(db *gorm.DB, queue TaskQueue, notifier ContactNotifier) *ContactService {
	return &ContactService{db: db, queue: queue, notifier: notifier}
}

// Submit stores an inquiry and schedules the team notification.
func (s *ContactService) Submit(ctx context.Context, req *ContactRequest, ip string) (*models.ContactMessage, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		return nil, invalidf("Name, email and message are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalidf("Invalid email address")
	}

	msg := models.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
		Status:  models.ContactStatusNew,
		IP:      ip,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}

	enqueue(s.queue, TaskTypeContactNotify, ContactNotifyTask{MessageID: msg.ID})
	return &msg, nil
}

func (s *ContactService) List(ctx context.Context, req *ContactListRequest) (*ContactListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.WithContext(ctx).Model(&models.ContactMessage{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.ContactMessage
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &ContactListResponse{Total: total, Page: req.Page, PageSize: req.PageSize, Items: items}, nil
}

func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("status", models.ContactStatusRead)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.ContactMessage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// HandleNotifyTask is the contact:notify task handler.
func (s *ContactService) HandleNotifyTask(ctx context.Context, payload []byte) error {
	var task ContactNotifyTask
	if err := json.Unmarshal(payload, &task); err != nil {
		return err
	}

	var msg models.ContactMessage
	if err := s.db.WithContext(ctx).First(&msg, "id = ?", task.MessageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if s.notifier == nil {
		return nil
	}
	return s.notifier.SendContactNotification(&msg)
}
