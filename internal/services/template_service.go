package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tanksmart/internal/models"
)

// ErrTemplateNotFound is returned when no active template matches a key and
// channel. A missing template is a hard stop for that send only.
var ErrTemplateNotFound = errors.New("notification template not found")

// TemplateService manages admin-maintained notification templates.
type TemplateService struct {
	db *gorm.DB
}

// NewTemplateService constructs a TemplateService.
func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

// GetActive returns the active template for a key and channel.
func (s *TemplateService) GetActive(ctx context.Context, key, channel string) (*models.NotificationTemplate, error) {
	var template models.NotificationTemplate
	err := s.db.WithContext(ctx).
		First(&template, "template_key = ? AND channel = ? AND is_active = ?", key, channel, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// List returns all templates, optionally limited to one channel.
func (s *TemplateService) List(ctx context.Context, channel string) ([]models.NotificationTemplate, error) {
	query := s.db.WithContext(ctx).Order("channel, template_key")
	if channel != "" {
		query = query.Where("channel = ?", channel)
	}

	var templates []models.NotificationTemplate
	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Save creates or updates a template.
func (s *TemplateService) Save(ctx context.Context, template *models.NotificationTemplate) error {
	return s.db.WithContext(ctx).Save(template).Error
}

// Delete removes a template by id.
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.NotificationTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
