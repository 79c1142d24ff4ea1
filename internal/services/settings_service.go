package services

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/tanksmart/internal/models"
	"github.com/example/tanksmart/internal/pricing"
)

// SettingsService reads and writes the flat key/value application settings.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the value for a key, with ok=false when it is not stored.
func (s *SettingsService) Get(ctx context.Context, key string) (string, bool, error) {
	var setting models.AppSetting
	err := s.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

// GetAll returns the stored values for the given keys; missing keys are
// simply absent from the map.
func (s *SettingsService) GetAll(ctx context.Context, keys ...string) (map[string]string, error) {
	var settings []models.AppSetting
	query := s.db.WithContext(ctx)
	if len(keys) > 0 {
		query = query.Where("key IN ?", keys)
	}
	if err := query.Find(&settings).Error; err != nil {
		return nil, err
	}

	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

// Set upserts a setting value.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	setting := models.AppSetting{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}

// MarketPrice returns the configured market base price per liter, falling
// back to the default when unset or unparseable.
func (s *SettingsService) MarketPrice(ctx context.Context) float64 {
	value, ok, err := s.Get(ctx, models.SettingMarketPrice)
	if err != nil || !ok {
		return pricing.DefaultMarketPrice
	}

	price, err := strconv.ParseFloat(value, 64)
	if err != nil || price <= 0 {
		return pricing.DefaultMarketPrice
	}
	return price
}

// AutoConfirmationEnabled reports whether new orders should receive the
// confirmation email automatically.
func (s *SettingsService) AutoConfirmationEnabled(ctx context.Context) bool {
	value, ok, err := s.Get(ctx, models.SettingAutoOrderConfirmation)
	return err == nil && ok && value == "true"
}
