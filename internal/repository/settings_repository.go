package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/parthselarka/focusmate/internal/model"
)

// SettingsRepository manages per-user Pomodoro timer settings.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) FindByUser(ctx context.Context, userID uint) (*model.TimerSettings, error) {
	var settings model.TimerSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert inserts the settings row or, when one already exists for the
// user, replaces both durations in place.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *model.TimerSettings) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"work_duration", "break_duration", "updated_at"}),
	}).Create(settings).Error
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
