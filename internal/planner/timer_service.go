package planner

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/parthselarka/focusmate/internal/model"
	"github.com/parthselarka/focusmate/internal/repository"
)

// TimerService manages per-user Pomodoro durations.
type TimerService struct {
	settings *repository.SettingsRepository
}

func NewTimerService(settings *repository.SettingsRepository) *TimerService {
	return &TimerService{settings: settings}
}

// Get returns the user's timer settings, falling back to the defaults
// when no row exists. Absence is not an error.
func (s *TimerService) Get(ctx context.Context, userID uint) (*model.TimerSettings, error) {
	settings, err := s.settings.FindByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.TimerSettings{
			UserID:        userID,
			WorkDuration:  model.DefaultWorkMinutes,
			BreakDuration: model.DefaultBreakMinutes,
		}, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return settings, nil
}

// Upsert stores both durations for the user, creating the row on first
// use and replacing it atomically afterwards.
func (s *TimerService) Upsert(ctx context.Context, userID uint, workMinutes, breakMinutes int) (*model.TimerSettings, error) {
	if workMinutes <= 0 {
		return nil, invalidf("work duration must be positive")
	}
	if breakMinutes <= 0 {
		return nil, invalidf("break duration must be positive")
	}

	settings := model.TimerSettings{
		UserID:        userID,
		WorkDuration:  workMinutes,
		BreakDuration: breakMinutes,
	}
	if err := s.settings.Upsert(ctx, &settings); err != nil {
		return nil, storeErr(err)
	}
	// Re-read so the caller sees the stored row, id included, after a
	// conflict-update path.
	stored, err := s.settings.FindByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return stored, nil
}
