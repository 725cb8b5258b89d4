package model

import "time"

// Pomodoro defaults applied when a user has no stored settings.
const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// TimerSettings holds a user's Pomodoro durations in minutes.
// At most one row exists per user.
type TimerSettings struct {
	ID            uint `gorm:"primaryKey"`
	UserID        uint `gorm:"uniqueIndex"`
	WorkDuration  int
	BreakDuration int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
