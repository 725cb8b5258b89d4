package model

import "time"

// Task is a time-boxed calendar entry owned by a single user.
type Task struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index"`
	Title     string
	Start     time.Time `gorm:"index"`
	End       time.Time `gorm:"column:end_event"`
	AllDay    bool      `gorm:"default:false"`
	Completed bool      `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
