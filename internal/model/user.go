package model

import "time"

// User stores account credentials and reminder contact info.
type User struct {
	ID               uint   `gorm:"primaryKey"`
	Username         string `gorm:"uniqueIndex"`
	Email            string `gorm:"uniqueIndex"`
	PasswordHash     string
	TelegramChatID   int64
	ResetToken       string `gorm:"index"`
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
