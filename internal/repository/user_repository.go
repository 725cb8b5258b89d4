package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/parthselarka/focusmate/internal/model"
)

// UserRepository handles accounts and login sessions.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// gorm.ErrDuplicatedKey passes through for the caller to classify.
		return err
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetResetToken stores a password-reset token and its expiry on the user.
func (r *UserRepository) SetResetToken(ctx context.Context, userID uint, token string, expiry time.Time) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"reset_token": token, "reset_token_expiry": expiry}).Error
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// FindByResetToken returns the user holding a still-valid reset token.
func (r *UserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("reset_token = ? AND reset_token_expiry > ?", token, now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the password hash and clears any reset token.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":      passwordHash,
			"reset_token":        "",
			"reset_token_expiry": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *UserRepository) CreateSession(ctx context.Context, session *model.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *UserRepository) FindSession(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *UserRepository) DeleteSession(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions whose expiry is in the past.
func (r *UserRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	if err := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}
