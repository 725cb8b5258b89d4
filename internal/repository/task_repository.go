package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/parthselarka/focusmate/internal/model"
)

// ReminderRow is one task due for a reminder, joined to its owner's
// contact fields.
type ReminderRow struct {
	TaskID         uint
	UserID         uint
	Title          string
	Start          time.Time
	Email          string
	TelegramChatID int64
}

// TaskRepository handles CRUD for schedule entries.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListOnDate returns the user's tasks whose start falls on the given
// calendar date (YYYY-MM-DD).
func (r *TaskRepository) ListOnDate(ctx context.Context, userID uint, date string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND DATE(start) = ?", userID, date).
		Order("start ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies the given column values to the task iff it is owned by
// userID. The ownership check and the write are a single statement, so a
// concurrent delete cannot slip between them; callers must treat a zero
// row count as not found.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID uint, values map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(values)
	if res.Error != nil {
		return 0, fmt.Errorf("update task: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the task iff it is owned by userID, reporting how many
// rows went away.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&model.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete task: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// StartingBetween returns tasks with start in [from, to), joined to the
// owner's contact info for reminder dispatch. Returns an empty slice,
// not nil, when nothing matches.
func (r *TaskRepository) StartingBetween(ctx context.Context, from, to time.Time) ([]ReminderRow, error) {
	rows := make([]ReminderRow, 0)
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("tasks.id AS task_id, tasks.user_id, tasks.title, tasks.start, users.email, users.telegram_chat_id").
		Joins("JOIN users ON users.id = tasks.user_id").
		Where("tasks.start >= ? AND tasks.start < ?", from, to).
		Order("tasks.start ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("scan window: %w", err)
	}
	return rows, nil
}
