package planner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/parthselarka/focusmate/internal/model"
	"github.com/parthselarka/focusmate/internal/repository"
)

type testEnv struct {
	db       *gorm.DB
	tasks    *TaskService
	timer    *TimerService
	auth     *AuthService
	taskRepo *repository.TaskRepository
	userRepo *repository.UserRepository
	resolver *WindowResolver
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvIn(t, time.UTC)
}

func newTestEnvIn(t *testing.T, loc *time.Location) *testEnv {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	resolver := NewWindowResolver(loc, 15*time.Minute)

	return &testEnv{
		db:       db,
		tasks:    NewTaskService(taskRepo, resolver),
		timer:    NewTimerService(settingsRepo),
		auth:     NewAuthService(userRepo, time.Hour),
		taskRepo: taskRepo,
		userRepo: userRepo,
		resolver: resolver,
	}
}

func (e *testEnv) createUser(t *testing.T, username, email string) *model.User {
	t.Helper()
	user := model.User{Username: username, Email: email, PasswordHash: "x"}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func (e *testEnv) createTask(t *testing.T, userID uint, title string, start time.Time) *model.Task {
	t.Helper()
	task, err := e.tasks.Create(context.Background(), userID, TaskInput{
		Title: title,
		Start: start.Format(time.RFC3339),
		End:   start.Add(30 * time.Minute).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
