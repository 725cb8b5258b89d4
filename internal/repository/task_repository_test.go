package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/parthselarka/focusmate/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, username, email string) *model.User {
	t.Helper()
	user := model.User{Username: username, Email: email, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func mustCreateTask(t *testing.T, repo *TaskRepository, userID uint, title string, start time.Time) *model.Task {
	t.Helper()
	task := model.Task{
		UserID: userID,
		Title:  title,
		Start:  start,
		End:    start.Add(30 * time.Minute),
	}
	if err := repo.Create(context.Background(), &task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return &task
}

func TestListByUser_DoesNotLeakAcrossOwners(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	alice := mustCreateUser(t, db, "alice", "alice@example.com")
	bob := mustCreateUser(t, db, "bob", "bob@example.com")

	start := time.Now().Add(time.Hour)
	mustCreateTask(t, repo, alice.ID, "Alice task", start)
	mustCreateTask(t, repo, bob.ID, "Bob task", start)

	tasks, err := repo.ListByUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task for alice, got %d", len(tasks))
	}
	if tasks[0].Title != "Alice task" {
		t.Errorf("got %q, want alice's task", tasks[0].Title)
	}
}

func TestUpdate_WrongOwnerAffectsNothing(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	alice := mustCreateUser(t, db, "alice", "alice@example.com")
	bob := mustCreateUser(t, db, "bob", "bob@example.com")

	task := mustCreateTask(t, repo, alice.ID, "Standup", time.Now().Add(time.Hour))

	affected, err := repo.Update(context.Background(), bob.ID, task.ID, map[string]interface{}{"title": "Hijacked"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows affected for wrong owner, got %d", affected)
	}

	stored, err := repo.FindByID(context.Background(), alice.ID, task.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Title != "Standup" {
		t.Errorf("title mutated to %q by non-owner", stored.Title)
	}
}

func TestDelete_SecondDeleteAffectsNothing(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	alice := mustCreateUser(t, db, "alice", "alice@example.com")
	task := mustCreateTask(t, repo, alice.ID, "Once", time.Now().Add(time.Hour))

	affected, err := repo.Delete(context.Background(), alice.ID, task.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row deleted, got %d", affected)
	}

	affected, err = repo.Delete(context.Background(), alice.ID, task.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 rows on second delete, got %d", affected)
	}
}

func TestStartingBetween_HalfOpenWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	alice := mustCreateUser(t, db, "alice", "alice@example.com")

	t0 := time.Now().Truncate(time.Second)
	mustCreateTask(t, repo, alice.ID, "inside", t0.Add(5*time.Minute))
	mustCreateTask(t, repo, alice.ID, "at start", t0)
	mustCreateTask(t, repo, alice.ID, "too late", t0.Add(16*time.Minute))
	mustCreateTask(t, repo, alice.ID, "already started", t0.Add(-time.Minute))

	rows, err := repo.StartingBetween(context.Background(), t0, t0.Add(15*time.Minute))
	if err != nil {
		t.Fatalf("StartingBetween: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(rows))
	}
	if rows[0].Title != "at start" || rows[1].Title != "inside" {
		t.Errorf("unexpected matches: %q, %q", rows[0].Title, rows[1].Title)
	}
	if rows[0].Email != "alice@example.com" {
		t.Errorf("expected owner email joined in, got %q", rows[0].Email)
	}
}

func TestStartingBetween_EmptyWindowReturnsEmptySlice(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)

	t0 := time.Now()
	rows, err := repo.StartingBetween(context.Background(), t0, t0.Add(15*time.Minute))
	if err != nil {
		t.Fatalf("StartingBetween: %v", err)
	}
	if rows == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(rows) != 0 {
		t.Fatalf("expected no matches, got %d", len(rows))
	}
}

func TestListOnDate_MatchesDatePortionOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	alice := mustCreateUser(t, db, "alice", "alice@example.com")

	day := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	mustCreateTask(t, repo, alice.ID, "morning", day)
	mustCreateTask(t, repo, alice.ID, "evening", day.Add(10*time.Hour))
	mustCreateTask(t, repo, alice.ID, "next day", day.Add(24*time.Hour))

	tasks, err := repo.ListOnDate(context.Background(), alice.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("ListOnDate: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks on 2026-03-10, got %d", len(tasks))
	}
}
