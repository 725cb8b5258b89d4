package planner

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/parthselarka/focusmate/internal/model"
	"github.com/parthselarka/focusmate/internal/repository"
)

// Accepted layouts for task instants, tried in order. The calendar
// widget sends RFC 3339; the date-only form covers all-day entries.
var taskTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TaskInput carries the fields for creating a task.
type TaskInput struct {
	Title  string
	Start  string
	End    string
	AllDay bool
}

// TaskUpdate carries a partial update; nil fields are left unchanged.
type TaskUpdate struct {
	Title  *string
	Start  *string
	End    *string
	AllDay *bool
}

// TaskService wraps schedule-entry business logic. All operations are
// scoped to the owning user; a valid owner id is the caller's problem.
type TaskService struct {
	tasks    *repository.TaskRepository
	resolver *WindowResolver
}

func NewTaskService(tasks *repository.TaskRepository, resolver *WindowResolver) *TaskService {
	return &TaskService{tasks: tasks, resolver: resolver}
}

func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalidf("title is required")
	}
	start, err := s.parseInstant(input.Start)
	if err != nil {
		return nil, invalidf("invalid start time %q", input.Start)
	}
	end, err := s.parseInstant(input.End)
	if err != nil {
		return nil, invalidf("invalid end time %q", input.End)
	}

	task := model.Task{
		UserID: userID,
		Title:  title,
		Start:  start,
		End:    end,
		AllDay: input.AllDay,
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, storeErr(err)
	}
	return &task, nil
}

func (s *TaskService) List(ctx context.Context, userID uint) ([]model.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return tasks, nil
}

// ListOnDate returns the user's tasks starting on the given calendar
// date; an empty date means "today" in the scheduling timezone.
func (s *TaskService) ListOnDate(ctx context.Context, userID uint, date string) ([]model.Task, error) {
	if date == "" {
		date = s.resolver.DateOf(time.Now())
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, invalidf("invalid date %q, expected YYYY-MM-DD", date)
	}
	tasks, err := s.tasks.ListOnDate(ctx, userID, date)
	if err != nil {
		return nil, storeErr(err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return task, nil
}

// Update applies the non-nil fields to an owned task. The mutation is a
// single conditional statement, so zero affected rows means the task is
// gone or belongs to someone else; both read as not found.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, update TaskUpdate) (*model.Task, error) {
	values := map[string]interface{}{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, invalidf("title is required")
		}
		values["title"] = title
	}
	if update.Start != nil {
		start, err := s.parseInstant(*update.Start)
		if err != nil {
			return nil, invalidf("invalid start time %q", *update.Start)
		}
		values["start"] = start
	}
	if update.End != nil {
		end, err := s.parseInstant(*update.End)
		if err != nil {
			return nil, invalidf("invalid end time %q", *update.End)
		}
		values["end_event"] = end
	}
	if update.AllDay != nil {
		values["all_day"] = *update.AllDay
	}
	if len(values) == 0 {
		return s.Get(ctx, userID, taskID)
	}

	affected, err := s.tasks.Update(ctx, userID, taskID, values)
	if err != nil {
		return nil, storeErr(err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, userID, taskID)
}

// Delete removes an owned task. A repeat delete of the same id yields
// ErrNotFound again, not a failure.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	affected, err := s.tasks.Delete(ctx, userID, taskID)
	if err != nil {
		return storeErr(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCompleted toggles the completion flag on an owned task.
func (s *TaskService) SetCompleted(ctx context.Context, userID, taskID uint, completed bool) (*model.Task, error) {
	affected, err := s.tasks.Update(ctx, userID, taskID, map[string]interface{}{"completed": completed})
	if err != nil {
		return nil, storeErr(err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, userID, taskID)
}

func (s *TaskService) parseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range taskTimeLayouts {
		t, err := time.ParseInLocation(layout, raw, s.resolver.Location())
		if err == nil {
			// Clients may send any offset (RFC 3339 usually carries Z).
			// Stored instants and window bounds are compared as
			// offset-bearing text by the driver, so everything must be
			// rebased to the scheduling zone before storage.
			return t.In(s.resolver.Location()), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
