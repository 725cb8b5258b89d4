package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/parthselarka/focusmate/internal/model"
	"github.com/parthselarka/focusmate/internal/planner"
)

// taskJSON mirrors the field names the calendar frontend expects.
type taskJSON struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	AllDay    bool      `json:"allDay"`
	Completed bool      `json:"completed"`
}

func toTaskJSON(t model.Task) taskJSON {
	return taskJSON{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Start:     t.Start,
		End:       t.End,
		AllDay:    t.AllDay,
		Completed: t.Completed,
	}
}

func toTaskList(tasks []model.Task) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskJSON(t))
	}
	return out
}

func pathTaskID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("taskId"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context(), ownerID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskList(tasks))
}

func (s *Server) handleTasksToday(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListOnDate(r.Context(), ownerID(r), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskList(tasks))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title  string `json:"title"`
		Start  string `json:"start"`
		End    string `json:"end"`
		AllDay bool   `json:"allDay"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := s.tasks.Create(r.Context(), ownerID(r), planner.TaskInput{
		Title:  body.Title,
		Start:  body.Start,
		End:    body.End,
		AllDay: body.AllDay,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskJSON(*task))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathTaskID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var body struct {
		Title  *string `json:"title"`
		Start  *string `json:"start"`
		End    *string `json:"end"`
		AllDay *bool   `json:"allDay"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := s.tasks.Update(r.Context(), ownerID(r), taskID, planner.TaskUpdate{
		Title:  body.Title,
		Start:  body.Start,
		End:    body.End,
		AllDay: body.AllDay,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskJSON(*task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathTaskID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := s.tasks.Delete(r.Context(), ownerID(r), taskID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted successfully"})
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathTaskID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var body struct {
		Completed bool `json:"completed"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := s.tasks.SetCompleted(r.Context(), ownerID(r), taskID, body.Completed)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskJSON(*task))
}
