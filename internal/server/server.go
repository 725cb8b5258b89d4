// Package server exposes the JSON API consumed by the browser frontend.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/parthselarka/focusmate/internal/planner"
)

// SessionCookie names the login session cookie.
const SessionCookie = "focusmate_session"

type ctxKey int

const userIDKey ctxKey = 0

// ResetMailer delivers password-reset links out of band. Password reset
// is always an email concern, whichever gateway handles reminders.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, contact, link string) error
}

// Options carries the server's collaborator wiring beyond the planner
// services.
type Options struct {
	ResetMailer ResetMailer
	BaseURL     string
	SessionTTL  time.Duration
}

// Server routes API requests to the planner services.
type Server struct {
	auth       *planner.AuthService
	tasks      *planner.TaskService
	timer      *planner.TimerService
	resetMail  ResetMailer
	baseURL    string
	sessionTTL time.Duration
	mux        *http.ServeMux
}

func New(auth *planner.AuthService, tasks *planner.TaskService, timer *planner.TimerService, opts Options) *Server {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:3000"
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}
	s := &Server{
		auth:       auth,
		tasks:      tasks,
		timer:      timer,
		resetMail:  opts.ResetMailer,
		baseURL:    opts.BaseURL,
		sessionTTL: opts.SessionTTL,
		mux:        http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /api/users/signup", s.handleSignUp)
	s.mux.HandleFunc("POST /api/users/login", s.handleLogIn)
	s.mux.HandleFunc("POST /api/users/logout", s.handleLogOut)
	s.mux.HandleFunc("POST /api/users/forgot-password", s.handleForgotPassword)
	s.mux.HandleFunc("POST /api/users/reset-password", s.handleResetPassword)

	s.mux.HandleFunc("GET /api/tasks", s.requireAuth(s.handleListTasks))
	s.mux.HandleFunc("GET /api/tasks/today", s.requireAuth(s.handleTasksToday))
	s.mux.HandleFunc("POST /api/tasks", s.requireAuth(s.handleCreateTask))
	s.mux.HandleFunc("PUT /api/tasks/{taskId}", s.requireAuth(s.handleUpdateTask))
	s.mux.HandleFunc("DELETE /api/tasks/{taskId}", s.requireAuth(s.handleDeleteTask))
	s.mux.HandleFunc("PUT /api/tasks/{taskId}/complete", s.requireAuth(s.handleCompleteTask))

	s.mux.HandleFunc("GET /api/timer/settings", s.requireAuth(s.handleGetTimerSettings))
	s.mux.HandleFunc("POST /api/timer/settings", s.requireAuth(s.handleUpsertTimerSettings))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// requireAuth resolves the session cookie to an owner id before the
// handler runs. No valid session means the core is never reached.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "please log in to access this resource")
			return
		}
		userID, err := s.auth.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "please log in to access this resource")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

func ownerID(r *http.Request) uint {
	id, _ := r.Context().Value(userIDKey).(uint)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps the planner error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case planner.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, planner.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, planner.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
