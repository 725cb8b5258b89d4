package server

import (
	"net/http"

	"github.com/parthselarka/focusmate/internal/model"
)

type settingsJSON struct {
	WorkDuration  int `json:"work_duration"`
	BreakDuration int `json:"break_duration"`
}

func toSettingsJSON(s *model.TimerSettings) settingsJSON {
	return settingsJSON{
		WorkDuration:  s.WorkDuration,
		BreakDuration: s.BreakDuration,
	}
}

func (s *Server) handleGetTimerSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.timer.Get(r.Context(), ownerID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsJSON(settings))
}

func (s *Server) handleUpsertTimerSettings(w http.ResponseWriter, r *http.Request) {
	var body settingsJSON
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := s.timer.Upsert(r.Context(), ownerID(r), body.WorkDuration, body.BreakDuration)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsJSON(settings))
}
