package server

import (
	"log"
	"net/http"
	"net/url"
	"strings"
)

func sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.SignUp(r.Context(), body.Username, body.Email, body.Password, body.ConfirmPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (s *Server) handleLogIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.auth.LogIn(r.Context(), body.Username, body.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// Cookie lifetime follows the session TTL so the two cannot drift.
	http.SetCookie(w, sessionCookie(token, int(s.sessionTTL.Seconds())))
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged in"})
}

func (s *Server) handleLogOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := s.auth.LogOut(r.Context(), cookie.Value); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	http.SetCookie(w, sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The token travels only by mail; the response never confirms
	// whether the address is registered.
	email := strings.ToLower(strings.TrimSpace(body.Email))
	token, err := s.auth.RequestPasswordReset(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if token != "" {
		if s.resetMail == nil {
			log.Printf("reset mail: no mailer configured, token for %s not delivered", email)
		} else {
			link := s.baseURL + "/reset-password?token=" + url.QueryEscape(token)
			if err := s.resetMail.SendPasswordReset(r.Context(), email, link); err != nil {
				log.Printf("reset mail: %v", err)
				writeError(w, http.StatusInternalServerError, "server error")
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "if an account with that email exists, a password reset email has been sent",
	})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.auth.ResetPassword(r.Context(), body.Token, body.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password has been reset successfully"})
}
