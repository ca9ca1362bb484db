package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/appointment-tracker/internal/auth"
)

func toSessionResponse(sess auth.Session) SessionResponse {
	e := toEmployeeResponse(sess.Employee)
	return SessionResponse{
		Token:        sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt,
		Employee:     &e,
	}
}

// LoginHandler godoc
// @Summary Authenticate an employee and return a token pair
// @Tags sessions
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "email and password"
// @Success 200 {object} SessionResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /sessions [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := readJSON(w, r, "session", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if !s.validate(w, r, req) {
		return
	}

	sess, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		s.writeError(w, r, err, "session")
		return
	}
	s.writeJSON(w, r, http.StatusOK, toSessionResponse(sess))
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags sessions
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "refresh token"
// @Success 200 {object} SessionResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /sessions/refresh [post]
func (s *Server) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, "session", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if !s.validate(w, r, req) {
		return
	}

	sess, err := s.auth.Refresh(r.Context(), req.RefreshToken)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}
	if err != nil {
		s.writeError(w, r, err, "session")
		return
	}
	resp := toSessionResponse(sess)
	resp.Employee = nil
	s.writeJSON(w, r, http.StatusOK, resp)
}

// LogoutHandler godoc
// @Summary Revoke a refresh token
// @Tags sessions
// @Accept json
// @Param body body RefreshRequest true "refresh token"
// @Success 204 "Logged out"
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /sessions [delete]
// @Security BearerAuth
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, "session", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if !s.validate(w, r, req) {
		return
	}
	if err := s.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		s.writeError(w, r, err, "session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
