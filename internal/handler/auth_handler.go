package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tanchoice/livestock/backend/internal/auth"
)

// loginRequest is the JSON body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login.
// Returns the signed session token and the user it belongs to.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	session, err := s.sessions.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		respondServiceError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Logout handles POST /auth/logout.
// Tokens are stateless, so there is nothing to revoke server-side; the
// endpoint exists so clients have a uniform sign-out call.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /auth/session.
// Returns the user attached to the request's bearer token.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
