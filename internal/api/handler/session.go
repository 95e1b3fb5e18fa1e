package handler

import (
	"net/http"

	"github.com/spaceblaster/scorekeeper/internal/api/response"
	"github.com/spaceblaster/scorekeeper/internal/services/auth"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	authService *auth.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service) *SessionHandler {
	return &SessionHandler{
		authService: authService,
	}
}

// SignIn handles POST /api/v1/session (anonymous sign-in)
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	session, err := h.authService.SignInAnonymously(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}
