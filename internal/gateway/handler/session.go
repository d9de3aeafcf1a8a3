package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"platewise/internal/session"
)

type SessionHandler struct {
	sessions *session.Service
}

func NewSessionHandler(sessions *session.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		UserID string `json:"user_id"`
	}
	if r.Body != nil {
		// an empty body is fine; the service assigns a user id
		_ = json.NewDecoder(r.Body).Decode(&in)
	}

	sess := h.sessions.Create(strings.TrimSpace(in.UserID))
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"user_id":    sess.UserID,
	})
}
