package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/view"
)

// sessionCookie identifies a dashboard session. View state lives in
// memory keyed by this cookie; it does not survive a portal restart.
const sessionCookie = "ivy_session"

// ViewHandler serves per-session dashboard view state.
type ViewHandler struct {
	logger   *common.Logger
	sessions *view.Sessions
}

// NewViewHandler creates a new view state handler.
func NewViewHandler(logger *common.Logger, sessions *view.Sessions) *ViewHandler {
	return &ViewHandler{logger: logger, sessions: sessions}
}

// sessionID returns the request's session id, minting a new one (and
// setting the cookie) for first-time visitors.
func (h *ViewHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// ServeHTTP handles GET and PUT /api/view. GET returns the session's
// state; PUT applies a single action and returns the resulting state.
func (h *ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		id := h.sessionID(w, r)
		WriteJSON(w, http.StatusOK, h.sessions.Get(id))

	case http.MethodPut:
		id := h.sessionID(w, r)

		var action view.Action
		body, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
		if err != nil || json.Unmarshal(body, &action) != nil {
			WriteError(w, http.StatusBadRequest, "invalid action body")
			return
		}

		state, err := h.sessions.Dispatch(id, action)
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, map[string]any{
				"status": "error",
				"error":  err.Error(),
				"state":  state,
			})
			return
		}
		WriteJSON(w, http.StatusOK, state)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
