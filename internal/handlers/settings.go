package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ivywealth/ivy-portal/internal/common"
	badgerstore "github.com/ivywealth/ivy-portal/internal/storage/badger"
)

// SettingsHandler manages named engine API keys.
type SettingsHandler struct {
	logger      *common.Logger
	credentials *badgerstore.CredentialStore
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(logger *common.Logger, credentials *badgerstore.CredentialStore) *SettingsHandler {
	return &SettingsHandler{logger: logger, credentials: credentials}
}

// ServeHTTP handles GET and POST /api/settings/keys. GET lists stored
// key names (never the key material); POST saves a new named key.
// Saving a duplicate name is a validation error and changes nothing.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		names, err := h.credentials.Names(r.Context())
		if err != nil {
			if h.logger != nil {
				h.logger.Error().Str("error", err.Error()).Msg("failed to list credentials")
			}
			WriteError(w, http.StatusInternalServerError, "failed to list keys")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"names": names})

	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
			Key  string `json:"key"`
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
		if err != nil || json.Unmarshal(body, &req) != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := h.credentials.Save(r.Context(), req.Name, req.Key); err != nil {
			if errors.Is(err, badgerstore.ErrDuplicateName) || errors.Is(err, badgerstore.ErrInvalidCredential) {
				WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			if h.logger != nil {
				h.logger.Error().Str("error", err.Error()).Msg("failed to save credential")
			}
			WriteError(w, http.StatusInternalServerError, "failed to save key")
			return
		}
		WriteJSON(w, http.StatusCreated, map[string]string{"status": "ok", "name": req.Name})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
