package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/export"
	badgerstore "github.com/ivywealth/ivy-portal/internal/storage/badger"
)

// ExportHandler serves stored reports as JSON downloads.
type ExportHandler struct {
	logger  *common.Logger
	reports *badgerstore.ReportStore
}

// NewExportHandler creates a new export handler.
func NewExportHandler(logger *common.Logger, reports *badgerstore.ReportStore) *ExportHandler {
	return &ExportHandler{logger: logger, reports: reports}
}

// ServeHTTP handles GET /api/report/{client_id}/export.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	clientID := r.PathValue("client_id")
	if strings.TrimSpace(clientID) == "" {
		WriteError(w, http.StatusBadRequest, "client_id is required")
		return
	}

	stored, err := h.reports.Get(r.Context(), clientID)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	displayName := stored.ClientName
	if displayName == "" {
		displayName = stored.ClientID
	}

	data, err := export.Marshal(stored)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("client_id", clientID).Str("error", err.Error()).Msg("failed to serialize export")
		}
		WriteError(w, http.StatusInternalServerError, "failed to serialize report")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(displayName)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
