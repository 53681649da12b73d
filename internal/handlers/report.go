package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ivywealth/ivy-portal/internal/client"
	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/models"
	"github.com/ivywealth/ivy-portal/internal/report"
	"github.com/ivywealth/ivy-portal/internal/roster"
	badgerstore "github.com/ivywealth/ivy-portal/internal/storage/badger"
)

// ReportHandler generates client reports through the wealth engine and
// serves them decomposed into dashboard sections.
type ReportHandler struct {
	logger  *common.Logger
	engine  *client.EngineClient
	roster  *roster.Store
	reports *badgerstore.ReportStore
}

// NewReportHandler creates a new report handler.
func NewReportHandler(logger *common.Logger, engine *client.EngineClient, store *roster.Store, reports *badgerstore.ReportStore) *ReportHandler {
	return &ReportHandler{logger: logger, engine: engine, roster: store, reports: reports}
}

// reportResponse is the payload for POST /api/report.
type reportResponse struct {
	ClientID     string                  `json:"client_id"`
	ClientName   string                  `json:"client_name,omitempty"`
	GeneratedAt  string                  `json:"generated_at"`
	Sections     report.Sections         `json:"sections"`
	SectionsHTML report.RenderedSections `json:"sections_html"`
	State        *models.FinalState      `json:"state"`
}

// HandleGenerate handles POST /api/report with { client_id }.
func (h *ReportHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		ClientID string `json:"client_id"`
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || json.Unmarshal(body, &req) != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.ClientID = strings.TrimSpace(req.ClientID)
	if req.ClientID == "" {
		WriteError(w, http.StatusBadRequest, "client_id is required")
		return
	}

	state, err := h.engine.GenerateFullReport(r.Context(), req.ClientID)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn().Str("client_id", req.ClientID).Str("error", err.Error()).Msg("report generation failed")
		}
		if strings.Contains(err.Error(), "client not found") {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadGateway, "report generation failed: "+err.Error())
		return
	}

	sections := report.Decompose(state.FinalReport)
	rendered := report.Render(sections)
	generatedAt := time.Now().UTC()

	clientName := ""
	if c, ok := h.roster.Find(req.ClientID); ok {
		clientName = c.Name
	}

	if h.reports != nil {
		stored := &models.StoredReport{
			ClientID:    req.ClientID,
			ClientName:  clientName,
			GeneratedAt: generatedAt,
			State:       *state,
		}
		if err := h.reports.Save(r.Context(), stored); err != nil && h.logger != nil {
			h.logger.Warn().Str("client_id", req.ClientID).Str("error", err.Error()).Msg("failed to persist report draft")
		}
	}

	WriteJSON(w, http.StatusOK, reportResponse{
		ClientID:     req.ClientID,
		ClientName:   clientName,
		GeneratedAt:  generatedAt.Format(time.RFC3339),
		Sections:     sections,
		SectionsHTML: rendered,
		State:        state,
	})
}

// draftResponse is the payload for GET /api/report/{client_id}.
type draftResponse struct {
	ClientID    string             `json:"client_id"`
	ClientName  string             `json:"client_name,omitempty"`
	GeneratedAt string             `json:"generated_at"`
	Stale       bool               `json:"stale"`
	Sections    report.Sections    `json:"sections"`
	State       *models.FinalState `json:"state"`
}

// HandleGetDraft serves the last stored report draft for a client.
// Drafts past the report freshness tier are flagged stale so the
// dashboard can prompt for a regeneration.
func (h *ReportHandler) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	clientID := strings.TrimSpace(r.PathValue("client_id"))
	if clientID == "" {
		WriteError(w, http.StatusBadRequest, "client_id is required")
		return
	}

	stored, err := h.reports.Get(r.Context(), clientID)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, draftResponse{
		ClientID:    stored.ClientID,
		ClientName:  stored.ClientName,
		GeneratedAt: stored.GeneratedAt.Format(time.RFC3339),
		Stale:       !common.IsFresh(stored.GeneratedAt, common.FreshnessReport),
		Sections:    report.Decompose(stored.State.FinalReport),
		State:       &stored.State,
	})
}
