package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ivywealth/ivy-portal/internal/cache"
	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/roster"
)

// clientsCachePrefix covers every cached roster response. Invalidated
// whenever the roster or its banner state changes.
const clientsCachePrefix = "GET:/api/clients"

// ClientsHandler serves the client roster and its derived views.
type ClientsHandler struct {
	logger *common.Logger
	roster *roster.Store
	cache  *cache.ResponseCache
}

// NewClientsHandler creates a new clients handler.
func NewClientsHandler(logger *common.Logger, store *roster.Store, respCache *cache.ResponseCache) *ClientsHandler {
	return &ClientsHandler{logger: logger, roster: store, cache: respCache}
}

// clientListResponse is the payload for GET /api/clients.
type clientListResponse struct {
	Clients    any    `json:"clients"`
	Total      int    `json:"total"`
	Generation uint64 `json:"generation"`
	FetchedAt  string `json:"fetched_at,omitempty"`
	Banner     string `json:"banner,omitempty"`
}

// HandleList handles GET /api/clients with optional ?search= filtering.
// Responses are cached per query string for the roster freshness tier;
// refresh and banner changes invalidate.
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	key := cache.MakeKey("GET", "/api/clients", r.URL.RawQuery)
	if h.cache != nil {
		if cached, ok := h.cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(cached.StatusCode)
			w.Write(cached.Body)
			return
		}
	}

	term := r.URL.Query().Get("search")
	clients := h.roster.Filter(term)

	resp := clientListResponse{
		Clients:    clients,
		Total:      len(clients),
		Generation: h.roster.Generation(),
	}
	if at := h.roster.LastFetched(); !at.IsZero() {
		resp.FetchedAt = at.UTC().Format(time.RFC3339)
	}
	if banner, ok := h.roster.Banner(); ok {
		resp.Banner = banner
	}

	body, err := json.Marshal(resp)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode client list")
		return
	}

	if h.cache != nil {
		h.cache.SetWithTTL(key, &cache.CachedResponse{
			StatusCode: http.StatusOK,
			Body:       body,
		}, common.FreshnessRoster)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// HandleRefresh handles POST /api/clients/refresh. A failed refetch keeps
// the previous roster and reports the banner instead of an empty list.
func (h *ClientsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	err := h.roster.Refresh(r.Context())
	if h.cache != nil {
		h.cache.InvalidatePrefix(clientsCachePrefix)
	}

	if err != nil {
		if h.logger != nil {
			h.logger.Warn().Str("error", err.Error()).Msg("roster refresh failed")
		}
		banner, _ := h.roster.Banner()
		WriteJSON(w, http.StatusBadGateway, map[string]any{
			"status":     "stale",
			"banner":     banner,
			"total":      len(h.roster.Clients()),
			"generation": h.roster.Generation(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"total":      len(h.roster.Clients()),
		"generation": h.roster.Generation(),
	})
}

// HandleDismissBanner handles POST /api/clients/banner/dismiss.
func (h *ClientsHandler) HandleDismissBanner(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	h.roster.DismissBanner()
	if h.cache != nil {
		h.cache.InvalidatePrefix(clientsCachePrefix)
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleStats handles GET /api/stats.
func (h *ClientsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, h.roster.Aggregate())
}
