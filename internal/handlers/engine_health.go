package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ivywealth/ivy-portal/internal/cache"
	"github.com/ivywealth/ivy-portal/internal/client"
	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/models"
)

// EngineHealthHandler proxies health checks to the upstream wealth engine.
type EngineHealthHandler struct {
	logger *common.Logger
	engine *client.EngineClient
	cache  *cache.ResponseCache
}

// NewEngineHealthHandler creates a new engine health handler.
func NewEngineHealthHandler(logger *common.Logger, engine *client.EngineClient, respCache *cache.ResponseCache) *EngineHealthHandler {
	return &EngineHealthHandler{logger: logger, engine: engine, cache: respCache}
}

// ServeHTTP handles GET /api/engine-health.
func (h *EngineHealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	key := cache.MakeKey("GET", "/api/engine-health", "")
	if h.cache != nil {
		if cached, ok := h.cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(cached.StatusCode)
			w.Write(cached.Body)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status, err := h.engine.Health(ctx)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn().Str("error", err.Error()).Msg("engine health check failed")
		}
		down := models.SystemStatus{Status: "down"}
		down.ApplyDefaults()
		WriteJSON(w, http.StatusServiceUnavailable, down)
		return
	}

	body, err := json.Marshal(status)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode health status")
		return
	}

	if h.cache != nil {
		h.cache.SetWithTTL(key, &cache.CachedResponse{
			StatusCode: http.StatusOK,
			Body:       body,
		}, common.FreshnessHealth)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
