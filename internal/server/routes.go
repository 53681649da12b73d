package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// Portal status
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/engine-health", s.app.EngineHealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// Client roster
	mux.HandleFunc("/api/clients", s.app.ClientsHandler.HandleList)
	mux.HandleFunc("/api/clients/refresh", s.app.ClientsHandler.HandleRefresh)
	mux.HandleFunc("/api/clients/banner/dismiss", s.app.ClientsHandler.HandleDismissBanner)
	mux.HandleFunc("/api/stats", s.app.ClientsHandler.HandleStats)

	// Reports
	mux.HandleFunc("/api/report", s.app.ReportHandler.HandleGenerate)
	mux.HandleFunc("GET /api/report/{client_id}", s.app.ReportHandler.HandleGetDraft)
	mux.Handle("GET /api/report/{client_id}/export", s.app.ExportHandler)

	// Dashboard view state
	mux.Handle("/api/view", s.app.ViewHandler)

	// Settings
	mux.Handle("/api/settings/keys", s.app.SettingsHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
