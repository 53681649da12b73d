// Package mcp exposes the portal's data surfaces as MCP tools over
// streamable HTTP.
package mcp

import (
	"net/http"

	"github.com/ivywealth/ivy-portal/internal/client"
	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/config"
	"github.com/ivywealth/ivy-portal/internal/roster"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates a new MCP handler with the portal's static tool set.
func NewHandler(logger *common.Logger, engine *client.EngineClient, store *roster.Store) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"ivy-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	registerTools(mcpSrv, engine, store)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
