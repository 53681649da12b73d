package mcp

import (
	"github.com/ivywealth/ivy-portal/internal/client"
	"github.com/ivywealth/ivy-portal/internal/roster"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerTools registers all MCP tools on the server, wiring each to a
// handler backed by the roster and the wealth engine.
func registerTools(s *server.MCPServer, engine *client.EngineClient, store *roster.Store) {
	s.AddTool(createListClientsTool(), handleListClients(store))
	s.AddTool(createGetClientTool(), handleGetClient(store))
	s.AddTool(createGenerateReportTool(), handleGenerateReport(engine, store))
	s.AddTool(createSystemHealthTool(), handleSystemHealth(engine))
}

// --- Tool definitions ---

func createListClientsTool() mcp.Tool {
	return mcp.NewTool("list_clients",
		mcp.WithDescription("List the advisory client roster with portfolio values, risk tolerance, and status. Supports optional case-insensitive filtering by name or id."),
		mcp.WithString("search", mcp.Description("Substring to match against client name or id (e.g., 'chen', 'CLT-001'). Omit to list everyone.")),
	)
}

func createGetClientTool() mcp.Tool {
	return mcp.NewTool("get_client",
		mcp.WithDescription("Get one client's full record: portfolio value, risk tolerance, status, Sharpe ratio, goal amount, and last report date."),
		mcp.WithString("client_id", mcp.Required(), mcp.Description("Client id (e.g., 'CLT-001')")),
	)
}

func createGenerateReportTool() mcp.Tool {
	return mcp.NewTool("generate_report",
		mcp.WithDescription("Run the wealth engine's full analysis pipeline for a client and return the compiled report with Outlook, Key Strengths & Portfolio Dynamics, and Final Verdict sections. Slow: runs risk models and persona analyses upstream."),
		mcp.WithString("client_id", mcp.Required(), mcp.Description("Client id to generate the report for (e.g., 'CLT-001')")),
	)
}

func createSystemHealthTool() mcp.Tool {
	return mcp.NewTool("system_health",
		mcp.WithDescription("FAST: Check wealth engine connectivity and component status (engine, CRM, LLM). Use this to verify the upstream is reachable before generating reports."),
	)
}
