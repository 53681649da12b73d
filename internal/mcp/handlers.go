package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/ivywealth/ivy-portal/internal/client"
	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/models"
	"github.com/ivywealth/ivy-portal/internal/report"
	"github.com/ivywealth/ivy-portal/internal/roster"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// --- Handlers ---

func handleListClients(store *roster.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		term := request.GetString("search", "")
		clients := store.Filter(term)
		if len(clients) == 0 {
			if term != "" {
				return textResult(fmt.Sprintf("No clients match %q.", term)), nil
			}
			return textResult("No clients loaded. The roster may not have been fetched yet."), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%d client(s):\n\n", len(clients))
		for _, c := range clients {
			fmt.Fprintf(&b, "%s - %s\n  Portfolio: %s | Risk: %s | Status: %s\n",
				c.ID, c.Name, common.FormatMoney(float64(c.PortfolioValue)), c.RiskTolerance, c.Status)
		}

		stats := store.Aggregate()
		fmt.Fprintf(&b, "\nTotal AUM: %s | Avg Sharpe: %.2f | At risk: %s",
			common.FormatAUM(float64(stats.TotalAUM)), stats.AvgSharpe, common.FormatPct(stats.AtRiskPct))
		return textResult(b.String()), nil
	}
}

func handleGetClient(store *roster.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		clientID, err := request.RequireString("client_id")
		if err != nil {
			return errorResult("Error: client_id parameter is required"), nil
		}

		c, ok := store.Find(clientID)
		if !ok {
			return errorResult(fmt.Sprintf("Error: no client with id %q", clientID)), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s - %s\n", c.ID, c.Name)
		fmt.Fprintf(&b, "Email: %s\n", c.Email)
		fmt.Fprintf(&b, "Portfolio: %s\n", common.FormatMoney(float64(c.PortfolioValue)))
		fmt.Fprintf(&b, "Risk tolerance: %s\n", c.RiskTolerance)
		fmt.Fprintf(&b, "Status: %s\n", c.Status)
		fmt.Fprintf(&b, "Sharpe ratio: %.2f\n", c.EffectiveSharpe())
		if c.GoalAmount > 0 {
			fmt.Fprintf(&b, "Goal: %s\n", common.FormatMoney(float64(c.GoalAmount)))
		}
		if c.LastReport != "" {
			fmt.Fprintf(&b, "Last report: %s\n", c.LastReport)
		}
		return textResult(b.String()), nil
	}
}

func handleGenerateReport(engine *client.EngineClient, store *roster.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		clientID, err := request.RequireString("client_id")
		if err != nil {
			return errorResult("Error: client_id parameter is required"), nil
		}

		state, err := engine.GenerateFullReport(ctx, clientID)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		sections := report.Decompose(state.FinalReport)

		var b strings.Builder
		if c, ok := store.Find(clientID); ok {
			fmt.Fprintf(&b, "Report for %s (%s)\n\n", c.Name, c.ID)
		} else {
			fmt.Fprintf(&b, "Report for %s\n\n", clientID)
		}
		fmt.Fprintf(&b, "### Outlook\n\n%s\n\n", sections.Outlook)
		fmt.Fprintf(&b, "%s\n\n", sections.Dynamics)
		fmt.Fprintf(&b, "%s\n", sections.Verdict)
		if state.ComplianceStatus != "" {
			fmt.Fprintf(&b, "\nCompliance: %s\n", state.ComplianceStatus)
		}
		return textResult(b.String()), nil
	}
}

func handleSystemHealth(engine *client.EngineClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status, err := engine.Health(ctx)
		if err != nil {
			down := models.SystemStatus{Status: "down"}
			down.ApplyDefaults()
			return textResult(fmt.Sprintf(
				"Wealth engine unreachable (%v)\nEngine: %s\nCRM: %s\nLLM: %s",
				err, down.Engine, down.CRM, down.LLM)), nil
		}

		return textResult(fmt.Sprintf(
			"Status: %s\nEngine: %s\nCRM: %s\nLLM: %s",
			status.Status, status.Engine, status.CRM, status.LLM)), nil
	}
}
