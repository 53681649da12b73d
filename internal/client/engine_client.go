package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ivywealth/ivy-portal/internal/models"
)

// EngineClient communicates with the wealth engine REST API.
type EngineClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewEngineClient creates a new client targeting the given engine URL.
func NewEngineClient(baseURL string) *EngineClient {
	return &EngineClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Health fetches engine health.
// GET /health -> { status, engine, crm, llm }. All component fields optional;
// defaults are applied portal-side.
func (c *EngineClient) Health(ctx context.Context) (*models.SystemStatus, error) {
	body, err := c.get(ctx, "/health")
	if err != nil {
		return nil, err
	}

	var status models.SystemStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse health response: %w", err)
	}
	status.ApplyDefaults()

	return &status, nil
}

// ListClients fetches the full client roster.
// GET /clients -> [Client, ...]
func (c *EngineClient) ListClients(ctx context.Context) ([]models.Client, error) {
	body, err := c.get(ctx, "/clients")
	if err != nil {
		return nil, err
	}

	var clients []models.Client
	if err := json.Unmarshal(body, &clients); err != nil {
		return nil, fmt.Errorf("failed to parse clients response: %w", err)
	}

	return clients, nil
}

// GenerateReport runs the engine pipeline and returns the flat report.
// POST /generate-report with { client_id } -> Report
func (c *EngineClient) GenerateReport(ctx context.Context, clientID string) (*models.Report, error) {
	body, err := c.post(ctx, "/generate-report", clientID)
	if err != nil {
		return nil, err
	}

	var report models.Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report response: %w", err)
	}

	return &report, nil
}

// GenerateFullReport runs the engine pipeline and returns the full
// pipeline state. POST /api/generate-report with { client_id } -> FinalState.
// This is a distinct contract from GenerateReport, not an alias.
func (c *EngineClient) GenerateFullReport(ctx context.Context, clientID string) (*models.FinalState, error) {
	body, err := c.post(ctx, "/api/generate-report", clientID)
	if err != nil {
		return nil, err
	}

	var state models.FinalState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("failed to parse report state response: %w", err)
	}

	return &state, nil
}

// get issues a GET and returns the response body for 200 responses.
func (c *EngineClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach wealth engine: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("engine returned %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// post issues a POST with a { client_id } body and returns the response
// body for 200 responses.
func (c *EngineClient) post(ctx context.Context, path, clientID string) ([]byte, error) {
	jsonData, err := json.Marshal(map[string]string{"client_id": clientID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach wealth engine: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("client not found: %s", clientID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("engine returned %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
