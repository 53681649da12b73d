// Package models defines data structures for Ivy Portal
package models

import "strings"

// Risk tolerance values as delivered by the CRM.
const (
	RiskConservative = "Conservative"
	RiskModerate     = "Moderate"
	RiskAggressive   = "Aggressive"
)

// Client status values as delivered by the CRM.
const (
	StatusOnTrack     = "On Track"
	StatusAtRisk      = "At Risk"
	StatusNeedsReview = "Needs Review"
)

// DefaultSharpeRatio is assumed when the engine omits a client's Sharpe ratio.
const DefaultSharpeRatio = 0.8

// Client is one CRM client record. Immutable once fetched; the roster
// replaces the whole list on refetch.
type Client struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	PortfolioValue int64    `json:"portfolio_value"`
	RiskTolerance  string   `json:"risk_tolerance"`
	Status         string   `json:"status"`
	GoalAmount     int64    `json:"goal_amount,omitempty"`
	LastReport     string   `json:"last_report,omitempty"`
	SharpeRatio    *float64 `json:"sharpe_ratio,omitempty"`
	CVaR           *float64 `json:"cvar,omitempty"`
}

// EffectiveSharpe returns the client's Sharpe ratio, or DefaultSharpeRatio
// when the engine did not supply one.
func (c *Client) EffectiveSharpe() float64 {
	if c.SharpeRatio == nil {
		return DefaultSharpeRatio
	}
	return *c.SharpeRatio
}

// Matches reports whether the search term matches the client's name or id,
// case-insensitive substring. An empty term matches everything.
func (c *Client) Matches(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), t) ||
		strings.Contains(strings.ToLower(c.ID), t)
}
