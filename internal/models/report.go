// Package models defines data structures for Ivy Portal
package models

import (
	"encoding/gob"
	"time"
)

func init() {
	gob.Register(StoredReport{})
	gob.Register(FinalState{})
}

// Report is the flat report contract returned by POST /generate-report:
// the compiled markdown plus the three persona commentaries.
type Report struct {
	FinalReport        string `json:"final_report"`
	BuffettAnalysis    string `json:"buffett_analysis"`
	GrahamAnalysis     string `json:"graham_analysis"`
	CathieWoodAnalysis string `json:"cathie_wood_analysis"`
}

// PricePoint is one bar of the per-ticker price series in market data.
type PricePoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
}

// MonteCarloStats summarises the engine's 1-year portfolio simulation.
type MonteCarloStats struct {
	SimulationPaths int     `json:"simulation_paths"`
	ProjectionDays  int     `json:"projection_days"`
	InitialValue    float64 `json:"initial_value"`
	ProbOfGain1Yr   float64 `json:"prob_of_gain_1yr"`
	MedianOutcome   float64 `json:"median_outcome"`
	Worst5Pct       float64 `json:"worst_5pct"`
	Best5Pct        float64 `json:"best_5pct"`
}

// RiskMetrics holds the engine's quantitative risk outputs. All values
// are consumed as opaque numbers.
type RiskMetrics struct {
	CVaR95       float64         `json:"cvar_95"`
	CVaR99       float64         `json:"cvar_99"`
	MaxDrawdown  float64         `json:"max_drawdown"`
	SharpeRatio  float64         `json:"sharpe_ratio"`
	SortinoRatio float64         `json:"sortino_ratio"`
	MonteCarlo   MonteCarloStats `json:"monte_carlo"`
}

// FinalState is the rich contract returned by POST /api/generate-report:
// the full pipeline state. This is a distinct contract from Report and
// the two are never merged.
type FinalState struct {
	ClientID             string                  `json:"client_id"`
	PortfolioAssets      []map[string]any        `json:"portfolio_assets"`
	MarketData           map[string][]PricePoint `json:"market_data"`
	RiskMetrics          RiskMetrics             `json:"risk_metrics"`
	FinalReport          string                  `json:"final_report"`
	ComplianceStatus     string                  `json:"compliance_status"`
	ClientProfile        map[string]any          `json:"client_profile"`
	MacroSummary         string                  `json:"macro_summary,omitempty"`
	BuffettAnalysis      string                  `json:"buffett_analysis"`
	GrahamAnalysis       string                  `json:"graham_analysis"`
	CathieWoodAnalysis   string                  `json:"cathie_wood_analysis"`
	GoalPlanningAnalysis string                  `json:"goal_planning_analysis"`
}

// StoredReport is the latest generated report persisted per client
type StoredReport struct {
	ClientID    string     `json:"client_id" badgerhold:"key"`
	ClientName  string     `json:"client_name"`
	GeneratedAt time.Time  `json:"generated_at" badgerhold:"index"`
	State       FinalState `json:"state"`
}
