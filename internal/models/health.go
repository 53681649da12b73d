// Package models defines data structures for Ivy Portal
package models

// Defaults shown when the engine health payload omits a field.
const (
	DefaultEngineStatus = "Offline"
	DefaultCRMStatus    = "Disconnected"
	DefaultLLMStatus    = "Offline"
)

// SystemStatus is the engine health payload. All component fields are
// optional upstream; ApplyDefaults fills the gaps portal-side.
type SystemStatus struct {
	Status string `json:"status"`
	Engine string `json:"engine"`
	CRM    string `json:"crm"`
	LLM    string `json:"llm"`
}

// ApplyDefaults substitutes the canned component statuses for any field
// the engine left empty.
func (s *SystemStatus) ApplyDefaults() {
	if s.Engine == "" {
		s.Engine = DefaultEngineStatus
	}
	if s.CRM == "" {
		s.CRM = DefaultCRMStatus
	}
	if s.LLM == "" {
		s.LLM = DefaultLLMStatus
	}
}
