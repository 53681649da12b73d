// Package view models the dashboard's serializable view state and its
// pure transition function.
package view

import "fmt"

// Tab names the dashboard's views.
type Tab string

// The finite set of dashboard tabs.
const (
	TabOverview  Tab = "overview"
	TabAnalytics Tab = "analytics"
	TabReport    Tab = "report"
	TabMacro     Tab = "macro"
	TabSystem    Tab = "system"
)

// TopClientCount is how many clients the truncated list shows.
const TopClientCount = 5

// Modal is the detail modal, orthogonal to the active tab.
type Modal struct {
	Open     bool   `json:"open"`
	ClientID string `json:"client_id,omitempty"`
}

// State is the complete dashboard view state. It is serializable and
// owned by one controller; transitions go through Apply.
type State struct {
	ActiveTab     Tab    `json:"active_tab"`
	Modal         Modal  `json:"modal"`
	SearchVisible bool   `json:"search_visible"`
	SearchTerm    string `json:"search_term"`
	ShowAll       bool   `json:"show_all"`

	// HasReport guards the report tab: it becomes reachable only once
	// a report exists.
	HasReport bool `json:"has_report"`
}

// NewState returns the initial view state.
func NewState() State {
	return State{ActiveTab: TabOverview}
}

// Action kinds accepted by Apply.
const (
	ActionSelectTab     = "select_tab"
	ActionOpenModal     = "open_modal"
	ActionCloseModal    = "close_modal"
	ActionToggleSearch  = "toggle_search"
	ActionSetSearchTerm = "set_search_term"
	ActionToggleShowAll = "toggle_show_all"
	ActionReportReady   = "report_ready"
)

// Action is one view-state transition request.
type Action struct {
	Kind     string `json:"kind"`
	Tab      Tab    `json:"tab,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	Term     string `json:"term,omitempty"`
}

// validTabs is the closed set of reachable views.
var validTabs = map[Tab]bool{
	TabOverview:  true,
	TabAnalytics: true,
	TabReport:    true,
	TabMacro:     true,
	TabSystem:    true,
}

// Apply is the pure transition function from (state, action) to the new
// state. Unknown actions and invalid tabs return an error and leave the
// state unchanged. Tab selection is unconditional except for the report
// tab, which is guarded on report existence.
func Apply(s State, a Action) (State, error) {
	switch a.Kind {
	case ActionSelectTab:
		if !validTabs[a.Tab] {
			return s, fmt.Errorf("unknown tab: %q", a.Tab)
		}
		if a.Tab == TabReport && !s.HasReport {
			return s, fmt.Errorf("report view unavailable: no report generated yet")
		}
		s.ActiveTab = a.Tab
		return s, nil

	case ActionOpenModal:
		s.Modal = Modal{Open: true, ClientID: a.ClientID}
		return s, nil

	case ActionCloseModal:
		s.Modal = Modal{}
		return s, nil

	case ActionToggleSearch:
		s.SearchVisible = !s.SearchVisible
		if !s.SearchVisible {
			s.SearchTerm = ""
		}
		return s, nil

	case ActionSetSearchTerm:
		s.SearchTerm = a.Term
		return s, nil

	case ActionToggleShowAll:
		s.ShowAll = !s.ShowAll
		return s, nil

	case ActionReportReady:
		s.HasReport = true
		return s, nil

	default:
		return s, fmt.Errorf("unknown action: %q", a.Kind)
	}
}

// VisibleCount returns how many of n filtered clients the list shows:
// all of them when showAll is set, otherwise at most TopClientCount.
func VisibleCount(n int, showAll bool) int {
	if showAll || n < TopClientCount {
		return n
	}
	return TopClientCount
}
