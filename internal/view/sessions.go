package view

import "sync"

// Sessions holds per-session view state keyed by session ID. Each
// session owns exactly one State; all mutation goes through Dispatch.
type Sessions struct {
	mu     sync.Mutex
	states map[string]State
}

// NewSessions returns an empty session store.
func NewSessions() *Sessions {
	return &Sessions{states: make(map[string]State)}
}

// Get returns the session's current state, creating the initial state
// for sessions not seen before.
func (s *Sessions) Get(sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[sessionID]
	if !ok {
		state = NewState()
		s.states[sessionID] = state
	}
	return state
}

// Dispatch applies an action to the session's state and stores the
// result. On error the stored state is unchanged.
func (s *Sessions) Dispatch(sessionID string, a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[sessionID]
	if !ok {
		state = NewState()
	}
	next, err := Apply(state, a)
	if err != nil {
		return state, err
	}
	s.states[sessionID] = next
	return next, nil
}
