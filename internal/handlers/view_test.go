package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/view"
)

func TestViewHandler_GetMintsSession(t *testing.T) {
	h := NewViewHandler(common.NewSilentLogger(), view.NewSessions())

	req := httptest.NewRequest("GET", "/api/view", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == sessionCookie && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected session cookie to be set")
	}

	var state view.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if state.ActiveTab != view.TabOverview {
		t.Errorf("expected initial overview tab, got %q", state.ActiveTab)
	}
}

func TestViewHandler_PutAppliesAction(t *testing.T) {
	h := NewViewHandler(common.NewSilentLogger(), view.NewSessions())

	req := httptest.NewRequest("PUT", "/api/view", strings.NewReader(`{"kind":"select_tab","tab":"macro"}`))
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-1"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var state view.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if state.ActiveTab != view.TabMacro {
		t.Errorf("expected macro tab, got %q", state.ActiveTab)
	}

	// State persists for the same session
	req = httptest.NewRequest("GET", "/api/view", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-1"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	json.Unmarshal(rec.Body.Bytes(), &state)
	if state.ActiveTab != view.TabMacro {
		t.Errorf("state not persisted across requests: %q", state.ActiveTab)
	}
}

func TestViewHandler_SessionsAreIsolated(t *testing.T) {
	h := NewViewHandler(common.NewSilentLogger(), view.NewSessions())

	req := httptest.NewRequest("PUT", "/api/view", strings.NewReader(`{"kind":"toggle_show_all"}`))
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-a"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	req = httptest.NewRequest("GET", "/api/view", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-b"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var state view.State
	json.Unmarshal(rec.Body.Bytes(), &state)
	if state.ShowAll {
		t.Error("session-b must not see session-a's toggle")
	}
}

func TestViewHandler_GuardedTabRejected(t *testing.T) {
	h := NewViewHandler(common.NewSilentLogger(), view.NewSessions())

	req := httptest.NewRequest("PUT", "/api/view", strings.NewReader(`{"kind":"select_tab","tab":"report"}`))
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-1"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for guarded report tab, got %d", rec.Code)
	}

	var body struct {
		Error string     `json:"error"`
		State view.State `json:"state"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.Error == "" {
		t.Error("expected error message")
	}
	if body.State.ActiveTab != view.TabOverview {
		t.Errorf("state must be unchanged, got tab %q", body.State.ActiveTab)
	}
}

func TestViewHandler_InvalidBody(t *testing.T) {
	h := NewViewHandler(common.NewSilentLogger(), view.NewSessions())

	req := httptest.NewRequest("PUT", "/api/view", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid body, got %d", rec.Code)
	}
}

func TestViewHandler_MethodNotAllowed(t *testing.T) {
	h := NewViewHandler(common.NewSilentLogger(), view.NewSessions())

	req := httptest.NewRequest("DELETE", "/api/view", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
