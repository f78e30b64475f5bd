package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/ayusman/pinchflap/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func onlyKeys(keys ...string) func(string) bool {
	return func(key string) bool {
		for _, k := range keys {
			if k == key {
				return true
			}
		}
		return false
	}
}

func TestSettingsHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, nil, nil)

	if err := s.Settings().Set("log.level", "debug"); err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var response listSettingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Settings) != 1 {
		t.Fatalf("expected 1 setting, got %d", len(response.Settings))
	}
	if response.Settings[0].Key != "log.level" || response.Settings[0].Value != "debug" {
		t.Errorf("unexpected setting %+v", response.Settings[0])
	}
}

func TestSettingsHandler_ListEmpty(t *testing.T) {
	handler := NewSettingsHandler(newTestStore(t), nil, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	// An empty list encodes as [] rather than null
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"settings":[]`)) {
		t.Errorf("expected empty settings array, got %s", rec.Body.String())
	}
}

func TestSettingsHandler_Put(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, onlyKeys("gesture.pinchThreshold"), nil)

	body := bytes.NewBufferString(`{"value":"30"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/settings/gesture.pinchThreshold", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var response settingResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Value != "30" {
		t.Errorf("expected value 30, got %s", response.Value)
	}

	stored, err := s.Settings().Get("gesture.pinchThreshold")
	if err != nil {
		t.Fatalf("setting not stored: %v", err)
	}
	if stored.Value != "30" {
		t.Errorf("expected stored value 30, got %s", stored.Value)
	}
}

func TestSettingsHandler_PutRejects(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "unknown key", path: "/api/settings/bogus", body: `{"value":"1"}`},
		{name: "malformed body", path: "/api/settings/log.level", body: `{"value":`},
		{name: "missing value", path: "/api/settings/log.level", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSettingsHandler(newTestStore(t), onlyKeys("log.level"), nil)

			req := httptest.NewRequest(http.MethodPut, tt.path, bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestSettingsHandler_PutInvalidValue(t *testing.T) {
	s := newTestStore(t)
	if err := s.Settings().Set("log.level", "debug"); err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}

	var seen map[string]string
	validate := func(overrides map[string]string) error {
		seen = overrides
		n, err := strconv.Atoi(overrides["game.world.width"])
		if err != nil {
			return err
		}
		if n <= 0 {
			return errors.New("width must be positive")
		}
		return nil
	}
	handler := NewSettingsHandler(s, nil, validate)

	for _, value := range []string{"abc", "0"} {
		t.Run(value, func(t *testing.T) {
			body := bytes.NewBufferString(`{"value":"` + value + `"}`)
			req := httptest.NewRequest(http.MethodPut, "/api/settings/game.world.width", body)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
			var response errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if !strings.HasPrefix(response.Error, "Invalid value") {
				t.Errorf("unexpected error %q", response.Error)
			}
			if _, err := s.Settings().Get("game.world.width"); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("rejected value was stored: %v", err)
			}
		})
	}

	if seen["log.level"] != "debug" {
		t.Errorf("validate did not see stored overrides: %v", seen)
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/settings/game.world.width", bytes.NewBufferString(`{"value":"600"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
		}
		stored, err := s.Settings().Get("game.world.width")
		if err != nil || stored.Value != "600" {
			t.Errorf("stored = %+v, %v", stored, err)
		}
	})
}

func TestSettingsHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, nil, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings/audio.volume", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d for missing setting, got %d", http.StatusNotFound, rec.Code)
	}

	if err := s.Settings().Set("audio.volume", "0.5"); err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings/audio.volume", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestSettingsHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, nil, nil)

	if err := s.Settings().Set("tray.enabled", "true"); err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/settings/tray.enabled", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/settings/tray.enabled", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d on second delete, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	handler := NewSettingsHandler(newTestStore(t), nil, nil)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/settings"},
		{http.MethodDelete, "/api/settings"},
		{http.MethodPost, "/api/settings/log.level"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected status %d, got %d", tt.method, tt.path, http.StatusMethodNotAllowed, rec.Code)
		}
	}
}
