// Package api provides HTTP API handlers for pinchflap.
package api

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/pinchflap/internal/store"
)

// SettingsHandler handles HTTP requests for persisted setting overrides.
// Stored values take effect the next time the game starts.
type SettingsHandler struct {
	store    *store.Store
	known    func(key string) bool
	validate func(overrides map[string]string) error
}

// NewSettingsHandler creates a new SettingsHandler. known rejects keys that
// do not name a configuration setting; nil accepts every key. validate is
// given every stored override plus the one being written and rejects the
// write if it errors; nil accepts every value.
func NewSettingsHandler(s *store.Store, known func(key string) bool, validate func(overrides map[string]string) error) *SettingsHandler {
	return &SettingsHandler{store: s, known: known, validate: validate}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/settings or /api/settings/{key}
	key := strings.TrimPrefix(r.URL.Path, "/api/settings")
	key = strings.TrimPrefix(key, "/")

	if key == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, key)
	case http.MethodPut:
		h.put(w, r, key)
	case http.MethodDelete:
		h.delete(w, r, key)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type putSettingRequest struct {
	Value *string `json:"value"`
}

type settingResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}

type listSettingsResponse struct {
	Settings []settingResponse `json:"settings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(st *store.Setting) settingResponse {
	return settingResponse{
		Key:       st.Key,
		Value:     st.Value,
		UpdatedAt: st.UpdatedAt.Format(time.RFC3339),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/settings.
func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	response := listSettingsResponse{
		Settings: make([]settingResponse, 0, len(settings)),
	}
	for _, st := range settings {
		response.Settings = append(response.Settings, toResponse(st))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/settings/{key}.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request, key string) {
	st, err := h.store.Settings().Get(key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Setting not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get setting")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(st))
}

// put handles PUT /api/settings/{key}.
func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request, key string) {
	if h.known != nil && !h.known(key) {
		writeError(w, http.StatusBadRequest, "Unknown setting")
		return
	}

	var req putSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "Value is required")
		return
	}

	if h.validate != nil {
		overrides, err := h.store.Settings().Map()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load settings")
			return
		}
		next := maps.Clone(overrides)
		if next == nil {
			next = make(map[string]string, 1)
		}
		next[key] = *req.Value
		if err := h.validate(next); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid value: "+err.Error())
			return
		}
	}

	if err := h.store.Settings().Set(key, *req.Value); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	st, err := h.store.Settings().Get(key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get setting")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(st))
}

// delete handles DELETE /api/settings/{key}.
func (h *SettingsHandler) delete(w http.ResponseWriter, r *http.Request, key string) {
	if err := h.store.Settings().Delete(key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Setting not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete setting")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
