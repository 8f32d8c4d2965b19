package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/devadutta/gestureflow/internal/config"
	"github.com/devadutta/gestureflow/internal/gesture"
	"github.com/devadutta/gestureflow/internal/store"
)

// SettingsHandler handles HTTP requests for runtime settings. Changes are
// persisted immediately but only picked up on the next start.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type settingsResponse struct {
	DebounceMs     int     `json:"debounce_ms"`
	PointerGesture string  `json:"pointer_gesture"`
	Sensitivity    float64 `json:"pointer_sensitivity"`
	ScreenWidth    int     `json:"screen_width"`
	ScreenHeight   int     `json:"screen_height"`
	JitterPx       float64 `json:"pointer_jitter_px"`
	ExitOnNone     bool    `json:"pointer_exit_on_none"`
	ExitOnBound    bool    `json:"pointer_exit_on_bound"`
}

type updateSettingsRequest struct {
	DebounceMs     *int     `json:"debounce_ms"`
	PointerGesture *string  `json:"pointer_gesture"`
	Sensitivity    *float64 `json:"pointer_sensitivity"`
	ScreenWidth    *int     `json:"screen_width"`
	ScreenHeight   *int     `json:"screen_height"`
	JitterPx       *float64 `json:"pointer_jitter_px"`
	ExitOnNone     *bool    `json:"pointer_exit_on_none"`
	ExitOnBound    *bool    `json:"pointer_exit_on_bound"`
}

func toSettingsResponse(s config.Settings) settingsResponse {
	return settingsResponse{
		DebounceMs:     s.DebounceMs,
		PointerGesture: s.PointerGesture,
		Sensitivity:    s.Sensitivity,
		ScreenWidth:    s.ScreenWidth,
		ScreenHeight:   s.ScreenHeight,
		JitterPx:       s.JitterPx,
		ExitOnNone:     s.ExitOnNone,
		ExitOnBound:    s.ExitOnBound,
	}
}

// get handles GET /api/settings and returns the effective settings.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	raw, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(config.SettingsFrom(raw)))
}

// update handles PUT /api/settings. Absent fields keep their stored value.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.PointerGesture != nil && *req.PointerGesture != "" && !gesture.Valid(*req.PointerGesture) {
		writeError(w, http.StatusBadRequest, "Unknown pointer gesture")
		return
	}
	if req.DebounceMs != nil && *req.DebounceMs < 0 {
		writeError(w, http.StatusBadRequest, "debounce_ms must not be negative")
		return
	}

	updates := map[string]string{}
	if req.DebounceMs != nil {
		updates[config.KeyDebounceMs] = strconv.Itoa(*req.DebounceMs)
	}
	if req.PointerGesture != nil {
		updates[config.KeyPointerGesture] = *req.PointerGesture
	}
	if req.Sensitivity != nil {
		updates[config.KeySensitivity] = formatFloat(*req.Sensitivity)
	}
	if req.ScreenWidth != nil {
		updates[config.KeyScreenWidth] = strconv.Itoa(*req.ScreenWidth)
	}
	if req.ScreenHeight != nil {
		updates[config.KeyScreenHeight] = strconv.Itoa(*req.ScreenHeight)
	}
	if req.JitterPx != nil {
		updates[config.KeyJitterPx] = formatFloat(*req.JitterPx)
	}
	if req.ExitOnNone != nil {
		updates[config.KeyExitOnNone] = strconv.FormatBool(*req.ExitOnNone)
	}
	if req.ExitOnBound != nil {
		updates[config.KeyExitOnBound] = strconv.FormatBool(*req.ExitOnBound)
	}

	for key, value := range updates {
		if err := h.store.Settings().Set(key, value); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}

	h.get(w, r)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
