package api

import (
	"encoding/json"
	"net/http"

	"github.com/devadutta/gestureflow/internal/config"
	"github.com/devadutta/gestureflow/internal/gesture"
	"github.com/devadutta/gestureflow/internal/store"
)

// ThresholdHandler handles HTTP requests for classifier threshold
// overrides. Like settings, changes apply on the next start.
type ThresholdHandler struct {
	store *store.Store
}

// NewThresholdHandler creates a new ThresholdHandler with the given store.
func NewThresholdHandler(s *store.Store) *ThresholdHandler {
	return &ThresholdHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
func (h *ThresholdHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type thresholdsPayload struct {
	Thresholds map[string]float64 `json:"thresholds"`
}

func thresholdsMap(t gesture.Thresholds) map[string]float64 {
	return map[string]float64{
		config.ThresholdExtendFactor:       t.ExtendFactor,
		config.ThresholdCurlFactor:         t.CurlFactor,
		config.ThresholdRelaxedCurlFactor:  t.RelaxedCurlFactor,
		config.ThresholdFistMaxTipWrist:    t.FistMaxTipWrist,
		config.ThresholdPalmThumbAbduction: t.PalmThumbAbduction,
		config.ThresholdThumbsUpYMax:       t.ThumbsUpYMax,
		config.ThresholdThumbsDownYMin:     t.ThumbsDownYMin,
	}
}

// get handles GET /api/thresholds and returns the effective thresholds.
func (h *ThresholdHandler) get(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.store.Thresholds().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load thresholds")
		return
	}

	writeJSON(w, http.StatusOK, thresholdsPayload{
		Thresholds: thresholdsMap(config.ThresholdsFrom(overrides)),
	})
}

// update handles PUT /api/thresholds. Only the named thresholds change.
func (h *ThresholdHandler) update(w http.ResponseWriter, r *http.Request) {
	var req thresholdsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	for name := range req.Thresholds {
		if !config.ValidThreshold(name) {
			writeError(w, http.StatusBadRequest, "Unknown threshold: "+name)
			return
		}
	}

	for name, value := range req.Thresholds {
		if err := h.store.Thresholds().Set(name, value); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save thresholds")
			return
		}
	}

	h.get(w, r)
}
