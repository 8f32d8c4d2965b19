package config

import (
	"fmt"
	"log"
	"strconv"

	"github.com/devadutta/gestureflow/internal/dispatch"
	"github.com/devadutta/gestureflow/internal/gesture"
	"github.com/devadutta/gestureflow/internal/store"
)

// Setting keys accepted in the settings table.
const (
	KeyDebounceMs     = "debounce_ms"
	KeyPointerGesture = "pointer_gesture"
	KeySensitivity    = "pointer_sensitivity"
	KeyScreenWidth    = "screen_width"
	KeyScreenHeight   = "screen_height"
	KeyJitterPx       = "pointer_jitter_px"
	KeyExitOnNone     = "pointer_exit_on_none"
	KeyExitOnBound    = "pointer_exit_on_bound"
)

// Threshold override names accepted in the thresholds table.
const (
	ThresholdExtendFactor       = "extend_factor"
	ThresholdCurlFactor         = "curl_factor"
	ThresholdRelaxedCurlFactor  = "relaxed_curl_factor"
	ThresholdFistMaxTipWrist    = "fist_max_tip_wrist"
	ThresholdPalmThumbAbduction = "palm_thumb_abduction"
	ThresholdThumbsUpYMax       = "thumbs_up_y_max"
	ThresholdThumbsDownYMin     = "thumbs_down_y_min"
)

// ValidSetting reports whether key names a known setting.
func ValidSetting(key string) bool {
	switch key {
	case KeyDebounceMs, KeyPointerGesture, KeySensitivity, KeyScreenWidth,
		KeyScreenHeight, KeyJitterPx, KeyExitOnNone, KeyExitOnBound:
		return true
	}
	return false
}

// ValidThreshold reports whether name names a known threshold.
func ValidThreshold(name string) bool {
	switch name {
	case ThresholdExtendFactor, ThresholdCurlFactor, ThresholdRelaxedCurlFactor,
		ThresholdFistMaxTipWrist, ThresholdPalmThumbAbduction,
		ThresholdThumbsUpYMax, ThresholdThumbsDownYMin:
		return true
	}
	return false
}

// Settings are the persisted dispatcher tunables.
type Settings struct {
	DebounceMs     int
	PointerGesture string
	Sensitivity    float64
	ScreenWidth    int
	ScreenHeight   int
	JitterPx       float64
	ExitOnNone     bool
	ExitOnBound    bool
}

// DefaultSettings returns the defaults used when the store has no
// overrides. The pointer gesture is unset, so pointer mode is off until
// configured.
func DefaultSettings() Settings {
	return Settings{
		DebounceMs:     300,
		PointerGesture: "",
		Sensitivity:    1.5,
		ScreenWidth:    1920,
		ScreenHeight:   1080,
		JitterPx:       1.0,
		ExitOnNone:     true,
		ExitOnBound:    false,
	}
}

// SettingsFrom overlays stored key/value rows on the defaults. Malformed
// or unknown rows are logged and skipped.
func SettingsFrom(raw map[string]string) Settings {
	s := DefaultSettings()
	for key, value := range raw {
		switch key {
		case KeyDebounceMs:
			setInt(key, value, &s.DebounceMs)
		case KeyPointerGesture:
			if value == "" || gesture.Valid(value) {
				s.PointerGesture = value
			} else {
				log.Printf("[config] %s: unknown gesture %q, keeping default", key, value)
			}
		case KeySensitivity:
			setFloat(key, value, &s.Sensitivity)
		case KeyScreenWidth:
			setInt(key, value, &s.ScreenWidth)
		case KeyScreenHeight:
			setInt(key, value, &s.ScreenHeight)
		case KeyJitterPx:
			setFloat(key, value, &s.JitterPx)
		case KeyExitOnNone:
			setBool(key, value, &s.ExitOnNone)
		case KeyExitOnBound:
			setBool(key, value, &s.ExitOnBound)
		default:
			log.Printf("[config] unknown setting %q, ignoring", key)
		}
	}
	return s
}

// ThresholdsFrom overlays stored threshold rows on the classifier
// defaults. Unknown names are logged and skipped.
func ThresholdsFrom(overrides map[string]float64) gesture.Thresholds {
	t := gesture.DefaultThresholds()
	for name, value := range overrides {
		switch name {
		case ThresholdExtendFactor:
			t.ExtendFactor = value
		case ThresholdCurlFactor:
			t.CurlFactor = value
		case ThresholdRelaxedCurlFactor:
			t.RelaxedCurlFactor = value
		case ThresholdFistMaxTipWrist:
			t.FistMaxTipWrist = value
		case ThresholdPalmThumbAbduction:
			t.PalmThumbAbduction = value
		case ThresholdThumbsUpYMax:
			t.ThumbsUpYMax = value
		case ThresholdThumbsDownYMin:
			t.ThumbsDownYMin = value
		default:
			log.Printf("[config] unknown threshold %q, ignoring", name)
		}
	}
	return t
}

// BindingsFrom converts stored binding rows to the dispatch table,
// skipping disabled rows and rows with unknown gestures or kinds.
func BindingsFrom(rows []*store.Binding) map[gesture.Label]dispatch.Binding {
	bindings := make(map[gesture.Label]dispatch.Binding, len(rows))
	for _, row := range rows {
		if !row.Enabled {
			continue
		}
		if !gesture.Valid(row.Gesture) {
			log.Printf("[config] binding %s: unknown gesture %q, skipping", row.ID, row.Gesture)
			continue
		}
		if !dispatch.ValidKind(row.Kind) {
			log.Printf("[config] binding %s: unknown kind %q, skipping", row.ID, row.Kind)
			continue
		}

		bindings[gesture.Label(row.Gesture)] = dispatch.Binding{
			Kind:    dispatch.ActionKind(row.Kind),
			Command: row.Command,
			Amount:  row.Amount,
		}
	}
	return bindings
}

// Profile is the runtime configuration snapshot: settings, classifier
// thresholds and the binding table, loaded once at startup. API edits
// land in the store and apply on the next start.
type Profile struct {
	Settings   Settings
	Thresholds gesture.Thresholds
	Bindings   map[gesture.Label]dispatch.Binding
}

// Load builds a profile from the store, layering stored values over the
// defaults. Malformed rows are never fatal.
func Load(st *store.Store) (*Profile, error) {
	raw, err := st.Settings().All()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	overrides, err := st.Thresholds().All()
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}

	rows, err := st.Bindings().List()
	if err != nil {
		return nil, fmt.Errorf("load bindings: %w", err)
	}

	return &Profile{
		Settings:   SettingsFrom(raw),
		Thresholds: ThresholdsFrom(overrides),
		Bindings:   BindingsFrom(rows),
	}, nil
}

// DispatchConfig assembles the dispatcher configuration from the profile.
func (p *Profile) DispatchConfig() dispatch.Config {
	cfg := dispatch.DefaultConfig()
	cfg.Bindings = p.Bindings
	cfg.DebounceMs = p.Settings.DebounceMs
	cfg.PointerGesture = gesture.Label(p.Settings.PointerGesture)
	cfg.Sensitivity = p.Settings.Sensitivity
	cfg.ScreenWidth = p.Settings.ScreenWidth
	cfg.ScreenHeight = p.Settings.ScreenHeight
	cfg.JitterPx = p.Settings.JitterPx
	cfg.ExitOnNone = p.Settings.ExitOnNone
	cfg.ExitOnBound = p.Settings.ExitOnBound
	return cfg
}

func setInt(key, value string, dst *int) {
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[config] invalid %s %q, keeping default", key, value)
		return
	}
	*dst = n
}

func setFloat(key, value string, dst *float64) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("[config] invalid %s %q, keeping default", key, value)
		return
	}
	*dst = f
}

func setBool(key, value string, dst *bool) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("[config] invalid %s %q, keeping default", key, value)
		return
	}
	*dst = b
}
