package dispatch

import "github.com/devadutta/gestureflow/internal/gesture"

// Binding maps a gesture label to one action.
type Binding struct {
	Kind    ActionKind
	Command string

	// Amount is the scroll magnitude for scroll commands; zero means
	// DefaultScrollAmount.
	Amount int
}

// Config holds the dispatcher's immutable runtime configuration. It is
// assembled once at startup; edits through the API apply on the next start.
type Config struct {
	// Bindings maps labels to actions. Labels without a binding dispatch
	// nothing.
	Bindings map[gesture.Label]Binding

	// DebounceMs is the per-gesture minimum quiet interval. A gesture
	// fires again only when strictly more than this many milliseconds
	// have passed since its last dispatch.
	DebounceMs int

	// PointerGesture enters pointer-control mode when classified. Empty
	// disables the mode.
	PointerGesture gesture.Label

	// Sensitivity scales index-tip displacement to pointer pixels.
	Sensitivity float64

	// ScreenWidth and ScreenHeight map normalized tip coordinates to the
	// pointer coordinate space.
	ScreenWidth  int
	ScreenHeight int

	// JitterPx suppresses pointer moves at or below this magnitude on
	// both axes.
	JitterPx float64

	// ExitOnNone leaves pointer mode when a present hand classifies as
	// NONE. ExitOnBound leaves it when another bound gesture is seen.
	ExitOnNone  bool
	ExitOnBound bool
}

// DefaultConfig returns a Config with tuned default values and no bindings.
func DefaultConfig() Config {
	return Config{
		Bindings:     make(map[gesture.Label]Binding),
		DebounceMs:   300,
		Sensitivity:  1.5,
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		JitterPx:     1.0,
		ExitOnNone:   true,
		ExitOnBound:  false,
	}
}
