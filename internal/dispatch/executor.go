// Package dispatch turns classified gesture labels into debounced action
// executions and drives the pointer-control mode.
package dispatch

// Executor is the external action surface the dispatcher drives. The
// concrete implementation decides how key presses and pointer events reach
// the operating system and where transport payloads go.
type Executor interface {
	// KeyPress sends a key combo such as "cmd+shift+tab".
	KeyPress(combo string) error

	// MouseClick performs a click; kind is one of CmdClick, CmdRightClick
	// or CmdDoubleClick.
	MouseClick(kind string) error

	// MouseScroll scrolls by the signed amount, positive up.
	MouseScroll(amount int) error

	// PointerMoveRelative moves the pointer by (dx, dy) pixels.
	PointerMoveRelative(dx, dy int) error

	// TransportWrite sends a raw payload over the byte transport.
	TransportWrite(payload []byte) error
}

// Capabilities is the result of startup capability negotiation. The
// dispatcher consults it instead of probing the environment per frame.
type Capabilities struct {
	// PointerInjection reports whether OS input injection (keyboard,
	// mouse, pointer movement) is available.
	PointerInjection bool

	// Transport reports whether the byte transport is open.
	Transport bool
}

// ActionKind is the class of action a binding maps to.
type ActionKind string

const (
	KindKeyboard ActionKind = "keyboard"
	KindMouse    ActionKind = "mouse"
	KindSerial   ActionKind = "serial"
)

// ValidKind reports whether s names a known action kind.
func ValidKind(s string) bool {
	switch ActionKind(s) {
	case KindKeyboard, KindMouse, KindSerial:
		return true
	}
	return false
}

// Mouse binding commands.
const (
	CmdClick       = "click"
	CmdRightClick  = "right_click"
	CmdDoubleClick = "double_click"
	CmdScrollUp    = "scroll_up"
	CmdScrollDown  = "scroll_down"
)

// DefaultScrollAmount is the scroll magnitude used when a binding does not
// set one.
const DefaultScrollAmount = 100
