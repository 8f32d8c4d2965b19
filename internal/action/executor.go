// Package action implements the dispatch executor by routing OS input
// actions to installed plugins and transport payloads to the serial port.
package action

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devadutta/gestureflow/internal/dispatch"
	"github.com/devadutta/gestureflow/internal/plugin"
	"github.com/devadutta/gestureflow/internal/transport"
)

// Plugin action names of the input-injection protocol.
const (
	ActionKeyPress    = "key-press"
	ActionClick       = "click"
	ActionRightClick  = "right-click"
	ActionDoubleClick = "double-click"
	ActionScroll      = "scroll"
	ActionPointerMove = "pointer-move"
)

// Executor routes dispatcher actions to their backends. Keyboard, mouse
// and pointer actions go through the plugin subsystem; transport writes go
// to the serial port.
type Executor struct {
	plugins *plugin.Manager
	runner  *plugin.Executor
	port    transport.Port
}

// New creates an Executor. port may be nil when no serial device is
// configured; transport writes then fail with transport.ErrNotOpen.
func New(plugins *plugin.Manager, runner *plugin.Executor, port transport.Port) *Executor {
	return &Executor{
		plugins: plugins,
		runner:  runner,
		port:    port,
	}
}

// Capabilities negotiates what this executor can deliver. Pointer
// injection requires installed plugins for both key presses and pointer
// movement; transport requires an open port. Called once at startup.
func (e *Executor) Capabilities() dispatch.Capabilities {
	_, keyErr := e.plugins.FindByAction(ActionKeyPress)
	_, moveErr := e.plugins.FindByAction(ActionPointerMove)

	return dispatch.Capabilities{
		PointerInjection: keyErr == nil && moveErr == nil,
		Transport:        e.port != nil,
	}
}

type keyParams struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers,omitempty"`
}

type scrollParams struct {
	Amount int `json:"amount"`
}

type moveParams struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// KeyPress sends a key combo to the keyboard plugin. The last "+"-separated
// token is the key, the rest are modifiers.
func (e *Executor) KeyPress(combo string) error {
	key, modifiers := parseCombo(combo)
	if key == "" {
		return fmt.Errorf("empty key combo %q", combo)
	}
	return e.runAction(ActionKeyPress, keyParams{Key: key, Modifiers: modifiers})
}

// MouseClick performs a click through the pointer plugin.
func (e *Executor) MouseClick(kind string) error {
	var action string
	switch kind {
	case dispatch.CmdClick:
		action = ActionClick
	case dispatch.CmdRightClick:
		action = ActionRightClick
	case dispatch.CmdDoubleClick:
		action = ActionDoubleClick
	default:
		return fmt.Errorf("unknown click kind %q", kind)
	}
	return e.runAction(action, nil)
}

// MouseScroll scrolls by the signed amount through the pointer plugin.
func (e *Executor) MouseScroll(amount int) error {
	return e.runAction(ActionScroll, scrollParams{Amount: amount})
}

// PointerMoveRelative moves the pointer by (dx, dy) pixels through the
// pointer plugin.
func (e *Executor) PointerMoveRelative(dx, dy int) error {
	return e.runAction(ActionPointerMove, moveParams{DX: dx, DY: dy})
}

// TransportWrite sends the payload over the serial port. Write failures
// wrap transport.ErrWriteFailed so the dispatcher can treat them as
// permanent.
func (e *Executor) TransportWrite(payload []byte) error {
	if e.port == nil {
		return transport.ErrNotOpen
	}
	if _, err := e.port.Write(payload); err != nil {
		return fmt.Errorf("%w: %w", transport.ErrWriteFailed, err)
	}
	return nil
}

func (e *Executor) runAction(action string, params any) error {
	p, err := e.plugins.FindByAction(action)
	if err != nil {
		return fmt.Errorf("no plugin provides %q: %w", action, err)
	}

	req := &plugin.Request{Action: action}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("marshal %s params: %w", action, err)
		}
		req.Params = raw
	}

	resp, err := e.runner.Execute(p, req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("plugin %s: %s", p.Manifest.Name, resp.Error)
	}
	return nil
}

// parseCombo splits "cmd+shift+tab" into its key and modifiers. Blank
// tokens are dropped.
func parseCombo(combo string) (key string, modifiers []string) {
	var parts []string
	for _, part := range strings.Split(combo, "+") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return parts[len(parts)-1], parts[:len(parts)-1]
}
