// Package main provides the pointer plugin for macOS.
// It moves and clicks the mouse cursor via cliclick and emulates scrolling
// with page keystrokes.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Config json.RawMessage `json:"config"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// MoveParams defines parameters for the pointer-move action.
type MoveParams struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// ScrollParams defines parameters for the scroll action.
type ScrollParams struct {
	Amount int `json:"amount"`
}

// actionHandler defines a function type for handling specific actions.
type actionHandler func(params json.RawMessage) error

// actionHandlers maps action names to their handler functions.
var actionHandlers = map[string]actionHandler{
	"pointer-move": pointerMove,
	"click":        click,
	"right-click":  rightClick,
	"double-click": doubleClick,
	"scroll":       scroll,
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	// Look up the handler for the action
	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	// Execute the handler
	if err := handler(req.Params); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// runCliclick executes one cliclick command and returns any error.
func runCliclick(command string) error {
	cmd := exec.Command("cliclick", command)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// pointerMove moves the cursor by a relative offset.
func pointerMove(params json.RawMessage) error {
	var p MoveParams
	if err := json.Unmarshal(params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}
	return runCliclick(fmt.Sprintf("m:%+d,%+d", p.DX, p.DY))
}

// click performs a left click at the current cursor position.
func click(json.RawMessage) error {
	return runCliclick("c:.")
}

// rightClick performs a right click at the current cursor position.
func rightClick(json.RawMessage) error {
	return runCliclick("rc:.")
}

// doubleClick performs a double click at the current cursor position.
func doubleClick(json.RawMessage) error {
	return runCliclick("dc:.")
}

// scroll emulates wheel scrolling with page-up/page-down keystrokes, one
// press per 100 units of magnitude, capped at 10.
func scroll(params json.RawMessage) error {
	var p ScrollParams
	if err := json.Unmarshal(params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}
	if p.Amount == 0 {
		return nil
	}

	key := "kp:page-up"
	amount := p.Amount
	if amount < 0 {
		key = "kp:page-down"
		amount = -amount
	}

	presses := amount / 100
	if presses < 1 {
		presses = 1
	}
	if presses > 10 {
		presses = 10
	}

	for i := 0; i < presses; i++ {
		if err := runCliclick(key); err != nil {
			return err
		}
	}
	return nil
}
