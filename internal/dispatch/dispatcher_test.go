package dispatch

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/devadutta/gestureflow/internal/detector"
	"github.com/devadutta/gestureflow/internal/gesture"
	"github.com/devadutta/gestureflow/internal/transport"
)

var allCaps = Capabilities{PointerInjection: true, Transport: true}

// tipFrame returns a present frame with the index tip at (x, y). Pointer
// tracking reads nothing else.
func tipFrame(x, y float64) detector.Frame {
	var p [detector.NumLandmarks]detector.Point3D
	p[detector.IndexTip] = detector.Point3D{X: x, Y: y}
	return detector.NewFrame(p)
}

func TestDispatcher_FiresBoundAction(t *testing.T) {
	exec := &MockExecutor{}
	cfg := DefaultConfig()
	cfg.Bindings[gesture.Fist] = Binding{Kind: KindKeyboard, Command: "cmd+space"}
	d := New(cfg, exec, allCaps)

	if err := d.Dispatch(detector.FistFrame(), gesture.Fist); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(exec.KeyPresses) != 1 || exec.KeyPresses[0] != "cmd+space" {
		t.Errorf("KeyPresses = %v, want [cmd+space]", exec.KeyPresses)
	}
}

func TestDispatcher_UnboundLabelIsNoop(t *testing.T) {
	exec := &MockExecutor{}
	d := New(DefaultConfig(), exec, allCaps)

	if err := d.Dispatch(detector.VictoryFrame(), gesture.Victory); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(exec.KeyPresses)+len(exec.Clicks)+len(exec.Scrolls)+len(exec.Writes) != 0 {
		t.Error("unbound label must not reach the executor")
	}
}

func TestDispatcher_Debounce(t *testing.T) {
	t.Run("rapid repeats collapse to one action", func(t *testing.T) {
		exec := &MockExecutor{}
		cfg := DefaultConfig()
		cfg.Bindings[gesture.Fist] = Binding{Kind: KindKeyboard, Command: "cmd+space"}
		d := New(cfg, exec, allCaps)

		now := time.Unix(1700000000, 0)
		d.now = func() time.Time { return now }

		// Three fist frames 100ms apart against a 300ms window.
		for i := 0; i < 3; i++ {
			if err := d.Dispatch(detector.FistFrame(), gesture.Fist); err != nil {
				t.Fatalf("Dispatch failed: %v", err)
			}
			now = now.Add(100 * time.Millisecond)
		}

		if len(exec.KeyPresses) != 1 {
			t.Errorf("got %d key presses, want 1", len(exec.KeyPresses))
		}
	})

	t.Run("window boundary is strict", func(t *testing.T) {
		exec := &MockExecutor{}
		cfg := DefaultConfig()
		cfg.Bindings[gesture.Fist] = Binding{Kind: KindKeyboard, Command: "cmd+space"}
		d := New(cfg, exec, allCaps)

		now := time.Unix(1700000000, 0)
		d.now = func() time.Time { return now }

		d.Dispatch(detector.FistFrame(), gesture.Fist)

		// Exactly DebounceMs later is still inside the window.
		now = now.Add(300 * time.Millisecond)
		d.Dispatch(detector.FistFrame(), gesture.Fist)
		if len(exec.KeyPresses) != 1 {
			t.Fatalf("got %d key presses at the boundary, want 1", len(exec.KeyPresses))
		}

		// One more millisecond opens it.
		now = now.Add(time.Millisecond)
		d.Dispatch(detector.FistFrame(), gesture.Fist)
		if len(exec.KeyPresses) != 2 {
			t.Errorf("got %d key presses past the boundary, want 2", len(exec.KeyPresses))
		}
	})

	t.Run("windows are per gesture", func(t *testing.T) {
		exec := &MockExecutor{}
		cfg := DefaultConfig()
		cfg.Bindings[gesture.Fist] = Binding{Kind: KindKeyboard, Command: "cmd+space"}
		cfg.Bindings[gesture.Victory] = Binding{Kind: KindKeyboard, Command: "cmd+tab"}
		d := New(cfg, exec, allCaps)

		now := time.Unix(1700000000, 0)
		d.now = func() time.Time { return now }

		d.Dispatch(detector.FistFrame(), gesture.Fist)
		now = now.Add(10 * time.Millisecond)
		d.Dispatch(detector.VictoryFrame(), gesture.Victory)

		if len(exec.KeyPresses) != 2 {
			t.Errorf("got %d key presses, want 2", len(exec.KeyPresses))
		}
	})
}

func TestDispatcher_TransientErrorRetries(t *testing.T) {
	exec := &MockExecutor{KeyErr: errors.New("osascript: exit status 1")}
	cfg := DefaultConfig()
	cfg.Bindings[gesture.Fist] = Binding{Kind: KindKeyboard, Command: "cmd+space"}
	d := New(cfg, exec, allCaps)

	now := time.Unix(1700000000, 0)
	d.now = func() time.Time { return now }

	if err := d.Dispatch(detector.FistFrame(), gesture.Fist); err == nil {
		t.Fatal("expected an error from the failing executor")
	}

	// The failed fire must not hold the debounce window: the next frame
	// retries immediately once the executor recovers.
	exec.KeyErr = nil
	now = now.Add(time.Millisecond)
	if err := d.Dispatch(detector.FistFrame(), gesture.Fist); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(exec.KeyPresses) != 1 {
		t.Errorf("got %d key presses after retry, want 1", len(exec.KeyPresses))
	}
}

func TestDispatcher_WriteFailureDisablesSerial(t *testing.T) {
	exec := &MockExecutor{
		WriteErr:       fmt.Errorf("write to port: %w", transport.ErrWriteFailed),
		WriteFailAfter: 1,
	}
	cfg := DefaultConfig()
	cfg.Bindings[gesture.Fist] = Binding{Kind: KindSerial, Command: "led_on"}
	cfg.Bindings[gesture.Victory] = Binding{Kind: KindKeyboard, Command: "cmd+tab"}
	d := New(cfg, exec, allCaps)

	now := time.Unix(1700000000, 0)
	d.now = func() time.Time { return now }

	// First write goes through, newline-terminated.
	if err := d.Dispatch(detector.FistFrame(), gesture.Fist); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(exec.Writes) != 1 || string(exec.Writes[0]) != "led_on\n" {
		t.Fatalf("Writes = %q, want [led_on\\n]", exec.Writes)
	}

	// Second write fails with the transport sentinel and disables the kind.
	now = now.Add(400 * time.Millisecond)
	err := d.Dispatch(detector.FistFrame(), gesture.Fist)
	if !errors.Is(err, transport.ErrWriteFailed) {
		t.Fatalf("Dispatch error = %v, want ErrWriteFailed", err)
	}

	// Further serial dispatches are silently skipped.
	now = now.Add(400 * time.Millisecond)
	if err := d.Dispatch(detector.FistFrame(), gesture.Fist); err != nil {
		t.Fatalf("disabled dispatch returned error: %v", err)
	}
	if len(exec.Writes) != 1 {
		t.Errorf("got %d writes after disable, want 1", len(exec.Writes))
	}

	// Other kinds are unaffected.
	if err := d.Dispatch(detector.VictoryFrame(), gesture.Victory); err != nil {
		t.Fatalf("keyboard dispatch failed: %v", err)
	}
	if len(exec.KeyPresses) != 1 {
		t.Errorf("got %d key presses, want 1", len(exec.KeyPresses))
	}
}

func TestDispatcher_CapabilityGating(t *testing.T) {
	t.Run("keyboard needs pointer injection", func(t *testing.T) {
		exec := &MockExecutor{}
		cfg := DefaultConfig()
		cfg.Bindings[gesture.Fist] = Binding{Kind: KindKeyboard, Command: "cmd+space"}
		d := New(cfg, exec, Capabilities{Transport: true})

		now := time.Unix(1700000000, 0)
		d.now = func() time.Time { return now }

		if err := d.Dispatch(detector.FistFrame(), gesture.Fist); err != nil {
			t.Fatalf("Dispatch failed: %v", err)
		}
		if len(exec.KeyPresses) != 0 {
			t.Fatal("key press fired without the capability")
		}

		// The skip must not touch the debounce window.
		d.caps.PointerInjection = true
		now = now.Add(time.Millisecond)
		if err := d.Dispatch(detector.FistFrame(), gesture.Fist); err != nil {
			t.Fatalf("Dispatch failed: %v", err)
		}
		if len(exec.KeyPresses) != 1 {
			t.Errorf("got %d key presses once capable, want 1", len(exec.KeyPresses))
		}
	})

	t.Run("serial needs the transport", func(t *testing.T) {
		exec := &MockExecutor{}
		cfg := DefaultConfig()
		cfg.Bindings[gesture.Fist] = Binding{Kind: KindSerial, Command: "led_on"}
		d := New(cfg, exec, Capabilities{PointerInjection: true})

		if err := d.Dispatch(detector.FistFrame(), gesture.Fist); err != nil {
			t.Fatalf("Dispatch failed: %v", err)
		}
		if len(exec.Writes) != 0 {
			t.Error("transport write fired without the capability")
		}
	})
}

func TestDispatcher_MouseCommands(t *testing.T) {
	tests := []struct {
		name    string
		binding Binding
		check   func(t *testing.T, exec *MockExecutor)
	}{
		{
			name:    "click",
			binding: Binding{Kind: KindMouse, Command: CmdClick},
			check: func(t *testing.T, exec *MockExecutor) {
				if len(exec.Clicks) != 1 || exec.Clicks[0] != CmdClick {
					t.Errorf("Clicks = %v, want [click]", exec.Clicks)
				}
			},
		},
		{
			name:    "scroll up uses the default amount",
			binding: Binding{Kind: KindMouse, Command: CmdScrollUp},
			check: func(t *testing.T, exec *MockExecutor) {
				if len(exec.Scrolls) != 1 || exec.Scrolls[0] != DefaultScrollAmount {
					t.Errorf("Scrolls = %v, want [%d]", exec.Scrolls, DefaultScrollAmount)
				}
			},
		},
		{
			name:    "scroll down negates the amount",
			binding: Binding{Kind: KindMouse, Command: CmdScrollDown, Amount: 40},
			check: func(t *testing.T, exec *MockExecutor) {
				if len(exec.Scrolls) != 1 || exec.Scrolls[0] != -40 {
					t.Errorf("Scrolls = %v, want [-40]", exec.Scrolls)
				}
			},
		},
		{
			name:    "unknown command is skipped",
			binding: Binding{Kind: KindMouse, Command: "drag"},
			check: func(t *testing.T, exec *MockExecutor) {
				if len(exec.Clicks)+len(exec.Scrolls) != 0 {
					t.Error("unknown mouse command must not reach the executor")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &MockExecutor{}
			cfg := DefaultConfig()
			cfg.Bindings[gesture.Fist] = tt.binding
			d := New(cfg, exec, allCaps)

			if err := d.Dispatch(detector.FistFrame(), gesture.Fist); err != nil {
				t.Fatalf("Dispatch failed: %v", err)
			}
			tt.check(t, exec)
		})
	}
}

func TestPointerMode_EnterAndMove(t *testing.T) {
	exec := &MockExecutor{}
	cfg := DefaultConfig()
	cfg.PointerGesture = gesture.OpenPalm
	// The activation gesture also carries a binding; entering the mode
	// must not fire it.
	cfg.Bindings[gesture.OpenPalm] = Binding{Kind: KindKeyboard, Command: "cmd+a"}
	d := New(cfg, exec, allCaps)

	if err := d.Dispatch(detector.OpenPalmFrame(), gesture.OpenPalm); err != nil {
		t.Fatalf("activation failed: %v", err)
	}
	if !d.PointerActive() {
		t.Fatal("pointer mode should be active")
	}
	if len(exec.KeyPresses) != 0 {
		t.Fatal("activation frame must not fire the gesture's binding")
	}

	// First tracked frame only establishes the reference.
	if err := d.Dispatch(tipFrame(0.50, 0.50), gesture.PointingIndex); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(exec.Moves) != 0 {
		t.Fatal("reference frame must not move the pointer")
	}

	// 0.02 of screen width at 1920px and 1.5 sensitivity is 58px.
	if err := d.Dispatch(tipFrame(0.52, 0.50), gesture.PointingIndex); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(exec.Moves) != 1 {
		t.Fatalf("got %d moves, want 1", len(exec.Moves))
	}
	if got := exec.Moves[0]; got.DX != 58 || got.DY != 0 {
		t.Errorf("move = (%d, %d), want (58, 0)", got.DX, got.DY)
	}
}

func TestPointerMode_VerticalAxisFlips(t *testing.T) {
	exec := &MockExecutor{}
	cfg := DefaultConfig()
	cfg.PointerGesture = gesture.OpenPalm
	d := New(cfg, exec, allCaps)

	d.Dispatch(detector.OpenPalmFrame(), gesture.OpenPalm)
	d.Dispatch(tipFrame(0.50, 0.50), gesture.PointingIndex)

	// Tip moves down the image by 0.02 of screen height; the pointer moves
	// down too, which in relative screen terms is negative.
	d.Dispatch(tipFrame(0.50, 0.52), gesture.PointingIndex)

	if len(exec.Moves) != 1 {
		t.Fatalf("got %d moves, want 1", len(exec.Moves))
	}
	if got := exec.Moves[0]; got.DX != 0 || got.DY != -32 {
		t.Errorf("move = (%d, %d), want (0, -32)", got.DX, got.DY)
	}
}

func TestPointerMode_JitterSuppression(t *testing.T) {
	exec := &MockExecutor{}
	cfg := DefaultConfig()
	cfg.PointerGesture = gesture.OpenPalm
	d := New(cfg, exec, allCaps)

	d.Dispatch(detector.OpenPalmFrame(), gesture.OpenPalm)
	d.Dispatch(tipFrame(0.50, 0.50), gesture.PointingIndex)

	// A sub-jitter wobble emits nothing but still advances the reference.
	d.Dispatch(tipFrame(0.5002, 0.50), gesture.PointingIndex)
	if len(exec.Moves) != 0 {
		t.Fatalf("jitter emitted a move: %v", exec.Moves)
	}

	// The next jump is measured from the wobbled position, not the origin.
	d.Dispatch(tipFrame(0.52, 0.50), gesture.PointingIndex)
	if len(exec.Moves) != 1 {
		t.Fatalf("got %d moves, want 1", len(exec.Moves))
	}
	if got := exec.Moves[0]; got.DX != 57 || got.DY != 0 {
		t.Errorf("move = (%d, %d), want (57, 0)", got.DX, got.DY)
	}
}

func TestPointerMode_MissingTipResetsReference(t *testing.T) {
	exec := &MockExecutor{}
	cfg := DefaultConfig()
	cfg.PointerGesture = gesture.OpenPalm
	d := New(cfg, exec, allCaps)

	d.Dispatch(detector.OpenPalmFrame(), gesture.OpenPalm)
	d.Dispatch(tipFrame(0.50, 0.50), gesture.PointingIndex)

	// Occluded tip: mode survives, reference drops.
	noTip := tipFrame(0.50, 0.50).WithMissing(detector.IndexTip)
	if err := d.Dispatch(noTip, gesture.PointingIndex); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if !d.PointerActive() {
		t.Fatal("missing tip must not leave pointer mode")
	}

	// Reacquisition frame re-establishes the reference without a jump.
	d.Dispatch(tipFrame(0.52, 0.50), gesture.PointingIndex)
	if len(exec.Moves) != 0 {
		t.Fatalf("reacquisition jumped the pointer: %v", exec.Moves)
	}

	d.Dispatch(tipFrame(0.54, 0.50), gesture.PointingIndex)
	if len(exec.Moves) != 1 || exec.Moves[0].DX != 58 {
		t.Errorf("Moves = %v, want one 58px move", exec.Moves)
	}
}

func TestPointerMode_Exits(t *testing.T) {
	enter := func(t *testing.T, cfg Config, exec *MockExecutor) *Dispatcher {
		t.Helper()
		d := New(cfg, exec, allCaps)
		if err := d.Dispatch(detector.OpenPalmFrame(), gesture.OpenPalm); err != nil {
			t.Fatalf("activation failed: %v", err)
		}
		if !d.PointerActive() {
			t.Fatal("pointer mode should be active")
		}
		return d
	}

	t.Run("hand lost", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PointerGesture = gesture.OpenPalm
		d := enter(t, cfg, &MockExecutor{})

		d.Dispatch(detector.AbsentFrame(), gesture.None)
		if d.PointerActive() {
			t.Error("absent hand should leave pointer mode")
		}
	})

	t.Run("relaxed hand exits when configured", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PointerGesture = gesture.OpenPalm
		d := enter(t, cfg, &MockExecutor{})

		d.Dispatch(tipFrame(0.5, 0.5), gesture.None)
		if d.PointerActive() {
			t.Error("NONE should leave pointer mode with ExitOnNone set")
		}
	})

	t.Run("relaxed hand tracks when exit on none is off", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PointerGesture = gesture.OpenPalm
		cfg.ExitOnNone = false
		d := enter(t, cfg, &MockExecutor{})

		d.Dispatch(tipFrame(0.5, 0.5), gesture.None)
		if !d.PointerActive() {
			t.Error("NONE should keep pointer mode with ExitOnNone off")
		}
	})

	t.Run("bound gesture exits when configured", func(t *testing.T) {
		exec := &MockExecutor{}
		cfg := DefaultConfig()
		cfg.PointerGesture = gesture.OpenPalm
		cfg.ExitOnBound = true
		cfg.Bindings[gesture.Fist] = Binding{Kind: KindKeyboard, Command: "cmd+space"}
		d := enter(t, cfg, exec)

		// The exit frame itself fires nothing.
		d.Dispatch(detector.FistFrame(), gesture.Fist)
		if d.PointerActive() {
			t.Fatal("bound gesture should leave pointer mode with ExitOnBound set")
		}
		if len(exec.KeyPresses) != 0 {
			t.Fatal("exit frame must not fire the binding")
		}

		// Once out of the mode the binding works again.
		d.Dispatch(detector.FistFrame(), gesture.Fist)
		if len(exec.KeyPresses) != 1 {
			t.Errorf("got %d key presses after exit, want 1", len(exec.KeyPresses))
		}
	})

	t.Run("unbound gesture keeps tracking", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PointerGesture = gesture.OpenPalm
		cfg.ExitOnBound = true
		d := enter(t, cfg, &MockExecutor{})

		d.Dispatch(tipFrame(0.5, 0.5), gesture.Victory)
		if !d.PointerActive() {
			t.Error("unbound gesture should not leave pointer mode")
		}
	})
}

func TestPointerMode_RequiresCapability(t *testing.T) {
	exec := &MockExecutor{}
	cfg := DefaultConfig()
	cfg.PointerGesture = gesture.OpenPalm
	d := New(cfg, exec, Capabilities{Transport: true})

	if err := d.Dispatch(detector.OpenPalmFrame(), gesture.OpenPalm); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if d.PointerActive() {
		t.Error("pointer mode must not engage without pointer injection")
	}
}
