package dispatch

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/devadutta/gestureflow/internal/detector"
	"github.com/devadutta/gestureflow/internal/gesture"
	"github.com/devadutta/gestureflow/internal/transport"
)

// Dispatcher consumes one (frame, label) pair per pipeline tick and
// performs at most one action for it. It owns the per-gesture debounce
// state, the pointer-control mode and the per-kind disable flags.
//
// The dispatcher is not safe for concurrent use; the pipeline calls it
// from a single goroutine, one frame at a time.
type Dispatcher struct {
	cfg  Config
	exec Executor
	caps Capabilities

	// now is the clock; tests substitute it.
	now func() time.Time

	lastFire      map[gesture.Label]time.Time
	disabled      map[ActionKind]bool
	pointerActive bool
	prevTip       *detector.Point3D
}

// New creates a dispatcher. Capabilities are negotiated once by the caller;
// the dispatcher never re-probes them.
func New(cfg Config, exec Executor, caps Capabilities) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		exec:     exec,
		caps:     caps,
		now:      time.Now,
		lastFire: make(map[gesture.Label]time.Time),
		disabled: make(map[ActionKind]bool),
	}
}

// PointerActive reports whether pointer-control mode is engaged.
func (d *Dispatcher) PointerActive() bool {
	return d.pointerActive
}

// Dispatch handles one classified frame. It returns an error only when an
// executor call failed; skips (no binding, debounce, missing capability)
// are not errors.
func (d *Dispatcher) Dispatch(frame detector.Frame, label gesture.Label) error {
	if d.pointerActive {
		return d.dispatchPointer(frame, label)
	}

	// Mode entry consumes the frame: the activation gesture never also
	// fires a binding.
	if d.canEnterPointerMode(label) {
		d.pointerActive = true
		d.prevTip = nil
		log.Printf("[dispatch] pointer mode on")
		return nil
	}

	binding, ok := d.cfg.Bindings[label]
	if !ok {
		return nil
	}
	return d.fire(label, binding)
}

func (d *Dispatcher) canEnterPointerMode(label gesture.Label) bool {
	return d.cfg.PointerGesture != "" &&
		label == d.cfg.PointerGesture &&
		d.caps.PointerInjection
}

func (d *Dispatcher) dispatchPointer(frame detector.Frame, label gesture.Label) error {
	if frame.Absent() {
		d.exitPointerMode("hand lost")
		return nil
	}
	if label == gesture.None && d.cfg.ExitOnNone {
		d.exitPointerMode("no gesture")
		return nil
	}
	if d.cfg.ExitOnBound && label != gesture.None && label != d.cfg.PointerGesture {
		if _, bound := d.cfg.Bindings[label]; bound {
			d.exitPointerMode("bound gesture " + string(label))
			return nil
		}
	}
	return d.trackPointer(frame)
}

func (d *Dispatcher) exitPointerMode(reason string) {
	d.pointerActive = false
	d.prevTip = nil
	log.Printf("[dispatch] pointer mode off (%s)", reason)
}

// trackPointer maps index-tip displacement to a relative pointer move. The
// reference tip advances every present frame whether or not a move is
// emitted; a missing tip resets the reference without leaving the mode.
func (d *Dispatcher) trackPointer(frame detector.Frame) error {
	tip, ok := frame.Joint(detector.IndexTip)
	if !ok {
		d.prevTip = nil
		return nil
	}

	prev := d.prevTip
	d.prevTip = &tip

	if prev == nil {
		return nil
	}

	w := float64(d.cfg.ScreenWidth)
	h := float64(d.cfg.ScreenHeight)

	// Image Y grows downward, screen Y grows upward from the tip's point
	// of view, so the vertical axis flips.
	tx := tip.X * w
	ty := (1 - tip.Y) * h
	px := prev.X * w
	py := (1 - prev.Y) * h

	dx := int(math.Round((tx - px) * d.cfg.Sensitivity))
	dy := int(math.Round((ty - py) * d.cfg.Sensitivity))

	if math.Abs(float64(dx)) <= d.cfg.JitterPx && math.Abs(float64(dy)) <= d.cfg.JitterPx {
		return nil
	}

	if err := d.exec.PointerMoveRelative(dx, dy); err != nil {
		return fmt.Errorf("pointer move: %w", err)
	}
	return nil
}

// fire runs one bound action through availability, debounce and error
// handling.
func (d *Dispatcher) fire(label gesture.Label, b Binding) error {
	// Availability is checked before any state mutates, so an unavailable
	// action leaves the debounce window untouched.
	if d.disabled[b.Kind] {
		log.Printf("[dispatch] %s: %s actions disabled, skipping", label, b.Kind)
		return nil
	}
	if !d.kindAvailable(b.Kind) {
		log.Printf("[dispatch] %s: no %s capability, skipping", label, b.Kind)
		return nil
	}

	now := d.now()
	if last, fired := d.lastFire[label]; fired && now.Sub(last) <= d.debounce() {
		return nil
	}

	// Recorded before the executor runs so a slow action cannot re-fire.
	d.lastFire[label] = now

	if err := d.invoke(b); err != nil {
		// Clearing the timestamp lets a transient failure retry on the
		// next frame.
		delete(d.lastFire, label)
		if errors.Is(err, transport.ErrWriteFailed) {
			d.disabled[b.Kind] = true
			log.Printf("[dispatch] disabling %s actions: %v", b.Kind, err)
		}
		return fmt.Errorf("dispatch %s: %w", label, err)
	}
	return nil
}

func (d *Dispatcher) kindAvailable(k ActionKind) bool {
	switch k {
	case KindKeyboard, KindMouse:
		return d.caps.PointerInjection
	case KindSerial:
		return d.caps.Transport
	}
	return false
}

func (d *Dispatcher) debounce() time.Duration {
	return time.Duration(d.cfg.DebounceMs) * time.Millisecond
}

func (d *Dispatcher) invoke(b Binding) error {
	switch b.Kind {
	case KindKeyboard:
		if b.Command == "" {
			log.Printf("[dispatch] empty keyboard combo, skipping")
			return nil
		}
		return d.exec.KeyPress(b.Command)
	case KindMouse:
		return d.invokeMouse(b)
	case KindSerial:
		return d.exec.TransportWrite(append([]byte(b.Command), '\n'))
	}
	return nil
}

func (d *Dispatcher) invokeMouse(b Binding) error {
	amount := b.Amount
	if amount == 0 {
		amount = DefaultScrollAmount
	}

	switch b.Command {
	case CmdClick, CmdRightClick, CmdDoubleClick:
		return d.exec.MouseClick(b.Command)
	case CmdScrollUp:
		return d.exec.MouseScroll(amount)
	case CmdScrollDown:
		return d.exec.MouseScroll(-amount)
	default:
		log.Printf("[dispatch] unknown mouse command %q, skipping", b.Command)
		return nil
	}
}
