package app

import (
	"log"
	"time"

	"github.com/devadutta/gestureflow/internal/detector"
	"github.com/devadutta/gestureflow/internal/gesture"
)

// runPipeline is the main detection loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS=5)
// 2. On motion detected, switch to active mode (activeFPS=15)
// 3. Run hand detection, classify the primary hand (or an Absent frame)
// 4. Hand the (frame, label) pair to the dispatcher
// 5. After 2s no motion, switch back to idle mode (unless pointer mode is on)
//
// Every tick feeds the dispatcher, including no-hand ticks: pointer-mode
// exit and debounce behavior depend on seeing Absent frames.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	// Track whether we're in active mode
	activeMode := false

	// Track the last motion detection time
	lastMotionTime := time.Now()

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && a.idleSince(lastMotionTime) {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}

			// In idle mode the detector does not run, but the dispatcher
			// still sees an Absent frame.
			if !activeMode || a.Detector() == nil {
				frame.Close()
				a.process(detector.AbsentFrame())
				continue
			}

			// Step 2: Hand detection
			hands, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			// Step 3: Classify and dispatch the primary hand
			hand := detector.AbsentFrame()
			if len(hands) > 0 {
				hand = hands[0]
			}
			a.process(hand)
		}
	}
}

// process classifies one frame, hands it to the dispatcher and notifies
// callbacks on change. Runs on the pipeline goroutine only.
func (a *App) process(hand detector.Frame) {
	label := a.classifier.Classify(hand)

	if err := a.dispatcher.Dispatch(hand, label); err != nil {
		log.Printf("Dispatch error: %v", err)
	}

	a.notify(label, a.dispatcher.PointerActive())
}

// notify fans the (label, pointerActive) pair out to callbacks, but only
// when something changed since the previous tick.
func (a *App) notify(label gesture.Label, pointerActive bool) {
	if label == a.lastLabel && pointerActive == a.lastPointer {
		return
	}
	a.lastLabel = label
	a.lastPointer = pointerActive

	for _, cb := range a.callbacks {
		cb(label, pointerActive)
	}
}
