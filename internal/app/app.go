// Package app hosts the recognition pipeline: camera frames in,
// dispatched actions out.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/devadutta/gestureflow/internal/capture"
	"github.com/devadutta/gestureflow/internal/detector"
	"github.com/devadutta/gestureflow/internal/dispatch"
	"github.com/devadutta/gestureflow/internal/gesture"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// GestureCallback receives the classified label and the pointer-mode
// state after each change. Callbacks run on the pipeline goroutine.
type GestureCallback func(label gesture.Label, pointerActive bool)

// Config holds configuration options for the application. Classifier and
// Dispatcher are required.
type Config struct {
	CameraID     int
	MotionThresh float64
	Classifier   *gesture.Classifier
	Dispatcher   *dispatch.Dispatcher
}

// App owns the camera, the detector and the per-tick
// classify-and-dispatch loop.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	dispatcher *dispatch.Dispatcher
	callbacks  []GestureCallback
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}

	// Pipeline-goroutine state: last values handed to callbacks.
	lastLabel   gesture.Label
	lastPointer bool
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: config.Classifier,
		dispatcher: config.Dispatcher,
		enabled:    false,
		stopCh:     nil,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// OnGesture registers a callback invoked whenever the classified label
// or the pointer-mode state changes. Register callbacks before Start.
func (a *App) OnGesture(cb GestureCallback) {
	a.callbacks = append(a.callbacks, cb)
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Dispatcher returns the action dispatcher.
func (a *App) Dispatcher() *dispatch.Dispatcher {
	return a.dispatcher
}

// idleSince reports whether the idle timeout has elapsed since the last
// motion. Pointer mode pins the pipeline in active mode so a motionless
// hovering hand is not mistaken for a lost one.
func (a *App) idleSince(lastMotion time.Time) bool {
	if a.dispatcher.PointerActive() {
		return false
	}
	return time.Since(lastMotion) > time.Duration(IdleTimeoutMs)*time.Millisecond
}
