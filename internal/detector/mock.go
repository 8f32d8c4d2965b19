package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []Frame
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Frame) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(img *gocv.Mat) ([]Frame, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

func presetFrame(points [NumLandmarks]Point3D) Frame {
	f := NewFrame(points)
	f.Handedness = "Right"
	f.Score = 0.95
	return f
}

// FistFrame returns a preset frame for a closed fist. All fingertips sit
// close to the wrist relative to the palm length.
func FistFrame() Frame {
	var p [NumLandmarks]Point3D

	p[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb folded against the fist
	p[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.01}
	p[ThumbMCP] = Point3D{X: 0.56, Y: 0.72, Z: 0.01}
	p[ThumbIP] = Point3D{X: 0.55, Y: 0.74, Z: -0.01}
	p[ThumbTip] = Point3D{X: 0.545, Y: 0.755, Z: -0.01}

	// Index finger folded into the palm
	p[IndexMCP] = Point3D{X: 0.54, Y: 0.68, Z: -0.01}
	p[IndexPIP] = Point3D{X: 0.545, Y: 0.71, Z: -0.03}
	p[IndexDIP] = Point3D{X: 0.50, Y: 0.72, Z: -0.03}
	p[IndexTip] = Point3D{X: 0.47, Y: 0.74, Z: -0.02}

	// Middle finger folded
	p[MiddleMCP] = Point3D{X: 0.50, Y: 0.65, Z: 0.0}
	p[MiddlePIP] = Point3D{X: 0.505, Y: 0.69, Z: -0.03}
	p[MiddleDIP] = Point3D{X: 0.50, Y: 0.71, Z: -0.03}
	p[MiddleTip] = Point3D{X: 0.50, Y: 0.73, Z: -0.02}

	// Ring finger folded
	p[RingMCP] = Point3D{X: 0.46, Y: 0.67, Z: -0.01}
	p[RingPIP] = Point3D{X: 0.47, Y: 0.70, Z: -0.03}
	p[RingDIP] = Point3D{X: 0.50, Y: 0.72, Z: -0.03}
	p[RingTip] = Point3D{X: 0.52, Y: 0.74, Z: -0.02}

	// Pinky folded
	p[PinkyMCP] = Point3D{X: 0.43, Y: 0.70, Z: -0.01}
	p[PinkyPIP] = Point3D{X: 0.44, Y: 0.72, Z: -0.02}
	p[PinkyDIP] = Point3D{X: 0.50, Y: 0.74, Z: -0.02}
	p[PinkyTip] = Point3D{X: 0.54, Y: 0.75, Z: -0.01}

	return presetFrame(p)
}

// OpenPalmFrame returns a preset frame for an open palm. All five fingers
// are extended and the thumb is abducted away from the palm.
func OpenPalmFrame() Frame {
	var p [NumLandmarks]Point3D

	p[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	p[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	p[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	p[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	p[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward
	p[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	p[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	p[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	p[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger extended upward
	p[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	p[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	p[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	p[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	// Ring finger extended upward
	p[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	p[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	p[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	p[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	// Pinky extended upward
	p[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	p[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	p[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	p[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return presetFrame(p)
}

// PointingIndexFrame returns a preset frame for an index-finger point.
// Only the index finger is extended; the rest are curled.
func PointingIndexFrame() Frame {
	var p [NumLandmarks]Point3D

	p[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb folded across the palm
	p[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	p[ThumbMCP] = Point3D{X: 0.56, Y: 0.70, Z: 0.0}
	p[ThumbIP] = Point3D{X: 0.545, Y: 0.66, Z: -0.01}
	p[ThumbTip] = Point3D{X: 0.53, Y: 0.68, Z: -0.02}

	// Index finger extended upward
	p[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	p[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	p[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	p[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger curled back toward the knuckle
	p[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: -0.01}
	p[MiddlePIP] = Point3D{X: 0.51, Y: 0.59, Z: -0.03}
	p[MiddleDIP] = Point3D{X: 0.50, Y: 0.62, Z: -0.05}
	p[MiddleTip] = Point3D{X: 0.49, Y: 0.66, Z: -0.04}

	// Ring finger curled
	p[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: -0.01}
	p[RingPIP] = Point3D{X: 0.46, Y: 0.62, Z: -0.03}
	p[RingDIP] = Point3D{X: 0.45, Y: 0.645, Z: -0.05}
	p[RingTip] = Point3D{X: 0.44, Y: 0.675, Z: -0.04}

	// Pinky curled
	p[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: -0.01}
	p[PinkyPIP] = Point3D{X: 0.41, Y: 0.65, Z: -0.03}
	p[PinkyDIP] = Point3D{X: 0.40, Y: 0.67, Z: -0.05}
	p[PinkyTip] = Point3D{X: 0.39, Y: 0.695, Z: -0.04}

	return presetFrame(p)
}

// VictoryFrame returns a preset frame for a victory sign. Index and middle
// fingers are extended; ring and pinky are curled.
func VictoryFrame() Frame {
	var p [NumLandmarks]Point3D

	p[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb folded across the palm
	p[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	p[ThumbMCP] = Point3D{X: 0.56, Y: 0.70, Z: 0.0}
	p[ThumbIP] = Point3D{X: 0.545, Y: 0.66, Z: -0.01}
	p[ThumbTip] = Point3D{X: 0.53, Y: 0.68, Z: -0.02}

	// Index finger extended upward
	p[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	p[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	p[IndexDIP] = Point3D{X: 0.575, Y: 0.45, Z: 0.0}
	p[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger extended upward
	p[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	p[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	p[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	p[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	// Ring finger curled
	p[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: -0.01}
	p[RingPIP] = Point3D{X: 0.46, Y: 0.62, Z: -0.03}
	p[RingDIP] = Point3D{X: 0.45, Y: 0.645, Z: -0.05}
	p[RingTip] = Point3D{X: 0.44, Y: 0.675, Z: -0.04}

	// Pinky curled
	p[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: -0.01}
	p[PinkyPIP] = Point3D{X: 0.41, Y: 0.65, Z: -0.03}
	p[PinkyDIP] = Point3D{X: 0.40, Y: 0.67, Z: -0.05}
	p[PinkyTip] = Point3D{X: 0.39, Y: 0.695, Z: -0.04}

	return presetFrame(p)
}

// ThumbsUpFrame returns a preset frame for a thumbs up. The thumb is
// extended upward while the four fingers are curled.
func ThumbsUpFrame() Frame {
	var p [NumLandmarks]Point3D

	p[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended upward (Y decreases going up)
	p[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	p[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	p[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	p[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Index finger curled
	p[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.01}
	p[IndexPIP] = Point3D{X: 0.56, Y: 0.63, Z: -0.03}
	p[IndexDIP] = Point3D{X: 0.55, Y: 0.66, Z: -0.05}
	p[IndexTip] = Point3D{X: 0.54, Y: 0.70, Z: -0.04}

	// Middle finger curled
	p[MiddleMCP] = Point3D{X: 0.51, Y: 0.69, Z: -0.01}
	p[MiddlePIP] = Point3D{X: 0.52, Y: 0.615, Z: -0.03}
	p[MiddleDIP] = Point3D{X: 0.51, Y: 0.645, Z: -0.05}
	p[MiddleTip] = Point3D{X: 0.50, Y: 0.685, Z: -0.04}

	// Ring finger curled
	p[RingMCP] = Point3D{X: 0.47, Y: 0.70, Z: -0.01}
	p[RingPIP] = Point3D{X: 0.48, Y: 0.64, Z: -0.03}
	p[RingDIP] = Point3D{X: 0.47, Y: 0.665, Z: -0.05}
	p[RingTip] = Point3D{X: 0.46, Y: 0.695, Z: -0.04}

	// Pinky curled
	p[PinkyMCP] = Point3D{X: 0.43, Y: 0.72, Z: -0.01}
	p[PinkyPIP] = Point3D{X: 0.44, Y: 0.67, Z: -0.03}
	p[PinkyDIP] = Point3D{X: 0.43, Y: 0.69, Z: -0.05}
	p[PinkyTip] = Point3D{X: 0.42, Y: 0.71, Z: -0.04}

	return presetFrame(p)
}

// ThumbsDownFrame returns a preset frame for a thumbs down, the vertical
// mirror of ThumbsUpFrame.
func ThumbsDownFrame() Frame {
	var p [NumLandmarks]Point3D

	p[Wrist] = Point3D{X: 0.5, Y: 0.4, Z: 0.0}

	// Thumb extended downward
	p[ThumbCMC] = Point3D{X: 0.55, Y: 0.45, Z: 0.0}
	p[ThumbMCP] = Point3D{X: 0.58, Y: 0.55, Z: 0.0}
	p[ThumbIP] = Point3D{X: 0.58, Y: 0.70, Z: 0.0}
	p[ThumbTip] = Point3D{X: 0.58, Y: 0.85, Z: 0.0}

	// Index finger curled
	p[IndexMCP] = Point3D{X: 0.55, Y: 0.50, Z: -0.01}
	p[IndexPIP] = Point3D{X: 0.56, Y: 0.57, Z: -0.03}
	p[IndexDIP] = Point3D{X: 0.55, Y: 0.54, Z: -0.05}
	p[IndexTip] = Point3D{X: 0.54, Y: 0.50, Z: -0.04}

	// Middle finger curled
	p[MiddleMCP] = Point3D{X: 0.51, Y: 0.51, Z: -0.01}
	p[MiddlePIP] = Point3D{X: 0.52, Y: 0.575, Z: -0.03}
	p[MiddleDIP] = Point3D{X: 0.51, Y: 0.545, Z: -0.05}
	p[MiddleTip] = Point3D{X: 0.50, Y: 0.515, Z: -0.04}

	// Ring finger curled
	p[RingMCP] = Point3D{X: 0.47, Y: 0.50, Z: -0.01}
	p[RingPIP] = Point3D{X: 0.48, Y: 0.56, Z: -0.03}
	p[RingDIP] = Point3D{X: 0.47, Y: 0.535, Z: -0.05}
	p[RingTip] = Point3D{X: 0.46, Y: 0.505, Z: -0.04}

	// Pinky curled
	p[PinkyMCP] = Point3D{X: 0.43, Y: 0.48, Z: -0.01}
	p[PinkyPIP] = Point3D{X: 0.44, Y: 0.53, Z: -0.03}
	p[PinkyDIP] = Point3D{X: 0.43, Y: 0.51, Z: -0.05}
	p[PinkyTip] = Point3D{X: 0.42, Y: 0.49, Z: -0.04}

	return presetFrame(p)
}

// RelaxedHandFrame returns a preset frame for a half-open resting hand.
// Finger ratios sit between the curl and extension thresholds, so no
// catalog gesture should claim it.
func RelaxedHandFrame() Frame {
	var p [NumLandmarks]Point3D

	p[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	p[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	p[ThumbMCP] = Point3D{X: 0.58, Y: 0.70, Z: 0.0}
	p[ThumbIP] = Point3D{X: 0.60, Y: 0.63, Z: 0.0}
	p[ThumbTip] = Point3D{X: 0.615, Y: 0.60, Z: 0.0}

	p[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	p[IndexPIP] = Point3D{X: 0.56, Y: 0.60, Z: 0.0}
	p[IndexDIP] = Point3D{X: 0.565, Y: 0.585, Z: 0.0}
	p[IndexTip] = Point3D{X: 0.57, Y: 0.57, Z: 0.0}

	p[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	p[MiddlePIP] = Point3D{X: 0.51, Y: 0.58, Z: 0.0}
	p[MiddleDIP] = Point3D{X: 0.515, Y: 0.565, Z: 0.0}
	p[MiddleTip] = Point3D{X: 0.52, Y: 0.55, Z: 0.0}

	p[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	p[RingPIP] = Point3D{X: 0.46, Y: 0.60, Z: 0.0}
	p[RingDIP] = Point3D{X: 0.465, Y: 0.585, Z: 0.0}
	p[RingTip] = Point3D{X: 0.47, Y: 0.57, Z: 0.0}

	p[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	p[PinkyPIP] = Point3D{X: 0.41, Y: 0.62, Z: 0.0}
	p[PinkyDIP] = Point3D{X: 0.415, Y: 0.605, Z: 0.0}
	p[PinkyTip] = Point3D{X: 0.42, Y: 0.59, Z: 0.0}

	return presetFrame(p)
}
