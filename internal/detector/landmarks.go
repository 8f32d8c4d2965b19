// Package detector provides hand landmark frames and the detector backends
// that produce them.
package detector

import (
	"encoding/json"
	"math"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point with x/y in normalized image coordinates
// ([0,1], y pointing down) and z as relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DistanceTo calculates the Euclidean distance between two 3D points.
func (p Point3D) DistanceTo(q Point3D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Frame is one hand observation. A frame is either absent (no hand this
// frame) or holds 21 joint slots, each present or missing. Which slots are
// present is decided once, when the frame is constructed; an absent frame
// never carries joints and a frame with missing joints is never absent.
type Frame struct {
	points  [NumLandmarks]Point3D
	present [NumLandmarks]bool
	hand    bool

	Handedness string // "Left" or "Right"
	Score      float64
}

// AbsentFrame returns the frame for a tick where no hand was detected.
func AbsentFrame() Frame {
	return Frame{}
}

// NewFrame builds a frame with all 21 joints present.
func NewFrame(points [NumLandmarks]Point3D) Frame {
	f := Frame{points: points, hand: true}
	for i := range f.present {
		f.present[i] = true
	}
	return f
}

// FrameFromPoints builds a frame from a detector point list. The first
// len(points) slots (capped at 21) are present, the rest are missing. An
// empty list yields an absent frame.
func FrameFromPoints(points []Point3D) Frame {
	if len(points) == 0 {
		return AbsentFrame()
	}
	f := Frame{hand: true}
	for i := 0; i < len(points) && i < NumLandmarks; i++ {
		f.points[i] = points[i]
		f.present[i] = true
	}
	return f
}

// WithMissing returns a copy of the frame with the given joint slots marked
// missing. Calling it on an absent frame returns the frame unchanged.
func (f Frame) WithMissing(joints ...int) Frame {
	if !f.hand {
		return f
	}
	for _, j := range joints {
		if j >= 0 && j < NumLandmarks {
			f.present[j] = false
			f.points[j] = Point3D{}
		}
	}
	return f
}

// Absent reports whether no hand was detected this frame.
func (f Frame) Absent() bool {
	return !f.hand
}

// Joint returns the position of the given landmark and whether it is
// present. Joints of an absent frame and out-of-range indices report
// missing.
func (f Frame) Joint(id int) (Point3D, bool) {
	if !f.hand || id < 0 || id >= NumLandmarks {
		return Point3D{}, false
	}
	return f.points[id], f.present[id]
}

// MarshalJSON encodes the frame for the event surface. Missing joints
// encode as null; absent frames encode with a null points array.
func (f Frame) MarshalJSON() ([]byte, error) {
	type wireFrame struct {
		Points     []*Point3D `json:"points"`
		Handedness string     `json:"handedness,omitempty"`
		Score      float64    `json:"score,omitempty"`
	}
	w := wireFrame{Handedness: f.Handedness, Score: f.Score}
	if f.hand {
		w.Points = make([]*Point3D, NumLandmarks)
		for i := range f.points {
			if f.present[i] {
				p := f.points[i]
				w.Points[i] = &p
			}
		}
	}
	return json.Marshal(w)
}
