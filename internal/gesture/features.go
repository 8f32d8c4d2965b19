package gesture

import (
	"math"

	"github.com/devadutta/gestureflow/internal/detector"
)

// minSegment guards ratio math against degenerate joint geometry.
const minSegment = 1e-6

// degenerateCurlMax is the absolute tip-to-MCP fallback bound used when the
// PIP sits on top of the MCP and the curl ratio is undefined.
const degenerateCurlMax = 0.05

// finger is the (tip, pip, mcp) joint triple of one finger. The thumb uses
// its IP joint in the pip slot.
type finger struct {
	tip, pip, mcp int
}

var (
	thumb  = finger{detector.ThumbTip, detector.ThumbIP, detector.ThumbMCP}
	index  = finger{detector.IndexTip, detector.IndexPIP, detector.IndexMCP}
	middle = finger{detector.MiddleTip, detector.MiddlePIP, detector.MiddleMCP}
	ring   = finger{detector.RingTip, detector.RingPIP, detector.RingMCP}
	pinky  = finger{detector.PinkyTip, detector.PinkyPIP, detector.PinkyMCP}

	allFingers = []finger{thumb, index, middle, ring, pinky}
)

// Distance returns the Euclidean distance between two joints of a frame in
// normalized coordinate space. If either joint is missing it returns +Inf,
// so any upper-bound comparison built on it fails closed.
func Distance(f detector.Frame, a, b int) float64 {
	pa, ok := f.Joint(a)
	if !ok {
		return math.Inf(1)
	}
	pb, ok := f.Joint(b)
	if !ok {
		return math.Inf(1)
	}
	return pa.DistanceTo(pb)
}

// Extended reports whether the finger with the given (tip, pip, mcp) joints
// is straightened: tip-to-MCP distance exceeds PIP-to-MCP distance by
// t.ExtendFactor. Any missing joint or a degenerate PIP-to-MCP segment
// makes the result false.
func Extended(f detector.Frame, tip, pip, mcp int, t Thresholds) bool {
	return extended(f, finger{tip, pip, mcp}, t)
}

// Curled reports whether the finger is folded: the tip-to-MCP over
// PIP-to-MCP ratio is below t.CurlFactor. When the PIP-to-MCP segment is
// degenerate the absolute tip-to-MCP distance decides. Any missing joint
// makes the result false.
func Curled(f detector.Frame, tip, pip, mcp int, t Thresholds) bool {
	return curledWithin(f, finger{tip, pip, mcp}, t.CurlFactor)
}

func extended(f detector.Frame, fg finger, t Thresholds) bool {
	if !jointsPresent(f, fg.tip, fg.pip, fg.mcp) {
		return false
	}
	pipMCP := Distance(f, fg.pip, fg.mcp)
	if pipMCP < minSegment {
		return false
	}
	return Distance(f, fg.tip, fg.mcp)/pipMCP > t.ExtendFactor
}

func curledWithin(f detector.Frame, fg finger, factor float64) bool {
	if !jointsPresent(f, fg.tip, fg.pip, fg.mcp) {
		return false
	}
	tipMCP := Distance(f, fg.tip, fg.mcp)
	pipMCP := Distance(f, fg.pip, fg.mcp)
	if pipMCP < minSegment {
		return tipMCP < degenerateCurlMax
	}
	return tipMCP/pipMCP < factor
}

func jointsPresent(f detector.Frame, joints ...int) bool {
	for _, j := range joints {
		if _, ok := f.Joint(j); !ok {
			return false
		}
	}
	return true
}

// palmLength returns the wrist-to-middle-MCP distance used as the scale
// reference, and whether it is usable.
func palmLength(f detector.Frame) (float64, bool) {
	ref := Distance(f, detector.Wrist, detector.MiddleMCP)
	if math.IsInf(ref, 1) || ref < minSegment {
		return 0, false
	}
	return ref, true
}
