package gesture

import (
	"math"

	"github.com/devadutta/gestureflow/internal/detector"
)

// Classifier turns a landmark frame into a gesture label by evaluating an
// ordered catalog of predicates. The first predicate that matches wins;
// evaluation order is part of the contract, so a pose that satisfies two
// predicates always resolves to the earlier label. There is no scoring.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

type catalogEntry struct {
	label Label
	match func(c *Classifier, f detector.Frame) bool
}

// catalog lists the predicates in evaluation order.
var catalog = []catalogEntry{
	{Fist, (*Classifier).isFist},
	{OpenPalm, (*Classifier).isOpenPalm},
	{PointingIndex, (*Classifier).isPointingIndex},
	{ThumbsUp, (*Classifier).isThumbsUp},
	{ThumbsDown, (*Classifier).isThumbsDown},
	{Victory, (*Classifier).isVictory},
}

// Classify returns the label of the first matching catalog predicate, or
// None for absent frames and frames no predicate claims. Classification is
// deterministic and side-effect free.
func (c *Classifier) Classify(f detector.Frame) Label {
	if f.Absent() {
		return None
	}
	for _, e := range catalog {
		if e.match(c, f) {
			return e.label
		}
	}
	return None
}

// isFist requires every fingertip to sit close to the wrist relative to the
// palm length.
func (c *Classifier) isFist(f detector.Frame) bool {
	ref, ok := palmLength(f)
	if !ok {
		return false
	}
	bound := c.thresholds.FistMaxTipWrist * ref
	for _, fg := range allFingers {
		if Distance(f, fg.tip, detector.Wrist) > bound {
			return false
		}
	}
	return true
}

// isOpenPalm requires all five fingers extended and the thumb abducted away
// from the index knuckle relative to the palm width.
func (c *Classifier) isOpenPalm(f detector.Frame) bool {
	for _, fg := range allFingers {
		if !extended(f, fg, c.thresholds) {
			return false
		}
	}
	width := Distance(f, detector.IndexMCP, detector.PinkyMCP)
	if math.IsInf(width, 1) || width < minSegment {
		return false
	}
	abduction := Distance(f, detector.ThumbTip, detector.IndexMCP) / width
	return abduction > c.thresholds.PalmThumbAbduction
}

func (c *Classifier) isPointingIndex(f detector.Frame) bool {
	if !extended(f, index, c.thresholds) {
		return false
	}
	return c.looselyCurled(f, middle, ring, pinky)
}

func (c *Classifier) isThumbsUp(f detector.Frame) bool {
	rise, ok := c.thumbRise(f)
	return ok && rise < c.thresholds.ThumbsUpYMax
}

func (c *Classifier) isThumbsDown(f detector.Frame) bool {
	rise, ok := c.thumbRise(f)
	return ok && rise > c.thresholds.ThumbsDownYMin
}

func (c *Classifier) isVictory(f detector.Frame) bool {
	if !extended(f, index, c.thresholds) || !extended(f, middle, c.thresholds) {
		return false
	}
	return c.looselyCurled(f, ring, pinky)
}

// thumbRise returns the thumb tip's vertical offset from its MCP scaled by
// the palm length, for poses where the thumb is extended and the four
// fingers are loosely curled. Image Y points down, so a raised thumb
// yields a negative rise.
func (c *Classifier) thumbRise(f detector.Frame) (float64, bool) {
	if !extended(f, thumb, c.thresholds) {
		return 0, false
	}
	if !c.looselyCurled(f, index, middle, ring, pinky) {
		return 0, false
	}
	ref, ok := palmLength(f)
	if !ok {
		return 0, false
	}
	tip, _ := f.Joint(detector.ThumbTip)
	mcp, _ := f.Joint(detector.ThumbMCP)
	return (tip.Y - mcp.Y) / ref, true
}

// looselyCurled checks the given fingers against the relaxed curl bound.
func (c *Classifier) looselyCurled(f detector.Frame, fingers ...finger) bool {
	for _, fg := range fingers {
		if !curledWithin(f, fg, c.thresholds.RelaxedCurlFactor) {
			return false
		}
	}
	return true
}
