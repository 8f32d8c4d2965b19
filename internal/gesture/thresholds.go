package gesture

// Thresholds holds the tunable constants of the catalog predicates. All
// ratios are relative to hand geometry, so they are scale invariant.
type Thresholds struct {
	// ExtendFactor is the minimum tip-to-MCP over PIP-to-MCP ratio for a
	// finger to count as extended.
	ExtendFactor float64

	// CurlFactor is the maximum ratio for a finger to count as strictly
	// curled.
	CurlFactor float64

	// RelaxedCurlFactor is the curl bound applied to the non-primary
	// fingers of pointing, victory and thumbs gestures, which rarely fold
	// all the way in.
	RelaxedCurlFactor float64

	// FistMaxTipWrist bounds every fingertip-to-wrist distance for a fist,
	// as a fraction of the wrist-to-middle-MCP palm length.
	FistMaxTipWrist float64

	// PalmThumbAbduction is the minimum thumb-tip-to-index-MCP over palm
	// width ratio for an open palm.
	PalmThumbAbduction float64

	// ThumbsUpYMax is the maximum normalized vertical offset of the thumb
	// tip above its MCP for thumbs up. Negative because image Y points
	// down.
	ThumbsUpYMax float64

	// ThumbsDownYMin is the minimum normalized vertical offset of the
	// thumb tip below its MCP for thumbs down.
	ThumbsDownYMin float64
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ExtendFactor:       1.6,
		CurlFactor:         1.0,
		RelaxedCurlFactor:  1.2,
		FistMaxTipWrist:    0.6,
		PalmThumbAbduction: 0.7,
		ThumbsUpYMax:       -0.1,
		ThumbsDownYMin:     0.1,
	}
}
