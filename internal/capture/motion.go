package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

const (
	// blurKernel is the Gaussian kernel size used to wash out sensor
	// noise before differencing.
	blurKernel = 21

	// pixelDelta is the per-pixel intensity change that counts as
	// changed after differencing.
	pixelDelta = 25
)

// MotionDetector reports whether the scene changed between consecutive
// frames. Each frame is grayscaled, blurred, differenced against the
// previous one and thresholded; motion is the changed-pixel percentage
// exceeding the configured threshold.
type MotionDetector struct {
	mu        sync.Mutex
	threshold float64
	prev      gocv.Mat
	primed    bool
}

// NewMotionDetector returns a detector that reports motion when more
// than threshold percent of pixels changed since the previous frame.
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		prev:      gocv.NewMat(),
	}
}

// Detect compares frame against the previous one and reports whether
// motion was seen, along with the changed-pixel percentage. The first
// frame primes the baseline and never reports motion.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernel, Y: blurKernel}, 0, 0, gocv.BorderDefault)

	if !m.primed {
		blurred.CopyTo(&m.prev)
		m.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prev, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, pixelDelta, 255, gocv.ThresholdBinary)

	changed := gocv.CountNonZero(mask)
	total := mask.Rows() * mask.Cols()
	pct := float64(changed) / float64(total) * 100.0

	blurred.CopyTo(&m.prev)

	return pct > m.threshold, pct
}

// SetThreshold changes the changed-pixel percentage that counts as
// motion. Non-positive values are ignored.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.threshold = threshold
}

// Reset drops the baseline frame; the next Detect primes a new one.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

// Close releases the detector's resources. The detector is reusable
// afterwards; Detect simply primes a fresh baseline.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

func (m *MotionDetector) reset() {
	if !m.prev.Empty() {
		m.prev.Close()
		m.prev = gocv.NewMat()
	}
	m.primed = false
}
