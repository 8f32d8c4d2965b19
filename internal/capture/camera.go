// Package capture reads webcam frames through GoCV and gates the
// recognition pipeline on scene motion.
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Frames are captured at 640x480; the landmark detector downsamples
// anyway and smaller frames keep the motion pass cheap.
const (
	frameWidth  = 640
	frameHeight = 480

	// defaultFPS is the idle capture rate. The pipeline raises it while
	// motion is present.
	defaultFPS = 5
)

// ErrCameraNotOpen is returned when reading from a camera that has not
// been opened.
var ErrCameraNotOpen = errors.New("camera not open")

// Camera is a frame source. Implementations are safe for concurrent use;
// the pipeline and the preview stream read from the same camera.
type Camera interface {
	Open() error
	Close() error

	// ReadFrame returns the next frame. The caller owns the Mat and
	// must Close it.
	ReadFrame() (*gocv.Mat, error)

	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// deviceCamera captures from a physical device via GoCV.
type deviceCamera struct {
	deviceID int

	mu   sync.Mutex
	cap  *gocv.VideoCapture
	open bool
	fps  int
}

// NewCamera returns a Camera for the given device ID. The camera starts
// closed, at the idle frame rate.
func NewCamera(deviceID int) Camera {
	return &deviceCamera{
		deviceID: deviceID,
		fps:      defaultFPS,
	}
}

// Open acquires the device and fixes the capture resolution. Opening an
// already open camera is a no-op.
func (c *deviceCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return nil
	}

	cap, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", c.deviceID, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, frameWidth)
	cap.Set(gocv.VideoCaptureFrameHeight, frameHeight)
	cap.Set(gocv.VideoCaptureFPS, float64(c.fps))

	c.cap = cap
	c.open = true
	return nil
}

// Close releases the device. Closing a closed camera is a no-op.
func (c *deviceCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || c.cap == nil {
		c.open = false
		return nil
	}

	err := c.cap.Close()
	c.cap = nil
	c.open = false
	return err
}

func (c *deviceCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || c.cap == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.cap.Read(&mat); !ok {
		mat.Close()
		return nil, fmt.Errorf("read from camera %d failed", c.deviceID)
	}
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("camera %d returned an empty frame", c.deviceID)
	}

	return &mat, nil
}

// SetFPS changes the capture rate. Non-positive values are ignored.
func (c *deviceCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps
	if c.cap != nil {
		c.cap.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

func (c *deviceCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *deviceCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}
