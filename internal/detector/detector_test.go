package detector

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestPoint3D_DistanceTo(t *testing.T) {
	p := Point3D{X: 0, Y: 0, Z: 0}
	q := Point3D{X: 3, Y: 4, Z: 0}

	if d := p.DistanceTo(q); math.Abs(d-5.0) > epsilon {
		t.Errorf("DistanceTo = %f, want 5.0", d)
	}

	if d := q.DistanceTo(q); math.Abs(d) > epsilon {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestFrame_Construction(t *testing.T) {
	t.Run("absent frame has no joints", func(t *testing.T) {
		f := AbsentFrame()

		if !f.Absent() {
			t.Error("AbsentFrame should report Absent")
		}

		if _, ok := f.Joint(Wrist); ok {
			t.Error("absent frame should report every joint missing")
		}
	})

	t.Run("NewFrame marks all joints present", func(t *testing.T) {
		var points [NumLandmarks]Point3D
		points[IndexTip] = Point3D{X: 0.3, Y: 0.4, Z: 0.1}

		f := NewFrame(points)

		if f.Absent() {
			t.Fatal("NewFrame should not be absent")
		}

		for i := 0; i < NumLandmarks; i++ {
			if _, ok := f.Joint(i); !ok {
				t.Errorf("joint %d should be present", i)
			}
		}

		tip, _ := f.Joint(IndexTip)
		if tip.X != 0.3 || tip.Y != 0.4 || tip.Z != 0.1 {
			t.Errorf("IndexTip = %+v, want {0.3 0.4 0.1}", tip)
		}
	})

	t.Run("FrameFromPoints marks trailing joints missing", func(t *testing.T) {
		points := make([]Point3D, 5)
		for i := range points {
			points[i] = Point3D{X: float64(i)}
		}

		f := FrameFromPoints(points)

		if f.Absent() {
			t.Fatal("frame with points should not be absent")
		}

		for i := 0; i < 5; i++ {
			if _, ok := f.Joint(i); !ok {
				t.Errorf("joint %d should be present", i)
			}
		}
		for i := 5; i < NumLandmarks; i++ {
			if _, ok := f.Joint(i); ok {
				t.Errorf("joint %d should be missing", i)
			}
		}
	})

	t.Run("FrameFromPoints with no points is absent", func(t *testing.T) {
		if f := FrameFromPoints(nil); !f.Absent() {
			t.Error("empty point list should yield an absent frame")
		}
	})

	t.Run("WithMissing drops the named joints", func(t *testing.T) {
		f := OpenPalmFrame().WithMissing(ThumbTip, IndexTip)

		if f.Absent() {
			t.Fatal("frame with missing joints is not absent")
		}

		if _, ok := f.Joint(ThumbTip); ok {
			t.Error("ThumbTip should be missing")
		}
		if _, ok := f.Joint(IndexTip); ok {
			t.Error("IndexTip should be missing")
		}
		if _, ok := f.Joint(MiddleTip); !ok {
			t.Error("MiddleTip should still be present")
		}
	})

	t.Run("Joint rejects out-of-range ids", func(t *testing.T) {
		f := OpenPalmFrame()

		if _, ok := f.Joint(-1); ok {
			t.Error("negative joint id should report missing")
		}
		if _, ok := f.Joint(NumLandmarks); ok {
			t.Error("joint id past the last slot should report missing")
		}
	})
}

func TestFrame_MarshalJSON(t *testing.T) {
	t.Run("absent frame has null points", func(t *testing.T) {
		data, err := json.Marshal(AbsentFrame())
		if err != nil {
			t.Fatalf("marshal error = %v", err)
		}

		var decoded struct {
			Points []*Point3D `json:"points"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal error = %v", err)
		}

		if decoded.Points != nil {
			t.Errorf("points = %v, want null", decoded.Points)
		}
	})

	t.Run("missing joints encode as null slots", func(t *testing.T) {
		f := OpenPalmFrame().WithMissing(ThumbTip)

		data, err := json.Marshal(f)
		if err != nil {
			t.Fatalf("marshal error = %v", err)
		}

		var decoded struct {
			Points     []*Point3D `json:"points"`
			Handedness string     `json:"handedness"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal error = %v", err)
		}

		if len(decoded.Points) != NumLandmarks {
			t.Fatalf("len(points) = %d, want %d", len(decoded.Points), NumLandmarks)
		}
		if decoded.Points[ThumbTip] != nil {
			t.Error("missing ThumbTip should encode as null")
		}
		if decoded.Points[IndexTip] == nil {
			t.Error("present IndexTip should not be null")
		}
		if decoded.Handedness != "Right" {
			t.Errorf("handedness = %s, want Right", decoded.Handedness)
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()

		mock.SetHands([]Frame{ThumbsUpFrame(), OpenPalmFrame()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		mock := NewMockDetector()

		if err := mock.Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
	})
}

func TestThumbsUpFrame(t *testing.T) {
	f := ThumbsUpFrame()

	t.Run("has correct handedness and score", func(t *testing.T) {
		if f.Handedness != "Right" {
			t.Errorf("expected handedness Right, got %s", f.Handedness)
		}
		if f.Score < 0.9 {
			t.Errorf("expected score >= 0.9, got %f", f.Score)
		}
	})

	t.Run("thumb is extended upward", func(t *testing.T) {
		tip, _ := f.Joint(ThumbTip)
		ip, _ := f.Joint(ThumbIP)
		mcp, _ := f.Joint(ThumbMCP)

		// Image Y grows downward, so "up" means smaller Y
		if tip.Y >= mcp.Y {
			t.Error("thumb tip should be above thumb MCP (lower Y value)")
		}
		if tip.Y >= ip.Y {
			t.Error("thumb tip should be above thumb IP (lower Y value)")
		}
	})

	t.Run("other fingers are curled", func(t *testing.T) {
		fingers := []struct {
			name     string
			tip, mcp int
		}{
			{"index", IndexTip, IndexMCP},
			{"middle", MiddleTip, MiddleMCP},
			{"ring", RingTip, RingMCP},
			{"pinky", PinkyTip, PinkyMCP},
		}

		for _, fg := range fingers {
			tip, _ := f.Joint(fg.tip)
			mcp, _ := f.Joint(fg.mcp)

			extension := mcp.Y - tip.Y
			if extension > 0.15 {
				t.Errorf("%s finger appears extended (extension: %f), should be curled", fg.name, extension)
			}
		}
	})
}

func TestOpenPalmFrame(t *testing.T) {
	f := OpenPalmFrame()

	t.Run("all fingers are extended", func(t *testing.T) {
		minExtension := 0.2

		fingers := []struct {
			name     string
			tip, mcp int
		}{
			{"index", IndexTip, IndexMCP},
			{"middle", MiddleTip, MiddleMCP},
			{"ring", RingTip, RingMCP},
			{"pinky", PinkyTip, PinkyMCP},
		}

		for _, fg := range fingers {
			tip, _ := f.Joint(fg.tip)
			mcp, _ := f.Joint(fg.mcp)

			extension := mcp.Y - tip.Y
			if extension < minExtension {
				t.Errorf("%s finger not extended enough (extension: %f), expected >= %f", fg.name, extension, minExtension)
			}
		}
	})

	t.Run("thumb is extended to the side", func(t *testing.T) {
		tip, _ := f.Joint(ThumbTip)
		mcp, _ := f.Joint(ThumbMCP)

		if tip.X <= mcp.X {
			t.Error("thumb tip should be to the right of thumb MCP (extended outward)")
		}
	})

	t.Run("fingers are properly ordered left to right", func(t *testing.T) {
		pinky, _ := f.Joint(PinkyMCP)
		ring, _ := f.Joint(RingMCP)
		middle, _ := f.Joint(MiddleMCP)
		index, _ := f.Joint(IndexMCP)

		if pinky.X >= ring.X {
			t.Error("pinky should be to the left of ring finger")
		}
		if ring.X >= middle.X {
			t.Error("ring should be to the left of middle finger")
		}
		if middle.X >= index.X {
			t.Error("middle should be to the left of index finger")
		}
	})
}
