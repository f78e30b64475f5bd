package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Motion measurement constants
const (
	// GaussianBlurSize is the kernel size for Gaussian blur (21x21)
	GaussianBlurSize = 21
	// DiffThreshold is the binary threshold for difference detection
	DiffThreshold = 25
)

// MotionGate decides whether a frame is worth sending to the landmark
// detector. A static scene closes the gate; any frame whose change exceeds
// the threshold opens it for the next hold frames so a hand that stops
// moving mid-pinch is still tracked.
type MotionGate struct {
	threshold   float64
	hold        int
	remaining   int
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// NewMotionGate creates a gate that opens when more than threshold percent
// of pixels change. A threshold of 0 or less leaves the gate always open.
func NewMotionGate(threshold float64, hold int) *MotionGate {
	if hold < 0 {
		hold = 0
	}
	return &MotionGate{
		threshold: threshold,
		hold:      hold,
		prevGray:  gocv.NewMat(),
	}
}

// Allow reports whether frame should be analyzed. The first frame after
// construction or Reset is always allowed.
func (g *MotionGate) Allow(frame *gocv.Mat) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.threshold <= 0 {
		return true
	}
	if frame == nil || frame.Empty() {
		return false
	}

	first := !g.initialized
	change := g.measure(frame)

	switch {
	case first, change > g.threshold:
		g.remaining = g.hold
		return true
	case g.remaining > 0:
		g.remaining--
		return true
	default:
		return false
	}
}

// Change returns the percentage of pixels that differ from the previous
// frame. The first frame establishes the baseline and reports 0.
func (g *MotionGate) Change(frame *gocv.Mat) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return 0
	}
	return g.measure(frame)
}

// measure compares frame against the stored baseline:
// grayscale, 21x21 Gaussian blur, absolute difference, binary threshold,
// then the share of non-zero pixels.
func (g *MotionGate) measure(frame *gocv.Mat) float64 {
	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: GaussianBlurSize, Y: GaussianBlurSize}, 0, 0, gocv.BorderDefault)

	if !g.initialized {
		blurred.CopyTo(&g.prevGray)
		g.initialized = true
		return 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, DiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()

	blurred.CopyTo(&g.prevGray)

	return float64(nonZero) / float64(totalPixels) * 100.0
}

// Reset drops the baseline so the next frame is allowed unconditionally.
func (g *MotionGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clear()
}

// Close releases resources used by the gate.
func (g *MotionGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clear()
}

func (g *MotionGate) clear() {
	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.initialized = false
	g.remaining = 0
}

// SetThreshold sets the change percentage that opens the gate.
// Values less than 0 are ignored; 0 disables gating.
func (g *MotionGate) SetThreshold(threshold float64) {
	if threshold < 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.threshold = threshold
}
