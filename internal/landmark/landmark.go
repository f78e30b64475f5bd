// Package landmark defines hand landmark readings as emitted by the hand
// landmark model. It has no OpenCV dependency so that gameplay code can
// consume readings without linking the capture stack.
package landmark

import "github.com/ayusman/pinchflap/internal/geom"

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

// Point3D is a landmark position. X and Y are normalized to [0,1] of the
// source frame; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is one detected hand. Points is indexed by the landmark constants
// above; a reading may be truncated, in which case trailing landmarks are
// missing.
type Hand struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"` // "Left" or "Right"
	Score      float64   `json:"score"`
}

// Landmark returns the landmark at index i and whether it is present.
func (h *Hand) Landmark(i int) (Point3D, bool) {
	if h == nil || i < 0 || i >= len(h.Points) {
		return Point3D{}, false
	}
	return h.Points[i], true
}

// Pixel returns landmark i scaled into a width x height frame.
func (h *Hand) Pixel(i, width, height int) (geom.Point, bool) {
	p, ok := h.Landmark(i)
	if !ok {
		return geom.Point{}, false
	}
	return geom.Point{X: p.X * float64(width), Y: p.Y * float64(height)}, true
}

// Complete reports whether every landmark is present.
func (h *Hand) Complete() bool {
	return h != nil && len(h.Points) >= NumLandmarks
}
