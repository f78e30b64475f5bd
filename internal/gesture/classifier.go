// Package gesture turns hand landmark readings into pinch decisions and
// discrete flap triggers.
package gesture

import (
	"github.com/ayusman/pinchflap/internal/geom"
	"github.com/ayusman/pinchflap/internal/landmark"
)

// DefaultPinchThreshold is the default maximum thumb-to-index distance, in
// source-frame pixels, that counts as a pinch.
const DefaultPinchThreshold = 25.0

// PinchClassifier decides, one frame at a time, whether the first detected
// hand is pinching.
type PinchClassifier struct {
	threshold float64

	// lastMidpoint is set on the first pinch after construction and never
	// cleared. Gameplay does not read it; the camera preview draws it.
	lastMidpoint *geom.Point
}

// NewPinchClassifier creates a classifier with the given pixel threshold.
// Non-positive thresholds fall back to DefaultPinchThreshold.
func NewPinchClassifier(threshold float64) *PinchClassifier {
	if threshold <= 0 {
		threshold = DefaultPinchThreshold
	}
	return &PinchClassifier{threshold: threshold}
}

// Threshold returns the pinch distance threshold in pixels.
func (c *PinchClassifier) Threshold() float64 {
	return c.threshold
}

// Classify reports whether the first hand in hands is pinching in a frame of
// width x height pixels. Additional hands are ignored. A frame without hands,
// or a hand missing its thumb or index tip, is never a pinch. The threshold
// is inclusive.
func (c *PinchClassifier) Classify(hands []landmark.Hand, width, height int) bool {
	if len(hands) == 0 || width <= 0 || height <= 0 {
		return false
	}

	hand := &hands[0]
	thumb, ok := hand.Pixel(landmark.ThumbTip, width, height)
	if !ok {
		return false
	}
	index, ok := hand.Pixel(landmark.IndexTip, width, height)
	if !ok {
		return false
	}

	if geom.Distance(thumb, index) > c.threshold {
		return false
	}

	if c.lastMidpoint == nil {
		mid := thumb.Midpoint(index)
		c.lastMidpoint = &mid
	}
	return true
}

// LastPinchMidpoint returns the midpoint of the first pinch seen by this
// classifier, if any.
func (c *PinchClassifier) LastPinchMidpoint() (geom.Point, bool) {
	if c.lastMidpoint == nil {
		return geom.Point{}, false
	}
	return *c.lastMidpoint, true
}
