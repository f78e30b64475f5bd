// Package detector runs the hand landmark model over camera frames.
package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/pinchflap/internal/landmark"
)

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]landmark.Hand, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect. Gameplay only
	// reads the first hand.
	MaxHands int `mapstructure:"maxHands"`

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64 `mapstructure:"minConfidence"`

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64 `mapstructure:"minTrackingConfidence"`

	// ScriptPath overrides the landmark service script location.
	ScriptPath string `mapstructure:"scriptPath"`

	// Python overrides the interpreter used to run the script.
	Python string `mapstructure:"python"`
}

// DefaultConfig returns a Config tuned for single-hand pinch tracking.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.7,
		MinTrackingConf: 0.5,
	}
}
