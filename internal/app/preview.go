package app

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/pinchflap/internal/game"
)

var (
	pinchColor = color.RGBA{R: 255, G: 0, B: 255, A: 0}
	textColor  = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

// Preview is the camera window.
type Preview struct {
	window *gocv.Window
}

// NewPreview opens a window titled title.
func NewPreview(title string) *Preview {
	return &Preview{window: gocv.NewWindow(title)}
}

// Show draws snap's pinch marker onto frame, displays it and returns the
// key pressed in the window, or -1.
func (p *Preview) Show(frame *gocv.Mat, snap game.Snapshot) int {
	Annotate(frame, snap)
	p.window.IMShow(*frame)
	return p.window.WaitKey(1)
}

// Close destroys the window.
func (p *Preview) Close() error {
	return p.window.Close()
}

// Annotate marks the last pinch midpoint and writes the run state on frame.
func Annotate(frame *gocv.Mat, snap game.Snapshot) {
	if snap.LastPinch != nil {
		center := image.Pt(int(snap.LastPinch.X), int(snap.LastPinch.Y))
		gocv.Circle(frame, center, 10, pinchColor, 2)
	}

	label := snap.State.String()
	if snap.Pinching {
		label += " | pinch"
	}
	gocv.PutText(frame, label, image.Pt(10, 30), gocv.FontHersheySimplex, 0.8, textColor, 2)
}
