package game

import (
	"math"

	"github.com/ayusman/pinchflap/internal/geom"
)

// Actor is the bird. X never changes; Y is the center of its sprite.
type Actor struct {
	X         float64
	Y         float64
	VelocityY float64
	Rotation  float64 // degrees, positive is nose up
	AnimPhase float64 // seconds of animation time
	Active    bool

	width  float64
	height float64
	tuning ActorTuning
}

// NewActor creates an inactive actor at its start position.
func NewActor(t Tuning) *Actor {
	w, h := t.ActorSize()
	return &Actor{
		X:      t.Actor.StartX,
		Y:      t.Actor.StartY,
		width:  w,
		height: h,
		tuning: t.Actor,
	}
}

// Bounds returns the actor's collision rectangle for its current position.
func (a *Actor) Bounds() geom.Rect {
	return geom.Rect{
		X: a.X - a.width/2,
		Y: a.Y - a.height/2,
		W: a.width,
		H: a.height,
	}
}

// Flap sets the vertical velocity to the flap velocity. It replaces rather
// than adds to the current velocity, so repeated calls in one tick are
// equivalent to one.
func (a *Actor) Flap() {
	if !a.Active {
		return
	}
	a.VelocityY = a.tuning.FlapVelocity
}

// Step advances the actor by dt seconds: gravity into velocity, velocity into
// position, then rotation and animation. Inactive actors stay frozen.
// Negative or NaN dt is treated as zero.
func (a *Actor) Step(dt float64) {
	if !a.Active {
		return
	}
	if !(dt > 0) {
		dt = 0
	}

	a.VelocityY += a.tuning.Gravity * dt
	a.Y += a.VelocityY * dt

	// The actor cannot fly above the top of the playfield.
	if top := a.Y - a.height/2; top < 0 {
		a.Y = a.height / 2
		if a.VelocityY < 0 {
			a.VelocityY = 0
		}
	}

	a.Rotation = clamp(-a.VelocityY*a.tuning.RotationGain, a.tuning.MaxRotationDn, a.tuning.MaxRotationUp)
	a.AnimPhase += dt
}

// Frame returns the current wing animation frame.
func (a *Actor) Frame() int {
	if a.tuning.Frames <= 1 || a.tuning.FrameSeconds <= 0 {
		return 0
	}
	n := int(math.Floor(a.AnimPhase / a.tuning.FrameSeconds))
	return n % a.tuning.Frames
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
