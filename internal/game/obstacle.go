package game

import "github.com/ayusman/pinchflap/internal/geom"

// Obstacle is a pipe pair: an upper and a lower barrier around a fixed gap.
// Only X changes after creation.
type Obstacle struct {
	X         float64 // left edge
	GapCenter float64

	width   float64
	height  float64
	halfGap float64
	speed   float64
}

func newObstacle(t Tuning, gapCenter float64) Obstacle {
	w, h := t.PipeSize()
	return Obstacle{
		X:         t.Obstacles.SpawnX,
		GapCenter: gapCenter,
		width:     w,
		height:    h,
		halfGap:   t.Obstacles.Gap / 2,
		speed:     t.Obstacles.Speed,
	}
}

// Step moves the obstacle left by speed*dt.
func (o *Obstacle) Step(dt float64) {
	o.X -= o.speed * dt
}

// Right returns the x-coordinate of the obstacle's right edge.
func (o *Obstacle) Right() float64 {
	return o.X + o.width
}

// Upper returns the upper barrier. Its bottom edge is GapCenter - gap/2.
func (o *Obstacle) Upper() geom.Rect {
	bottom := o.GapCenter - o.halfGap
	return geom.Rect{X: o.X, Y: bottom - o.height, W: o.width, H: o.height}
}

// Lower returns the lower barrier. Its top edge is GapCenter + gap/2.
func (o *Obstacle) Lower() geom.Rect {
	return geom.Rect{X: o.X, Y: o.GapCenter + o.halfGap, W: o.width, H: o.height}
}

// Hits reports whether r overlaps either barrier.
func (o *Obstacle) Hits(r geom.Rect) bool {
	return geom.RectsOverlap(r, o.Upper()) || geom.RectsOverlap(r, o.Lower())
}
