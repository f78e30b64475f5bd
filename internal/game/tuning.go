// Package game implements the flap simulation: actor physics, the obstacle
// track, collision detection and the run state machine.
package game

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTuning is returned when tuning parameters describe an unplayable
// world.
var ErrInvalidTuning = errors.New("invalid tuning")

// WorldTuning describes the playfield. Units are pixels; Y grows downward.
type WorldTuning struct {
	Width   float64 `mapstructure:"width"`
	Height  float64 `mapstructure:"height"`
	GroundY float64 `mapstructure:"groundY"`
	Scale   float64 `mapstructure:"scale"`
}

// ActorTuning describes the bird. Velocities are pixels per second.
type ActorTuning struct {
	StartX        float64 `mapstructure:"startX"`
	StartY        float64 `mapstructure:"startY"`
	BaseWidth     float64 `mapstructure:"baseWidth"`
	BaseHeight    float64 `mapstructure:"baseHeight"`
	Gravity       float64 `mapstructure:"gravity"`
	FlapVelocity  float64 `mapstructure:"flapVelocity"`
	RotationGain  float64 `mapstructure:"rotationGain"` // degrees per px/s
	MaxRotationUp float64 `mapstructure:"maxRotationUp"`
	MaxRotationDn float64 `mapstructure:"maxRotationDown"`
	FrameSeconds  float64 `mapstructure:"frameSeconds"`
	Frames        int     `mapstructure:"frames"`
}

// ObstacleTuning describes the pipes and their spawn cadence.
type ObstacleTuning struct {
	Speed        float64 `mapstructure:"speed"`
	BaseWidth    float64 `mapstructure:"baseWidth"`
	BaseHeight   float64 `mapstructure:"baseHeight"`
	Gap          float64 `mapstructure:"gap"`
	SpawnX       float64 `mapstructure:"spawnX"`
	SpawnCadence int     `mapstructure:"spawnCadence"` // ticks between spawns
	MinGapCenter float64 `mapstructure:"minGapCenter"`
	MaxGapCenter float64 `mapstructure:"maxGapCenter"`
}

// Tuning holds every gameplay constant.
type Tuning struct {
	World     WorldTuning    `mapstructure:"world"`
	Actor     ActorTuning    `mapstructure:"actor"`
	Obstacles ObstacleTuning `mapstructure:"obstacles"`
}

// DefaultTuning returns the classic 530x675 layout at 1.5x sprite scale.
func DefaultTuning() Tuning {
	return Tuning{
		World: WorldTuning{
			Width:   530,
			Height:  675,
			GroundY: 568,
			Scale:   1.5,
		},
		Actor: ActorTuning{
			StartX:        100,
			StartY:        100,
			BaseWidth:     34,
			BaseHeight:    24,
			Gravity:       1500,
			FlapVelocity:  -450,
			RotationGain:  0.1,
			MaxRotationUp: 25,
			MaxRotationDn: -90,
			FrameSeconds:  5.0 / 60.0,
			Frames:        2,
		},
		Obstacles: ObstacleTuning{
			Speed:        250,
			BaseWidth:    52,
			BaseHeight:   320,
			Gap:          200,
			SpawnX:       600,
			SpawnCadence: 70,
			MinGapCenter: 150,
			MaxGapCenter: 420,
		},
	}
}

// ActorSize returns the scaled width and height of the actor.
func (t Tuning) ActorSize() (w, h float64) {
	return t.Actor.BaseWidth * t.World.Scale, t.Actor.BaseHeight * t.World.Scale
}

// PipeSize returns the scaled width and height of one barrier.
func (t Tuning) PipeSize() (w, h float64) {
	return t.Obstacles.BaseWidth * t.World.Scale, t.Obstacles.BaseHeight * t.World.Scale
}

// Validate checks that the tuning describes a playable world: both barriers
// of every possible obstacle stay inside the playfield, the gap is taller
// than the actor, and the barriers are long enough to close off the space
// above and below the gap.
func (t Tuning) Validate() error {
	w := t.World
	switch {
	case !positive(w.Width, w.Height, w.Scale):
		return fmt.Errorf("%w: world dimensions and scale must be positive", ErrInvalidTuning)
	case w.GroundY <= 0 || w.GroundY > w.Height:
		return fmt.Errorf("%w: ground line %.1f outside playfield height %.1f", ErrInvalidTuning, w.GroundY, w.Height)
	}

	a := t.Actor
	aw, ah := t.ActorSize()
	switch {
	case !positive(a.BaseWidth, a.BaseHeight, a.Gravity, a.FrameSeconds):
		return fmt.Errorf("%w: actor size, gravity and frame time must be positive", ErrInvalidTuning)
	case a.FlapVelocity >= 0:
		return fmt.Errorf("%w: flap velocity %.1f must be negative (upward)", ErrInvalidTuning, a.FlapVelocity)
	case a.Frames < 1:
		return fmt.Errorf("%w: actor needs at least one animation frame", ErrInvalidTuning)
	case a.StartY-ah/2 < 0 || a.StartY+ah/2 > w.GroundY:
		return fmt.Errorf("%w: actor start y %.1f does not fit above the ground", ErrInvalidTuning, a.StartY)
	case a.StartX-aw/2 < 0 || a.StartX+aw/2 > w.Width:
		return fmt.Errorf("%w: actor start x %.1f outside playfield", ErrInvalidTuning, a.StartX)
	}

	o := t.Obstacles
	_, ph := t.PipeSize()
	half := o.Gap / 2
	switch {
	case !positive(o.Speed, o.BaseWidth, o.BaseHeight, o.Gap):
		return fmt.Errorf("%w: obstacle speed, size and gap must be positive", ErrInvalidTuning)
	case o.SpawnCadence < 1:
		return fmt.Errorf("%w: spawn cadence must be at least one tick", ErrInvalidTuning)
	case o.Gap >= w.GroundY:
		return fmt.Errorf("%w: gap %.1f does not fit above ground line %.1f", ErrInvalidTuning, o.Gap, w.GroundY)
	case o.Gap <= ah:
		return fmt.Errorf("%w: gap %.1f is not taller than the actor (%.1f)", ErrInvalidTuning, o.Gap, ah)
	case o.MinGapCenter > o.MaxGapCenter:
		return fmt.Errorf("%w: gap center range [%.1f, %.1f] is inverted", ErrInvalidTuning, o.MinGapCenter, o.MaxGapCenter)
	case o.MinGapCenter-half < 0:
		return fmt.Errorf("%w: upper barrier of lowest gap center %.1f leaves the playfield", ErrInvalidTuning, o.MinGapCenter)
	case o.MaxGapCenter+half > w.GroundY:
		return fmt.Errorf("%w: lower barrier of highest gap center %.1f sinks below ground", ErrInvalidTuning, o.MaxGapCenter)
	case o.MaxGapCenter-half > ph:
		return fmt.Errorf("%w: upper barrier %.1f too short to reach the top", ErrInvalidTuning, ph)
	case o.MinGapCenter+half+ph < w.GroundY:
		return fmt.Errorf("%w: lower barrier %.1f too short to reach the ground", ErrInvalidTuning, ph)
	case o.SpawnX < w.Width:
		return fmt.Errorf("%w: spawn x %.1f is inside the visible playfield", ErrInvalidTuning, o.SpawnX)
	}

	return nil
}

// positive reports whether every value is finite and greater than zero.
func positive(vs ...float64) bool {
	for _, v := range vs {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
